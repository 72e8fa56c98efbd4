package user

import "strings"

// Identity is the already-authenticated caller. It is passed explicitly to every
// circulation operation; nothing reads it from ambient state.
type Identity struct {
	SubjectID string
	Role      Role
}

func NewIdentity(subjectID string, role Role) (Identity, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return Identity{}, ErrInvalidSubject
	}
	if !role.IsValid() {
		return Identity{}, ErrInvalidRole
	}
	return Identity{SubjectID: subjectID, Role: role}, nil
}

func (i Identity) Validate() error {
	_, err := NewIdentity(i.SubjectID, i.Role)
	return err
}

func (i Identity) Owns(subjectID string) bool {
	return i.SubjectID == subjectID
}
