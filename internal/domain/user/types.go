package user

type Role string

const (
	RoleGeneralUser Role = "general_user"
	RoleInstructor  Role = "instructor"
	RoleLibrarian   Role = "librarian"
)

var roleLevels = map[Role]int{
	RoleGeneralUser: 1,
	RoleInstructor:  2,
	RoleLibrarian:   3,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := roleLevels[r]
	return ok
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// AtLeast orders roles general_user < instructor < librarian.
func (r Role) AtLeast(min Role) bool {
	level, ok := roleLevels[r]
	minLevel, minOK := roleLevels[min]
	return ok && minOK && level >= minLevel
}

// IsPrivileged: catalog management and returning any checkout.
func (r Role) IsPrivileged() bool {
	return r == RoleLibrarian
}

// SeesAllCheckouts is true for privileged and elevated roles.
func (r Role) SeesAllCheckouts() bool {
	return r.AtLeast(RoleInstructor)
}
