package usecase

import (
	"library-circulation/internal/domain/user"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator resolves a bearer credential into the caller's user id and role.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, user.Role, error)
}

type jwtTokenValidator struct {
	tokens *jwt.Service
}

func NewTokenValidator(tokens *jwt.Service) TokenValidator {
	return &jwtTokenValidator{tokens: tokens}
}

// ValidateToken rejects tokens whose subject disagrees with the user_id claim and
// tokens naming a role this service does not know.
func (v *jwtTokenValidator) ValidateToken(tokenString string) (uuid.UUID, user.Role, error) {
	claims, err := v.tokens.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}
	if claims.Subject != claims.UserID.String() {
		return uuid.Nil, "", errs.Wrap(jwt.ErrInvalidToken, "subject mismatch")
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", errs.Wrap(jwt.ErrInvalidToken, "unknown role claim")
	}
	return claims.UserID, role, nil
}
