package auth

import (
	"library-circulation/internal/domain/user"
)

type Credentials struct {
	email    user.Email
	password user.Password
}

func NewCredentials(emailStr, passwordStr string) (Credentials, error) {
	email, err := user.NewEmail(emailStr)
	if err != nil {
		return Credentials{}, err
	}

	password, err := user.NewPassword(passwordStr)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		email:    email,
		password: password,
	}, nil
}

func (c Credentials) Email() user.Email {
	return c.email
}

func (c Credentials) Password() user.Password {
	return c.password
}

// Registration is a validated sign-up request. Role defaults to general_user.
type Registration struct {
	Credentials
	name user.Name
	role user.Role
}

func NewRegistration(emailStr, passwordStr, nameStr, roleStr string) (Registration, error) {
	creds, err := NewCredentials(emailStr, passwordStr)
	if err != nil {
		return Registration{}, err
	}
	name, err := user.NewName(nameStr)
	if err != nil {
		return Registration{}, err
	}
	role := user.RoleGeneralUser
	if roleStr != "" {
		if role, err = user.NewRole(roleStr); err != nil {
			return Registration{}, err
		}
	}
	return Registration{Credentials: creds, name: name, role: role}, nil
}

func (r Registration) Name() user.Name {
	return r.name
}

func (r Registration) Role() user.Role {
	return r.role
}
