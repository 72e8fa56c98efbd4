package user

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"library-circulation/internal/pkg/errs"
)

var (
	ErrInvalidEmail    = errs.Mark(errors.New("invalid email format"), errs.ErrInvalidInput)
	ErrInvalidRole     = errs.Mark(errors.New("invalid role"), errs.ErrInvalidInput)
	ErrInvalidName     = errs.Mark(errors.New("name must be 1-100 characters"), errs.ErrInvalidInput)
	ErrPasswordTooWeak = errs.Mark(errors.New("password must be at least 8 characters long"), errs.ErrInvalidInput)
	ErrInvalidSubject  = errs.Mark(errors.New("subject id is required"), errs.ErrInvalidInput)
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const (
	minPasswordLength = 8
	maxNameLength     = 100
)

type Email struct {
	value string
}

// NewEmail lower-cases the address so uniqueness is case-insensitive.
func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

type Name struct {
	value string
}

func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > maxNameLength {
		return Name{}, ErrInvalidName
	}
	return Name{value: s}, nil
}

func (n Name) Value() string {
	return n.value
}

type Password struct {
	value string
}

func NewPassword(s string) (Password, error) {
	if len(s) < minPasswordLength {
		return Password{}, ErrPasswordTooWeak
	}
	return Password{value: s}, nil
}

func (p Password) Value() string {
	return p.value
}
