//go:build unit || e2e

package builder

import (
	"time"

	"library-circulation/internal/domain/user"
	reqdto "library-circulation/internal/handler/dto/request"
	"library-circulation/internal/infra/pgsql"
	"library-circulation/internal/usecase/commands"
	"library-circulation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Password     string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:       uuid.New(),
		Email:    "reader@example.com",
		Name:     "Test Reader",
		Password: "password123",
		// bcrypt of "password123"
		PasswordHash: "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A.",
		Role:         string(user.RoleGeneralUser),
		IsActive:     true,
		CreatedAt:    time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	name, err := user.NewName(u.Name)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}
	return user.NewUser(email, name, u.PasswordHash, role, u.CreatedAt), nil
}

func (u *UserBuilder) BuildIdentity() user.Identity {
	return user.Identity{SubjectID: u.ID.String(), Role: user.Role(u.Role)}
}

func (u *UserBuilder) BuildRegisterRequest() commands.RegisterRequest {
	return commands.RegisterRequest{
		Email:    u.Email,
		Password: u.Password,
		Name:     u.Name,
		Role:     u.Role,
	}
}

func (u *UserBuilder) BuildRegisterDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		Email:    u.Email,
		Password: u.Password,
		Name:     u.Name,
		Role:     u.Role,
	}
}

func (u *UserBuilder) BuildInfra() pgsql.Users {
	ts := pgtype.Timestamptz{Time: u.CreatedAt, Valid: true}
	return pgsql.Users{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		IsActive:     u.IsActive,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}

func (u *UserBuilder) BuildReadModel() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithName(name string) *UserBuilder {
	u.Name = name
	return u
}

func (u *UserBuilder) WithPassword(password string) *UserBuilder {
	u.Password = password
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	u.PasswordHash = hash
	return u
}

func (u *UserBuilder) AsLibrarian() *UserBuilder {
	u.Role = string(user.RoleLibrarian)
	return u
}

func (u *UserBuilder) AsInstructor() *UserBuilder {
	u.Role = string(user.RoleInstructor)
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}
