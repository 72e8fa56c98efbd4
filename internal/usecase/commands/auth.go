package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"library-circulation/internal/domain/auth"
	"library-circulation/internal/domain/user"
	"library-circulation/internal/infra"
	"library-circulation/internal/pkg/clock"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/pkg/jwt"
	"library-circulation/internal/pkg/password"
	"library-circulation/internal/usecase/queries"
	"library-circulation/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenGeneration    = errors.New("token generation failed")
)

type RegisterRequest struct {
	Email    string
	Password string
	Name     string
	Role     string
}

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResult struct {
	UserID      uuid.UUID
	Role        user.Role
	AccessToken string
	ExpiresIn   time.Duration
	User        *queries.AuthorizedUserView
}

type AuthCommands interface {
	// Register creates an account. caller may be nil for self sign-up, which only
	// yields general users.
	Register(ctx context.Context, caller *user.Identity, req RegisterRequest) (*queries.AuthorizedUserView, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.UserReadStore
	jwtService *jwt.Service
	hasher     *password.Hasher
	clock      clock.Clock
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	readStore queries.UserReadStore,
	jwtService *jwt.Service,
	hasher *password.Hasher,
	clk clock.Clock,
) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
		hasher:     hasher,
		clock:      clk,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, caller *user.Identity, req RegisterRequest) (*queries.AuthorizedUserView, error) {
	reg, err := auth.NewRegistration(req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		return nil, err
	}
	if reg.Role() != user.RoleGeneralUser && (caller == nil || !caller.Role.IsPrivileged()) {
		return nil, errs.ErrPrivilegedRoleRequired
	}

	hash, err := a.hasher.Hash(reg.Password().Value())
	if err != nil {
		return nil, errs.Wrap(err, "failed to hash password")
	}
	u := user.NewUser(reg.Email(), reg.Name(), hash, reg.Role(), a.clock.Now())

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, u)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.ErrDuplicateEmail
		}
		return nil, shared.StoreError(err)
	}

	slog.Info("user registered",
		slog.String("user_id", u.ID().String()),
		slog.String("role", u.Role().String()))

	return &queries.AuthorizedUserView{
		ID:        u.ID(),
		Email:     u.Email().Value(),
		Name:      u.Name().Value(),
		Role:      u.Role().String(),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
	}, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	creds, err := auth.NewCredentials(req.Email, req.Password)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	view, hash, err := a.readStore.FindByEmail(ctx, creds.Email().Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// same answer as a wrong password so accounts cannot be probed
			return nil, ErrInvalidCredentials
		}
		return nil, shared.StoreError(err)
	}
	if err := a.hasher.Compare(hash, creds.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !view.IsActive {
		return nil, queries.ErrUserInactive
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Wrapf(err, "stored role for user %s", view.ID)
	}
	token, err := a.jwtService.GenerateToken(view.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	now := a.clock.Now()
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, view.ID, now)
	})
	if err != nil {
		slog.Warn("failed to update last login",
			slog.String("user_id", view.ID.String()),
			slog.String("error", err.Error()))
	} else {
		view.LastLogin = &now
	}

	return &LoginResult{
		UserID:      view.ID,
		Role:        role,
		AccessToken: token,
		ExpiresIn:   a.jwtService.TokenDuration(),
		User:        view,
	}, nil
}
