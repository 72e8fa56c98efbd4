//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"library-circulation/internal/domain/user"
	"library-circulation/internal/pkg/config"
	"library-circulation/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) Service(t *testing.T) *jwt.Service {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	return jwt.NewService(h.cfg.Secret, duration)
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.Service(t).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken signs a token whose expiry is already in the past.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, -time.Minute)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

// TokenFor returns a token for identity. The subject id must be a user uuid.
func (h *JWTHelper) TokenFor(t *testing.T, identity user.Identity) string {
	t.Helper()
	userID, err := uuid.Parse(identity.SubjectID)
	require.NoError(t, err)
	return h.GenerateToken(t, userID, identity.Role)
}
