//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"library-circulation/internal/infra/docstore"
	"library-circulation/internal/pkg/config"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// NewDocStore opens a private in-memory document store for one test.
func NewDocStore(t *testing.T) *sqlx.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, cleanup, err := docstore.Open(ctx, config.SQLiteConfig{Path: ":memory:", BusyTimeout: 5 * time.Second})
	require.NoError(t, err, "failed to open in-memory document store")
	t.Cleanup(cleanup)
	return db
}
