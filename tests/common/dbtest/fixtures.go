//go:build unit || e2e

package dbtest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	TestPassword = "password123"
	// bcrypt of TestPassword
	TestPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."
)

// resetTables lists every table the migrations create, children first.
var resetTables = []string{"checkouts", "books", "users"}

// CreateTestUser inserts an active account with TestPassword. An existing
// email is reused so suites can call it from every test.
func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := uuid.New()
	err := db.QueryRow(ctx,
		`INSERT INTO users (id, email, name, password_hash, role, is_active)
		 VALUES ($1, $2, $3, $4, $5, true)
		 ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		 RETURNING id`,
		id, strings.ToLower(email), "Test "+role, TestPasswordHash, role).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTestBook inserts a title with every copy on the shelf.
func CreateTestBook(t *testing.T, db DBLike, isbn string, total int) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		`INSERT INTO books (isbn, title, authors, tags, total_copies, available_copies)
		 VALUES ($1, $2, $3, '{}', $4, $4)`,
		isbn, "Test Book "+isbn, []string{"Test Author"}, total)
	require.NoError(t, err)
}

// ResetDB empties every application table, leaving the schema in place.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE "+strings.Join(resetTables, ", ")+" RESTART IDENTITY CASCADE")
	return err
}
