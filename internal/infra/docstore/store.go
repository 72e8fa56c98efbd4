// Package docstore is the document-store backend: every entity is a JSON document
// in a single SQLite table, guarded by a per-document revision.
package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"library-circulation/internal/infra"
	"library-circulation/internal/pkg/config"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	dialect        = "sqlite3"
	tableDocuments = "documents"

	colCollection = "collection"
	colID         = "id"
	colRevision   = "revision"
	colBody       = "body"
	colUpdatedAt  = "updated_at"

	collBooks     = "books"
	collCheckouts = "checkouts"
	collUsers     = "users"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var schema = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		collection TEXT    NOT NULL,
		id         TEXT    NOT NULL,
		revision   INTEGER NOT NULL DEFAULT 1,
		body       TEXT    NOT NULL CHECK (json_valid(body)),
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (collection, id),
		CHECK (collection <> 'books' OR (
			json_extract(body, '$.availableCopies') >= 0 AND
			json_extract(body, '$.availableCopies') <= json_extract(body, '$.totalCopies')))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_checkouts_subject_date_out
		ON documents (json_extract(body, '$.subjectId'), json_extract(body, '$.dateOut') DESC, id DESC)
		WHERE collection = 'checkouts'`,
	`CREATE INDEX IF NOT EXISTS idx_checkouts_date_out
		ON documents (json_extract(body, '$.dateOut') DESC, id DESC)
		WHERE collection = 'checkouts'`,
	`CREATE INDEX IF NOT EXISTS idx_checkouts_active_by_book
		ON documents (json_extract(body, '$.bookId'))
		WHERE collection = 'checkouts' AND json_extract(body, '$.dateIn') IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email
		ON documents (json_extract(body, '$.email'))
		WHERE collection = 'users'`,
}

// Open connects and applies the schema. An in-memory database is pinned to a
// single connection so every caller sees the same data.
func Open(ctx context.Context, cfg config.SQLiteConfig) (*sqlx.DB, func(), error) {
	db, err := sqlx.Open("sqlite3", cfg.BuildDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
		db.SetConnMaxIdleTime(0)
		db.SetConnMaxLifetime(0)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			slog.Error("failed to close sqlite database", slog.String("error", err.Error()))
		}
	}
	return db, cleanup, nil
}

func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply document schema: %w", err)
		}
	}
	return nil
}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

type documentRow struct {
	ID       string `db:"id"`
	Revision int64  `db:"revision"`
	Body     string `db:"body"`
}

func builder() goqu.DialectWrapper {
	return goqu.Dialect(dialect)
}

// field addresses a top-level JSON property. name must be a constant.
func field(name string) exp.LiteralExpression {
	return goqu.L(fmt.Sprintf("json_extract(body, '$.%s')", name))
}

func selectDocs(collection string) *goqu.SelectDataset {
	return builder().
		From(tableDocuments).
		Select(colID, colRevision, colBody).
		Where(goqu.C(colCollection).Eq(collection))
}

func getDoc(ctx context.Context, q queryer, collection, id string, dest any) (int64, error) {
	query, args, err := selectDocs(collection).Where(goqu.C(colID).Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build document query", err, infra.KindDBFailure)
	}
	var row documentRow
	if err := q.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, infra.WrapRepoErr(collection+" document not found", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to load "+collection+" document", err)
	}
	if err := json.UnmarshalFromString(row.Body, dest); err != nil {
		return 0, infra.WrapRepoErr("corrupt "+collection+" document", err, infra.KindDBFailure)
	}
	return row.Revision, nil
}

func insertDoc(ctx context.Context, q queryer, collection, id string, body any, now time.Time) error {
	raw, err := json.MarshalToString(body)
	if err != nil {
		return infra.WrapRepoErr("failed to encode "+collection+" document", err, infra.KindDBFailure)
	}
	query, args, err := builder().
		Insert(tableDocuments).
		Rows(goqu.Record{
			colCollection: collection,
			colID:         id,
			colRevision:   1,
			colBody:       raw,
			colUpdatedAt:  now.UnixMicro(),
		}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build insert", err, infra.KindDBFailure)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to insert "+collection+" document", err)
	}
	return nil
}

// compareAndSwap replaces the body only when the stored revision still matches.
func compareAndSwap(ctx context.Context, q queryer, collection, id string, revision int64, body any, now time.Time) error {
	raw, err := json.MarshalToString(body)
	if err != nil {
		return infra.WrapRepoErr("failed to encode "+collection+" document", err, infra.KindDBFailure)
	}
	query, args, err := builder().
		Update(tableDocuments).
		Set(goqu.Record{
			colBody:      raw,
			colRevision:  goqu.L("revision + 1"),
			colUpdatedAt: now.UnixMicro(),
		}).
		Where(
			goqu.C(colCollection).Eq(collection),
			goqu.C(colID).Eq(id),
			goqu.C(colRevision).Eq(revision),
		).
		Prepared(true).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build update", err, infra.KindDBFailure)
	}
	n, err := execRows(ctx, q, query, args)
	if err != nil {
		return infra.WrapRepoErr("failed to update "+collection+" document", err)
	}
	if n == 0 {
		return infra.WrapRepoErr(collection+" document revision changed", nil, infra.KindConflict)
	}
	return nil
}

// updateWhere runs a guarded in-place update and reports how many documents matched.
func updateWhere(ctx context.Context, q queryer, collection, id string, set goqu.Record, guards ...exp.Expression) (int64, error) {
	set[colRevision] = goqu.L("revision + 1")
	where := append([]exp.Expression{
		goqu.C(colCollection).Eq(collection),
		goqu.C(colID).Eq(id),
	}, guards...)

	query, args, err := builder().
		Update(tableDocuments).
		Set(set).
		Where(where...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build update", err, infra.KindDBFailure)
	}
	n, err := execRows(ctx, q, query, args)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to update "+collection+" document", err)
	}
	return n, nil
}

func deleteDoc(ctx context.Context, q queryer, collection, id string) (int64, error) {
	query, args, err := builder().
		Delete(tableDocuments).
		Where(goqu.C(colCollection).Eq(collection), goqu.C(colID).Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build delete", err, infra.KindDBFailure)
	}
	n, err := execRows(ctx, q, query, args)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete "+collection+" document", err)
	}
	return n, nil
}

func docExists(ctx context.Context, q queryer, collection, id string) (bool, error) {
	query, args, err := builder().
		From(tableDocuments).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C(colCollection).Eq(collection), goqu.C(colID).Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build exists query", err, infra.KindDBFailure)
	}
	var count int
	if err := q.GetContext(ctx, &count, query, args...); err != nil {
		return false, infra.WrapRepoErr("failed to check "+collection+" document", err)
	}
	return count > 0, nil
}

func execRows(ctx context.Context, q queryer, query string, args []any) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func decodeRows[T any](rows []documentRow) ([]T, []string, error) {
	out := make([]T, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		var doc T
		if err := json.UnmarshalFromString(row.Body, &doc); err != nil {
			return nil, nil, infra.WrapRepoErr("corrupt document "+row.ID, err, infra.KindDBFailure)
		}
		out = append(out, doc)
		ids = append(ids, row.ID)
	}
	return out, ids, nil
}
