package components

import (
	"errors"

	"library-circulation/internal/infra/docstore"
	"library-circulation/internal/infra/pgsql"
	"library-circulation/internal/infra/readstore"
	"library-circulation/internal/infra/uow"
	"library-circulation/internal/pkg/clock"
	"library-circulation/internal/pkg/config"
	"library-circulation/internal/usecase/queries"
	"library-circulation/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewPersistence,
	),
)

type PersistenceParams struct {
	fx.In

	Config config.Config
	Clock  clock.Clock
	Pool   *pgxpool.Pool `optional:"true"`
	Docs   *sqlx.DB      `optional:"true"`
}

// Persistence exposes the unit of work and read stores of the selected backend.
// Write-side repositories are built per transaction inside the unit of work.
type Persistence struct {
	fx.Out

	UnitOfWork        shared.UnitOfWork
	BookReadStore     queries.BookReadStore
	CheckoutReadStore queries.CheckoutReadStore
	UserReadStore     queries.UserReadStore
}

func NewPersistence(p PersistenceParams) (Persistence, error) {
	switch {
	case p.Pool != nil:
		q := pgsql.New()
		return Persistence{
			UnitOfWork:        uow.NewPostgresUoW(p.Pool, q, p.Config.Tx),
			BookReadStore:     readstore.NewBookReadStore(q, p.Pool),
			CheckoutReadStore: readstore.NewCheckoutReadStore(q, p.Pool),
			UserReadStore:     readstore.NewUserReadStore(q, p.Pool),
		}, nil
	case p.Docs != nil:
		return Persistence{
			UnitOfWork:        uow.NewDocumentUoW(p.Docs, p.Clock, p.Config.Tx),
			BookReadStore:     docstore.NewBookReadStore(p.Docs),
			CheckoutReadStore: docstore.NewCheckoutReadStore(p.Docs),
			UserReadStore:     docstore.NewUserReadStore(p.Docs),
		}, nil
	default:
		return Persistence{}, errors.New("no store connection configured")
	}
}
