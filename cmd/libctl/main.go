package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"library-circulation/cmd/bootstrap"
	"library-circulation/cmd/bootstrap/components"
	"library-circulation/internal/domain/user"
	"library-circulation/internal/usecase/commands"
	"library-circulation/internal/usecase/queries"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// operator is the identity every libctl action runs as.
var operator = user.Identity{SubjectID: "libctl", Role: user.RoleLibrarian}

type deps struct {
	fx.In

	Auth    commands.AuthCommands
	Catalog commands.CatalogCommands
	Books   queries.BookQueries
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "libctl",
		Short:         "Administer the library catalog and accounts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBooksCommand(), newUsersCommand())
	return root
}

// withDeps builds the engine against the configured backend, runs fn, then
// closes every connection.
func withDeps(ctx context.Context, fn func(ctx context.Context, d deps) error) error {
	var d deps
	app := fx.New(
		bootstrap.ConfigModule,
		bootstrap.LoggerModule,
		bootstrap.DBModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.ChangeFeedModule,
		components.UseCaseModule,
		fx.Populate(&d),
		fx.NopLogger,
	)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		_ = app.Stop(stopCtx)
	}()

	return fn(ctx, d)
}
