package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"library-circulation/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/spf13/cobra"
)

const applyTimeout = 2 * time.Minute

type options struct {
	dir      string
	atlasBin string
	dryRun   bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply the relational schema under migrations/ with Atlas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dir, "dir", "file://migrations", "migration directory URL")
	root.PersistentFlags().StringVar(&opts.atlasBin, "atlas", "atlas", "path to the atlas binary")

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUp(cmd, opts)
		},
	}
	up.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print pending statements without executing them")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, opts)
		},
	}

	root.AddCommand(up, status)
	return root
}

// databaseURL returns "" when the configured backend keeps its own schema.
func databaseURL() (string, error) {
	store, db, err := config.LoadDBConfig()
	if err != nil {
		return "", err
	}
	if store.Driver != config.StoreDriverPostgres {
		return "", nil
	}
	if db.User == "" || db.DBName == "" {
		return "", fmt.Errorf("DB_USER and DB_NAME are required")
	}
	return db.BuildDSN(), nil
}

func newClient(opts *options) (*atlasexec.Client, error) {
	client, err := atlasexec.NewClient(".", opts.atlasBin)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize atlas client: %w", err)
	}
	return client, nil
}

func runUp(cmd *cobra.Command, opts *options) error {
	url, err := databaseURL()
	if err != nil {
		return err
	}
	if url == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "STORE_DRIVER is not postgres; the document store creates its schema on startup.")
		return nil
	}
	client, err := newClient(opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), applyTimeout)
	defer cancel()
	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    url,
		DirURL: opts.dir,
		DryRun: opts.dryRun,
	})
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if len(res.Applied) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No pending migrations (current version %s)\n", res.Current)
		return nil
	}
	for _, f := range res.Applied {
		fmt.Fprintf(cmd.OutOrStdout(), "Applied %s (%d statements)\n", f.Name, len(f.Applied))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Now at version %s\n", res.Target)
	return nil
}

func runStatus(cmd *cobra.Command, opts *options) error {
	url, err := databaseURL()
	if err != nil {
		return err
	}
	if url == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "STORE_DRIVER is not postgres; nothing to report.")
		return nil
	}
	client, err := newClient(opts)
	if err != nil {
		return err
	}

	status, err := client.MigrateStatus(cmd.Context(), &atlasexec.MigrateStatusParams{
		URL:    url,
		DirURL: opts.dir,
	})
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Status:  %s\nCurrent: %s\nNext:    %s\n", status.Status, status.Current, status.Next)
	for _, f := range status.Pending {
		fmt.Fprintf(cmd.OutOrStdout(), "  pending %s\n", f.Name)
	}
	return nil
}
