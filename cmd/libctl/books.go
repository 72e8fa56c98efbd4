package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	reqdto "library-circulation/internal/handler/dto/request"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/queries"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newBooksCommand() *cobra.Command {
	books := &cobra.Command{
		Use:   "books",
		Short: "Manage catalog titles",
	}

	importCmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Create every title listed in a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := readImportFile(args[0])
			if err != nil {
				return err
			}
			return withDeps(cmd.Context(), func(ctx context.Context, d deps) error {
				return importBooks(ctx, cmd.OutOrStdout(), d, entries)
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the catalog with its copy counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDeps(cmd.Context(), func(ctx context.Context, d deps) error {
				return listBooks(ctx, cmd.OutOrStdout(), d.Books, queries.MaxListLimit)
			})
		},
	}

	books.AddCommand(importCmd, listCmd)
	return books
}

func readImportFile(path string) ([]reqdto.CreateBookRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var entries []reqdto.CreateBookRequest
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return entries, nil
}

// importBooks keeps going past bad entries; titles that already exist are skipped.
func importBooks(ctx context.Context, out io.Writer, d deps, entries []reqdto.CreateBookRequest) error {
	var created, skipped, failed int
	for _, entry := range entries {
		req, err := entry.ToCommand()
		if err == nil {
			_, err = d.Catalog.CreateBook(ctx, operator, req)
		}
		switch {
		case err == nil:
			fmt.Fprintf(out, "created  %-20s %s\n", entry.ISBN, entry.Title)
			created++
		case errs.Is(err, errs.ErrDuplicateISBN):
			fmt.Fprintf(out, "exists   %-20s %s\n", entry.ISBN, entry.Title)
			skipped++
		default:
			fmt.Fprintf(out, "failed   %-20s %v\n", entry.ISBN, err)
			failed++
		}
	}

	fmt.Fprintf(out, "\nImported %d, skipped %d, failed %d\n", created, skipped, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d entries failed", failed, len(entries))
	}
	return nil
}

// listBooks walks the whole catalog pageSize titles at a time.
func listBooks(ctx context.Context, out io.Writer, books queries.BookQueries, pageSize int) error {
	fmt.Fprintf(out, "%-20s %-50s %9s %9s\n", "ISBN", "Title", "Available", "Total")
	fmt.Fprintln(out, strings.Repeat("-", 91))

	var cursor *queries.Cursor
	for {
		page, next, err := books.List(ctx, cursor, pageSize)
		if err != nil {
			return err
		}
		for _, b := range page {
			fmt.Fprintf(out, "%-20s %-50s %9d %9d\n", b.ISBN, truncate(b.Title, 50), b.AvailableCopies, b.TotalCopies)
		}
		if next == nil {
			return nil
		}
		cursor = next
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
