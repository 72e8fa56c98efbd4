package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"library-circulation/internal/domain/user"
	"library-circulation/internal/usecase/commands"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newUsersCommand() *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts",
	}

	var email, name string
	createLibrarianCmd := &cobra.Command{
		Use:   "create-librarian",
		Short: "Create a librarian account, prompting for its password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := promptPassword()
			if err != nil {
				return err
			}
			return withDeps(cmd.Context(), func(ctx context.Context, d deps) error {
				return createLibrarian(ctx, cmd.OutOrStdout(), d.Auth, email, name, password)
			})
		},
	}
	createLibrarianCmd.Flags().StringVar(&email, "email", "", "account email")
	createLibrarianCmd.Flags().StringVar(&name, "name", "", "display name")
	_ = createLibrarianCmd.MarkFlagRequired("email")
	_ = createLibrarianCmd.MarkFlagRequired("name")

	users.AddCommand(createLibrarianCmd)
	return users
}

func createLibrarian(ctx context.Context, out io.Writer, auth commands.AuthCommands, email, name, password string) error {
	view, err := auth.Register(ctx, &operator, commands.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     name,
		Role:     string(user.RoleLibrarian),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Created librarian %s (%s)\n", view.Email, view.ID)
	return nil
}

func promptPassword() (string, error) {
	first, err := readPassword("Password: ")
	if err != nil {
		return "", err
	}
	second, err := readPassword("Confirm password: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("passwords do not match")
	}
	return first, nil
}

func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
