package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/garrettladley/commish/internal/auth"
)

func loginCmd() *cobra.Command {
	var (
		email string
		admin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the commission platform",
		Long:  "Prompts for credentials and stores the issued tokens locally. With --admin the admin slot is used and any consultant session is cleared.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()

			in := bufio.NewReader(cmd.InOrStdin())
			if email == "" {
				email, err = promptLine(in, "Email: ")
				if err != nil {
					return err
				}
			}
			password, err := promptPassword(in, "Password: ")
			if err != nil {
				return err
			}

			if admin {
				err = auth.NewAdminSession(a.store, a.client.Auth, a.logger).Login(ctx, email, password)
				if err != nil {
					return loginError(err)
				}
				fmt.Println("Logged in as admin.")
				return nil
			}

			status, err := auth.NewController(a.store, a.client.Auth, a.client.Profile, a.logger).Login(ctx, email, password)
			if err != nil {
				return loginError(err)
			}
			fmt.Println(loginMessage(status))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().BoolVar(&admin, "admin", false, "sign in to the admin area")

	return cmd
}

// loginMessage reports the signed-in user. A newer logout can win the race
// with Login, leaving no profile in status.
func loginMessage(status auth.Status) string {
	if status.User == nil {
		return "Logged in, but the session ended before the profile loaded."
	}
	return fmt.Sprintf("Logged in as %s (%s).", status.User.Name, status.User.Email)
}

func loginError(err error) error {
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return errors.New("invalid email or password")
	}
	return fmt.Errorf("failed to log in: %w", err)
}

func promptLine(in *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("%s is required", strings.TrimSuffix(strings.ToLower(label), ": "))
	}
	return line, nil
}

// promptPassword reads without echo when stdin is a terminal and falls back to
// a plain line read when input is piped.
func promptPassword(in *bufio.Reader, label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(in, label)
	}

	fmt.Print(label)
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(b) == 0 {
		return "", errors.New("password is required")
	}
	return string(b), nil
}
