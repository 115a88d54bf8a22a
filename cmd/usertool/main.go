// Package main implements usertool, which provisions accounts and mints bearer
// tokens for the project API. Account management is not exposed over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"projectapi/internal/auth"
	"projectapi/internal/config"
	"projectapi/internal/database"
	"projectapi/internal/database/migration"
	"projectapi/internal/logging"
	"projectapi/internal/model"
	"projectapi/internal/repository"
	"projectapi/internal/repository/postgres"
)

var (
	userName  string
	userEmail string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "usertool",
	Short: "Provision users and tokens for the project API",
	Long: `usertool talks to the project API database directly. It reads the same
configuration as the server (CONFIG_FILE, environment, .env).`,
	SilenceUsage: true,
}

func init() {
	createCmd.Flags().StringVar(&userName, "name", "", "display name")
	createCmd.Flags().StringVar(&userEmail, "email", "", "email address (unique)")
	_ = createCmd.MarkFlagRequired("email")

	tokenCmd.Flags().StringVar(&userEmail, "email", "", "email address of an existing user")
	_ = tokenCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(tokenCmd)
}

// createCmd creates a user, or reuses the one with that email, and prints a token.
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user and print a bearer token",
	Long: `Create a user and print a bearer token for it.

Examples:
  # Create a user
  usertool create --name "Ada Lovelace" --email ada@example.com`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withEnv(cmd.Context(), func(e *env) error {
			u, created, err := ensureUser(cmd.Context(), e.users, e.clock, userName, userEmail)
			if err != nil {
				return err
			}
			return printToken(cmd.OutOrStdout(), e.issuer, u, created)
		})
	},
}

// tokenCmd mints a fresh token for an existing user.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a bearer token for an existing user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withEnv(cmd.Context(), func(e *env) error {
			u, err := e.users.FindByEmail(cmd.Context(), normalizeEmail(userEmail))
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("no user with email %s", userEmail)
			}
			if err != nil {
				return err
			}
			return printToken(cmd.OutOrStdout(), e.issuer, u, false)
		})
	},
}

type tokenIssuer interface {
	Generate(userID string) (string, error)
}

type env struct {
	users  repository.UserRepository
	issuer tokenIssuer
	clock  clock.Clock
}

// withEnv connects to the database, applies migrations and runs fn.
func withEnv(ctx context.Context, fn func(*env) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	issuer, err := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		return err
	}

	db, err := database.NewPostgres(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
		logger.Error("migration_failed", zap.Error(err))
		return err
	}

	return fn(&env{users: postgres.NewUserPostgres(db), issuer: issuer, clock: clock.New()})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ensureUser returns the user registered under email, creating it when absent.
func ensureUser(ctx context.Context, users repository.UserRepository, clk clock.Clock, name, email string) (*model.User, bool, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, false, fmt.Errorf("invalid email %q", email)
	}

	existing, err := users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, false, fmt.Errorf("lookup user: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	u, err := users.Create(ctx, &model.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		CreatedAt: clk.Now().UTC(),
	})
	if err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	return u, true, nil
}

func printToken(w io.Writer, issuer tokenIssuer, u *model.User, created bool) error {
	token, err := issuer.Generate(u.ID)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}
	state := "existing"
	if created {
		state = "created"
	}
	fmt.Fprintf(w, "user_id: %s (%s)\nemail:   %s\ntoken:   %s\n", u.ID, state, u.Email, token)
	return nil
}
