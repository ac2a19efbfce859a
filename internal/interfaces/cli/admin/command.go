// Package admin hosts the administrative CLI commands.
package admin

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tavern/internal/domain/user"
	"tavern/internal/infrastructure/auth"
	"tavern/internal/infrastructure/config"
	"tavern/internal/infrastructure/database"
	"tavern/internal/infrastructure/repository"
	"tavern/internal/shared/logger"
)

var (
	env   string
	email string
	name  string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative tools",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		Long:  `Create an ADMIN role account, prompting for the password on the terminal.`,
		RunE:  runCreate,
	}
	create.Flags().StringVar(&email, "email", "", "Admin email address (required)")
	create.Flags().StringVar(&name, "name", "Administrator", "Admin display name")
	_ = create.MarkFlagRequired("email")

	cmd.AddCommand(create)
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		_ = database.Close()
	}()

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	hasher := auth.NewPasswordHasher(cfg.Auth.Password.BcryptCost)
	hash, err := hasher.Hash(string(password))
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := user.NewUser(strings.ToLower(strings.TrimSpace(email)), name, hash)
	if err != nil {
		return fmt.Errorf("invalid admin account: %w", err)
	}
	u.Promote()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userRepo := repository.NewUserRepository(database.Get(), logger.NewLogger())
	if err := userRepo.Create(ctx, u); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	fmt.Printf("admin account %s created (id %d)\n", u.Email(), u.ID())
	return nil
}
