// Package migrate hosts the database migration CLI commands.
package migrate

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"tavern/internal/infrastructure/config"
	"tavern/internal/infrastructure/database"
	"tavern/internal/infrastructure/migration"
	"tavern/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, rollback or inspect the database schema migrations.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Run all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDatabase(migration.Up)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Rollback the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDatabase(migration.Down)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show migration status",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDatabase(migration.Status)
			},
		},
		&cobra.Command{
			Use:   "create [name]",
			Short: "Create a new migration file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return migration.Create(args[0])
			},
		},
	)

	return cmd
}

func withDatabase(fn func(db *gorm.DB) error) error {
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

	return fn(database.Get())
}
