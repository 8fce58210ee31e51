package cmd

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coursekit/coursekit/internal/database"
)

// newMigrateCmd creates the migrate command with its subcommands.
func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect schema migrations",
		Long: `Apply the embedded schema migrations to the configured database.

Connectivity is read from the environment (DB_DRIVER, DB_HOST, DB_PORT,
DB_NAME, DB_USER, DB_PASSWORD, DB_SSL_MODE, DB_SSL_ROOT_CERT, DB_PATH).`,
	}

	cmd.AddCommand(newMigrateUpCmd())
	cmd.AddCommand(newMigrateDownCmd())
	cmd.AddCommand(newMigrateStatusCmd())

	return cmd
}

func newMigrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sql.DB, cfg database.Config) error {
				if err := database.NewMigrator(db, cfg.Driver).MigrateUp(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			})
		},
	}
}

func newMigrateDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the last applied migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sql.DB, cfg database.Config) error {
				if err := database.NewMigrator(db, cfg.Driver).MigrateDown(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "last migration rolled back")
				return nil
			})
		},
	}
}

func newMigrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the status of every migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sql.DB, cfg database.Config) error {
				migrations, err := database.NewMigrator(db, cfg.Driver).Status()
				if err != nil {
					return err
				}
				for _, m := range migrations {
					state := "pending"
					if m.AppliedAt != nil {
						state = "applied " + m.AppliedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %-40s %s\n", m.Version, m.Name, state)
				}
				return nil
			})
		},
	}
}

// withDB connects using the environment configuration, runs fn, and closes
// the pool on every path.
func withDB(fn func(*sql.DB, database.Config) error) error {
	cfg := database.ConfigFromEnv()
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Ping(db); err != nil {
		return err
	}
	return fn(db, cfg)
}
