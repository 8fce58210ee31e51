package cmd

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coursekit/coursekit/internal/database"
	"github.com/coursekit/coursekit/internal/health"
)

// newHealthCmd creates the health command.
func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check database connectivity and schema state",
		Args:  cobra.NoArgs,
		Example: `  coursekit health
  coursekit health --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sql.DB, cfg database.Config) error {
				registry := health.NewRegistry(Version)
				registry.Register(health.NewDatabaseChecker(db))
				registry.Register(health.NewMigrationsChecker(database.NewMigrator(db, cfg.Driver)))

				resp := registry.Health(cmd.Context())

				switch outputFormat {
				case "json":
					encoder := json.NewEncoder(cmd.OutOrStdout())
					encoder.SetIndent("", "  ")
					if err := encoder.Encode(resp); err != nil {
						return err
					}
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "status: %s\n", resp.Status)
					for name, check := range resp.Checks {
						line := fmt.Sprintf("  %s: %s", name, check.Status)
						if check.Message != "" {
							line += " (" + check.Message + ")"
						}
						fmt.Fprintln(cmd.OutOrStdout(), line)
					}
				}

				if resp.Status == health.StatusUnhealthy {
					return fmt.Errorf("data-access layer is unhealthy")
				}
				return nil
			})
		},
	}
}
