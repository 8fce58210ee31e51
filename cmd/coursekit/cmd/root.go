// Package cmd provides the CLI commands for coursekit.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/coursekit/coursekit/pkg/logging"
)

var (
	// verbose enables debug logging
	verbose bool
	// outputFormat specifies the output format (json, plain)
	outputFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "coursekit",
	Short: "Data-access tooling for the teaching schema",
	Long: `coursekit manages the relational teaching schema (courses, classes,
enrollments, venues) backing the attendance platform.

It applies schema migrations and reports their status; the schema itself
is consumed by applications through the repository packages.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := logging.ConfigFromEnv()
		if verbose {
			cfg.Level = "debug"
		}
		logging.New(cfg).SetDefault()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// NewRootCmd creates a fresh root command tree for testing.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "coursekit",
		Short:        rootCmd.Short,
		Long:         rootCmd.Long,
		SilenceUsage: true,
	}
	addCommands(cmd)
	return cmd
}

func addCommands(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "plain", "output format (json|plain)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newHealthCmd())
}

func init() {
	addCommands(rootCmd)
}
