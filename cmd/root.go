package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kebairia/pgward/internal/config"
	"github.com/kebairia/pgward/internal/logger"
	"github.com/kebairia/pgward/internal/operations"
)

// configFile is the path to the optional YAML configuration.
var (
	configFile string

	// rootCmd is the base command for pgward.
	rootCmd = &cobra.Command{
		Use:   "pgward",
		Short: "Backup and restore one PostgreSQL database",
		Long: `pgward creates point-in-time backups of a single PostgreSQL database
in two formats at once (plain SQL and pg_dump custom format), restores
them, lists the backup inventory, and can run an unattended daily
backup schedule.`,
		SilenceUsage: true,
	}
)

// Execute runs the root command. Operation failures are logged and turn
// into a nonzero exit; the process itself never crashes on them.
func Execute() {
	log, err := logger.Init()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", "error", err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configFile, "config", "c", "", "path to YAML config file (optional, env vars work too)")

	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scheduleCmd)
}

// newOperator loads the configuration and wires it into an Operator; every
// subcommand starts here.
func newOperator() (*operations.Operator, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	return operations.NewOperator(cfg)
}
