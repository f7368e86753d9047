package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kebairia/pgward/internal/logger"
	"github.com/kebairia/pgward/internal/scheduler"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule-daily-backup",
	Short: "Run an unattended backup every day at midnight",
	Long: `schedule-daily-backup registers a single daily trigger and keeps the
process alive to fire it. A failed scheduled backup is logged and the
schedule moves on to the next day. Stop with SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		op, err := newOperator()
		if err != nil {
			return err
		}

		sched := scheduler.New()
		if err := sched.Daily(op.ScheduledBackup); err != nil {
			return fmt.Errorf("register daily backup: %w", err)
		}
		sched.Start()
		defer sched.Stop()

		logger.Global().Info("daily backup scheduled",
			"database", op.Identifier(),
			"at", "00:00",
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		return nil
	},
}
