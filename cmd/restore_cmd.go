package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kebairia/pgward/internal/operations"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Interactively select and restore a backup",
	Long: `restore lists the custom-format backups on disk, prompts for a
selection and an explicit confirmation, then restores the chosen file
into the configured database. Quitting or an invalid selection cancels
without an error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		op, err := newOperator()
		if err != nil {
			return err
		}

		session := operations.NewSession(op, cmd.InOrStdin(), cmd.OutOrStdout())
		return session.Run()
	},
}
