package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "create-backup",
	Short: "Create plain and custom-format backups of the configured database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		op, err := newOperator()
		if err != nil {
			return err
		}

		plain, custom, err := op.CreateBackup()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s and %s\n",
			filepath.Base(custom), filepath.Base(plain))
		return nil
	},
}
