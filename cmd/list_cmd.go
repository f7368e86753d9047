package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listSQL bool

var listCmd = &cobra.Command{
	Use:   "list-backups",
	Short: "List backup artifacts on disk",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		op, err := newOperator()
		if err != nil {
			return err
		}

		list := op.ListBackups
		if listSQL {
			list = op.ListSQLDumps
		}

		files, err := list()
		if err != nil {
			return err
		}
		for _, file := range files {
			fmt.Fprintln(cmd.OutOrStdout(), file)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().
		BoolVar(&listSQL, "sql", false, "list plain SQL dumps instead of custom-format backups")
}
