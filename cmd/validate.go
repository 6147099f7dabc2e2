package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check that a dataset parses and carries every required column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLoader()
		if err != nil {
			return err
		}
		t, err := l.Load(args[0])
		if err != nil {
			return err
		}
		s := l.Schema()
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d rows, %d columns; schema ok (%d required, %d optional)\n",
			args[0], t.Rows(), len(t.Columns()), len(s.Required), len(s.Optional))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
