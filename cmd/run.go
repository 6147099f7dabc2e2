package cmd

import (
	"fmt"

	"github.com/KaramelBytes/riskprep-cli/internal/export"
	"github.com/spf13/cobra"
)

var (
	runOutputPath string
	runFormat     string
	runOrient     string
	runStdout     bool
	runPreview    int
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Load, validate and clean a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := cfg.OutputFormat
		if cmd.Flags().Changed("format") {
			format = runFormat
		}
		orient := cfg.OutputOrient
		if cmd.Flags().Changed("orient") {
			orient = runOrient
		}
		f, err := export.ParseFormat(format)
		if err != nil {
			return err
		}
		o, err := export.ParseOrient(orient)
		if err != nil {
			return err
		}

		l, err := newLoader()
		if err != nil {
			return err
		}
		t, err := l.LoadAndClean(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case runOutputPath != "":
			if err := export.WriteFile(runOutputPath, t, f, o); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(out, "✓ Wrote cleaned dataset (%d rows, %d columns) to %s\n", t.Rows(), len(t.Columns()), runOutputPath)
		case runStdout:
			b, err := export.Encode(t, f, o)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
		default:
			rows := cfg.PreviewRows
			if cmd.Flags().Changed("preview-rows") {
				rows = runPreview
			}
			renderPreview(out, t, rows)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runOutputPath, "output", "o", "", "path to write the cleaned dataset")
	runCmd.Flags().StringVar(&runFormat, "format", "json", "output format: json | yaml (overrides config)")
	runCmd.Flags().StringVar(&runOrient, "orient", "records", "output shape: records | columns (overrides config)")
	runCmd.Flags().BoolVar(&runStdout, "stdout", false, "write the cleaned dataset to stdout instead of a preview")
	runCmd.Flags().IntVar(&runPreview, "preview-rows", 5, "rows shown in the preview table (overrides config)")
}
