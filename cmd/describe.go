package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/riskprep-cli/internal/analysis"
	"github.com/KaramelBytes/riskprep-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	descOutputPath string
	descSampleRows int
	descGroupBy    []string
	descOutliers   bool
	descOutlierThr float64
	descCleaned    bool
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Summarize a dataset: column kinds, missing values and distributions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt := analysis.DefaultOptions()
		opt.SampleRows = descSampleRows
		opt.GroupBy = descGroupBy
		opt.Outliers = descOutliers
		if descOutlierThr > 0 {
			opt.OutlierThreshold = descOutlierThr
		}

		l, err := newLoader()
		if err != nil {
			return err
		}
		t, err := l.Load(path)
		if err != nil {
			return err
		}
		name := filepath.Base(path)
		if descCleaned {
			t = l.Clean(t)
			name += " (cleaned)"
		}
		md := analysis.Summarize(name, t, opt).Markdown()

		if descOutputPath != "" {
			if err := utils.SafeWriteFile(descOutputPath, []byte(md)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote summary to %s\n", descOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVarP(&descOutputPath, "output", "o", "", "optional path to write the summary (Markdown)")
	describeCmd.Flags().IntVar(&descSampleRows, "sample-rows", 5, "number of sample rows to include")
	describeCmd.Flags().StringSliceVar(&descGroupBy, "group-by", nil, "comma-separated column names to group by (repeatable)")
	describeCmd.Flags().BoolVar(&descOutliers, "outliers", true, "compute robust outlier counts (MAD)")
	describeCmd.Flags().Float64Var(&descOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (MAD-based)")
	describeCmd.Flags().BoolVar(&descCleaned, "cleaned", false, "summarize the dataset after cleaning")
}
