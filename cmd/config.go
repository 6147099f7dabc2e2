package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/riskprep-cli/internal/config"
	"github.com/KaramelBytes/riskprep-cli/internal/dataset"
	"github.com/KaramelBytes/riskprep-cli/internal/export"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set riskprep configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "variant: %s\n", cfg.Variant)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "output_format: %s\n", cfg.OutputFormat)
		fmt.Fprintf(out, "output_orient: %s\n", cfg.OutputOrient)
		fmt.Fprintf(out, "preview_rows: %d\n", cfg.PreviewRows)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// start from the file alone so flag and env overrides stay out of it
		fileCfg, err := cfgpkg.LoadFile(cfgFile)
		if err != nil {
			return err
		}
		switch key {
		case "variant":
			v, err := dataset.ParseVariant(val)
			if err != nil {
				return err
			}
			fileCfg.Variant = string(v)
		case "log_level":
			if _, err := cfgpkg.ParseLevel(val); err != nil {
				return err
			}
			fileCfg.LogLevel = val
		case "output_format":
			f, err := export.ParseFormat(val)
			if err != nil {
				return err
			}
			fileCfg.OutputFormat = string(f)
		case "output_orient":
			o, err := export.ParseOrient(val)
			if err != nil {
				return err
			}
			fileCfg.OutputOrient = string(o)
		case "preview_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for preview_rows: %v", val)
			}
			fileCfg.PreviewRows = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(fileCfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
