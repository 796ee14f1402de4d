// emotiview is the batch-pipeline CLI: aggregate per-condition artifacts,
// normalize against a baseline, correct p-value tables, and move artifacts
// between stages through signal descriptors.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"emotiview/internal/artifact"
	"emotiview/internal/config"
	"emotiview/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	logLevel   string
	logFormat  string
	configPath string
}

// cfg holds the resolved tool configuration, shared by all subcommands.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "emotiview",
	Short: "Batch pipeline tools for physiological signal analysis artifacts",
	Long: "Emotiview merges per-condition plot artifacts, expresses them relative\n" +
		"to a baseline condition, applies FDR correction to stats tables, and\n" +
		"resolves files between pipeline stages through signal descriptors.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(rootFlags.logLevel)
		if err != nil {
			return err
		}
		logging.Init(level, rootFlags.logFormat)

		if rootFlags.configPath != "" {
			c, err := config.LoadFromPath(rootFlags.configPath)
			if err != nil {
				return err
			}
			if err := c.Validate(); err != nil {
				return err
			}
			cfg = c
		} else {
			c, err := config.Default()
			if err != nil {
				return err
			}
			cfg = c
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")
	pf.StringVar(&rootFlags.configPath, "config", "", "Path to config file (YAML/JSON)")

	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(relativeCmd)
	rootCmd.AddCommand(fdrCmd)
	rootCmd.AddCommand(signalCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if cat, ok := artifact.CategoryOf(err); ok {
			fmt.Fprintf(os.Stderr, "emotiview: %s: %v\n", cat, err)
		} else {
			fmt.Fprintf(os.Stderr, "emotiview: %v\n", err)
		}
		os.Exit(1)
	}
}
