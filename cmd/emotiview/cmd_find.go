package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"emotiview/internal/address"
	"emotiview/internal/artifact"
	"emotiview/internal/logging"
)

var findFlags struct {
	legacy bool
}

var findCmd = &cobra.Command{
	Use:   "find <signal.parquet> <pattern>",
	Short: "Resolve a pattern against a signal descriptor's folder",
	Long: `Resolve a file pattern against the folder a signal descriptor points at
and print the matches, one absolute path per line, sorted.

Patterns are plain globs, or qualified by descriptor stream metadata:

  emotiview find out/rec_signal.parquet "*.fif"
  emotiview find out/rec_signal.parquet "type:EEG*.fif"
  emotiview find out/rec_signal.parquet "name:BrainAmp*.fif"`,
	Args: cobra.ExactArgs(2),
	RunE: runFind,
}

func init() {
	findCmd.Flags().BoolVar(&findFlags.legacy, "legacy", false,
		"Allow deriving the folder from the signal filename")
}

func runFind(cmd *cobra.Command, args []string) error {
	sig, err := artifact.LoadSignal(args[0])
	if err != nil {
		return err
	}
	var folder string
	if findFlags.legacy {
		folder, err = address.ResolveFolderLegacy(args[0], sig, logging.New("find"))
	} else {
		folder, err = address.ResolveFolder(sig)
	}
	if err != nil {
		return err
	}
	matches, err := address.Resolve(folder, args[1], sig)
	if err != nil {
		return err
	}
	for _, m := range matches {
		fmt.Fprintln(cmd.OutOrStdout(), m)
	}
	return nil
}
