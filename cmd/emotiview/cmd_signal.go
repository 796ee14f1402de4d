package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"emotiview/internal/address"
	"emotiview/internal/artifact"
	"emotiview/internal/logging"
	"emotiview/internal/store"
)

var signalCmd = &cobra.Command{
	Use:   "signal",
	Short: "Emit or resolve stage signal descriptors",
}

var signalEmitFlags struct {
	source     string
	conditions int
	folder     string
	types      string
	names      string
	output     string
}

var signalEmitCmd = &cobra.Command{
	Use:   "emit",
	Short: "Write a signal descriptor for a completed stage",
	Long: `Write the descriptor a downstream stage waits on. Emit it only after
every per-condition file in the folder has been written; the descriptor is
the completeness marker consumers trust.`,
	Args: cobra.NoArgs,
	RunE: runSignalEmit,
}

var signalResolveFlags struct {
	legacy bool
}

var signalResolveCmd = &cobra.Command{
	Use:   "resolve <signal.parquet>",
	Short: "Print the folder a signal descriptor points at",
	Args:  cobra.ExactArgs(1),
	RunE:  runSignalResolve,
}

func init() {
	f := signalEmitCmd.Flags()
	f.StringVar(&signalEmitFlags.source, "source", "", "Producing stage name (required)")
	f.IntVar(&signalEmitFlags.conditions, "conditions", 0, "Number of condition files written (required)")
	f.StringVar(&signalEmitFlags.folder, "folder", "", "Folder holding the condition files (required)")
	f.StringVar(&signalEmitFlags.types, "types", "", "Comma-separated stream types, recording order")
	f.StringVar(&signalEmitFlags.names, "names", "", "Comma-separated stream names, recording order")
	f.StringVarP(&signalEmitFlags.output, "output", "o", "", "Descriptor output path (required)")
	signalEmitCmd.MarkFlagRequired("source")
	signalEmitCmd.MarkFlagRequired("conditions")
	signalEmitCmd.MarkFlagRequired("folder")
	signalEmitCmd.MarkFlagRequired("output")

	signalResolveCmd.Flags().BoolVar(&signalResolveFlags.legacy, "legacy", false,
		"Allow deriving the folder from the signal filename")

	signalCmd.AddCommand(signalEmitCmd)
	signalCmd.AddCommand(signalResolveCmd)
}

func runSignalEmit(cmd *cobra.Command, args []string) error {
	folder, err := filepath.Abs(signalEmitFlags.folder)
	if err != nil {
		return err
	}
	sig := &artifact.Signal{
		Source:      signalEmitFlags.source,
		Conditions:  signalEmitFlags.conditions,
		FolderPath:  folder,
		StreamTypes: splitList(signalEmitFlags.types),
		StreamNames: splitList(signalEmitFlags.names),
	}

	out := outputPath(signalEmitFlags.output)
	st, err := store.OpenFS(filepath.Dir(out))
	if err != nil {
		return err
	}
	defer st.Close()
	key := filepath.Base(out)
	if err := address.EmitSignal(st, key, sig); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), st.PathOf(key))
	return nil
}

func runSignalResolve(cmd *cobra.Command, args []string) error {
	sig, err := artifact.LoadSignal(args[0])
	if err != nil {
		return err
	}
	var folder string
	if signalResolveFlags.legacy {
		folder, err = address.ResolveFolderLegacy(args[0], sig, logging.New("signal"))
	} else {
		folder, err = address.ResolveFolder(sig)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), folder)
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
