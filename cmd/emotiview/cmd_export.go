package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"emotiview/internal/export"
	"emotiview/internal/logging"
)

var exportFlags struct {
	format string
	outDir string
}

var exportCmd = &cobra.Command{
	Use:   "export <artifact.parquet>...",
	Short: "Export artifacts or stats tables to CSV or XLSX",
	Long: `Flatten plot artifacts, grouped artifacts and stats tables into
spreadsheet files, one output per input, named after the input's stem.
Multiple inputs are exported concurrently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFlags.format, "format", "", "Output format: csv or xlsx (default from config, else csv)")
	f.StringVar(&exportFlags.outDir, "out", ".", "Output directory")
}

func runExport(cmd *cobra.Command, args []string) error {
	fmtName := exportFlags.format
	if fmtName == "" {
		fmtName = cfg.Format
	}
	if fmtName == "" {
		fmtName = export.FormatCSV
	}

	outs, err := export.All(cmd.Context(), args, outputPath(exportFlags.outDir), fmtName, logging.New("export"))
	if err != nil {
		return err
	}
	for _, out := range outs {
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return nil
}
