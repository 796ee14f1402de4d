package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"emotiview/internal/fdr"
	"emotiview/internal/logging"
	"emotiview/internal/store"
	"emotiview/internal/tabular"
)

var fdrFlags struct {
	column string
	prefix string
	alpha  float64
	output string
}

var fdrCmd = &cobra.Command{
	Use:   "fdr <stats.parquet>",
	Short: "Apply Benjamini-Hochberg FDR correction to a p-value column",
	Long: `Correct one p-value column of a flat stats table for multiple comparisons
and write a new table with <prefix>_significant and <prefix>_corrected_p
columns appended. The source column is not modified.

The output defaults to <stem>_fdr.parquet next to the input.`,
	Args: cobra.ExactArgs(1),
	RunE: runFDR,
}

func init() {
	f := fdrCmd.Flags()
	f.StringVar(&fdrFlags.column, "column", "", "Name of the p-value column (required)")
	f.StringVar(&fdrFlags.prefix, "prefix", "fdr", "Prefix for the appended columns")
	f.Float64Var(&fdrFlags.alpha, "alpha", 0, "Significance level (default from config, else 0.05)")
	f.StringVarP(&fdrFlags.output, "output", "o", "", "Output path (default <stem>_fdr.parquet)")
	fdrCmd.MarkFlagRequired("column")
}

func runFDR(cmd *cobra.Command, args []string) error {
	alpha := fdrFlags.alpha
	if alpha == 0 {
		alpha = cfg.Alpha
	}
	if alpha == 0 {
		alpha = fdr.DefaultAlpha
	}

	t, err := tabular.Load(args[0])
	if err != nil {
		return err
	}
	corr := fdr.New(logging.New("fdr"))
	out, err := corr.CorrectColumn(t, fdrFlags.column, fdrFlags.prefix, alpha)
	if err != nil {
		return err
	}
	data, err := tabular.Encode(out)
	if err != nil {
		return err
	}

	dst := fdrFlags.output
	if dst == "" {
		dst = derivedPath(args[0], "_fdr")
	}
	dst = outputPath(dst)
	st, err := store.OpenFS(filepath.Dir(dst))
	if err != nil {
		return err
	}
	defer st.Close()
	key := filepath.Base(dst)
	if err := st.Put(key, data); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), st.PathOf(key))
	return nil
}
