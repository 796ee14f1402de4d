package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"emotiview/internal/artifact"
	"emotiview/internal/baseline"
	"emotiview/internal/logging"
	"emotiview/internal/store"
)

var relativeFlags struct {
	baseline string
	output   string
}

var relativeCmd = &cobra.Command{
	Use:   "relative <grouped.parquet>",
	Short: "Express a grouped artifact relative to its baseline condition",
	Long: `Subtract the baseline condition from every other condition, point by
point, and drop the baseline from the output. When the requested baseline
label is not present the first condition is used instead (with a warning).

The output defaults to <stem>_rel.parquet next to the input.`,
	Args: cobra.ExactArgs(1),
	RunE: runRelative,
}

func init() {
	f := relativeCmd.Flags()
	f.StringVar(&relativeFlags.baseline, "baseline", "", "Baseline condition label (default from config, else NEU)")
	f.StringVarP(&relativeFlags.output, "output", "o", "", "Output path (default <stem>_rel.parquet)")
}

func runRelative(cmd *cobra.Command, args []string) error {
	log := logging.New("relative")

	label := relativeFlags.baseline
	if label == "" {
		label = cfg.Baseline
	}
	if label == "" {
		label = "NEU"
	}

	rec, err := artifact.LoadGrouped(args[0])
	if err != nil {
		return err
	}
	rel, err := baseline.Normalize(rec, label, log)
	if err != nil {
		return err
	}
	data, err := artifact.EncodeGrouped(rel)
	if err != nil {
		return err
	}

	out := relativeFlags.output
	if out == "" {
		out = derivedPath(args[0], "_rel")
	}
	out = outputPath(out)
	st, err := store.OpenFS(filepath.Dir(out))
	if err != nil {
		return err
	}
	defer st.Close()
	key := filepath.Base(out)
	if err := st.Put(key, data); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), st.PathOf(key))
	return nil
}
