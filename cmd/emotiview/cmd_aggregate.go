package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"emotiview/internal/address"
	"emotiview/internal/aggregate"
	"emotiview/internal/artifact"
	"emotiview/internal/logging"
	"emotiview/internal/store"
)

var aggregateFlags struct {
	signalPath string
	pattern    string
	output     string
	emitSignal bool
	legacy     bool
}

var aggregateCmd = &cobra.Command{
	Use:   "aggregate [label:path ...]",
	Short: "Merge per-condition artifacts into one grouped artifact",
	Long: `Merge single-condition plot artifacts into one grouped artifact, in input
order. Inputs are given either as positional arguments (optionally prefixed
with an explicit condition label) or resolved from a signal descriptor:

  emotiview aggregate NEG:neg.parquet NEU:neu.parquet POS:pos.parquet -o erp_group.parquet
  emotiview aggregate --signal out/erp_signal.parquet --pattern "*.parquet" -o erp_group.parquet

Labels fall back to each record's condition field, then to cond{i}.`,
	Args: cobra.ArbitraryArgs,
	RunE: runAggregate,
}

func init() {
	f := aggregateCmd.Flags()
	f.StringVar(&aggregateFlags.signalPath, "signal", "", "Signal descriptor locating the input folder")
	f.StringVar(&aggregateFlags.pattern, "pattern", "*.parquet", "Pattern to resolve inputs from the signal folder")
	f.StringVarP(&aggregateFlags.output, "output", "o", "", "Output grouped artifact path (required)")
	f.BoolVar(&aggregateFlags.emitSignal, "emit-signal", false, "Write a signal descriptor next to the output")
	f.BoolVar(&aggregateFlags.legacy, "legacy", false, "Allow deriving the folder from the signal filename")
	aggregateCmd.MarkFlagRequired("output")
}

func runAggregate(cmd *cobra.Command, args []string) error {
	log := logging.New("aggregate")

	inputs, err := collectInputs(args, log)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no inputs: pass artifact paths or --signal")
	}

	rec, err := aggregate.Aggregate(inputs, log)
	if err != nil {
		return err
	}
	data, err := artifact.EncodeGrouped(rec)
	if err != nil {
		return err
	}

	out := outputPath(aggregateFlags.output)
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

	if aggregateFlags.emitSignal {
		return emitConditionSignal(cmd, st, key, inputs)
	}
	return nil
}

// emitConditionSignal copies every input into a stage folder and writes the
// descriptor pointing at it, so downstream stages can resolve the original
// per-condition files. The descriptor goes last: it is the completeness
// marker consumers trust.
func emitConditionSignal(cmd *cobra.Command, st *store.FS, outKey string, inputs []aggregate.Input) error {
	stem := strings.TrimSuffix(outKey, filepath.Ext(outKey))
	baseID, stage := stageIdentity(stem)
	for i, in := range inputs {
		data, err := artifact.ReadBytes(in.Path)
		if err != nil {
			return err
		}
		if err := st.Put(address.ConditionKey(baseID, stage, i), data); err != nil {
			return err
		}
	}
	sig := &artifact.Signal{
		Source:     stage,
		Conditions: len(inputs),
		FolderPath: filepath.Dir(st.PathOf(address.ConditionKey(baseID, stage, 0))),
	}
	sigKey := address.SignalKey(baseID, stage)
	if err := address.EmitSignal(st, sigKey, sig); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), st.PathOf(sigKey))
	return nil
}

// collectInputs builds the ordered input list from positional label:path
// arguments plus any files resolved through the signal descriptor.
func collectInputs(args []string, log *slog.Logger) ([]aggregate.Input, error) {
	var inputs []aggregate.Input
	for _, arg := range args {
		label, path, ok := strings.Cut(arg, ":")
		if ok && label != "" && !strings.Contains(label, "/") && !strings.Contains(label, "\\") {
			inputs = append(inputs, aggregate.Input{Label: label, Path: path})
		} else {
			inputs = append(inputs, aggregate.Input{Path: arg})
		}
	}
	if aggregateFlags.signalPath == "" {
		return inputs, nil
	}

	sig, err := artifact.LoadSignal(aggregateFlags.signalPath)
	if err != nil {
		return nil, err
	}
	var folder string
	if aggregateFlags.legacy {
		folder, err = address.ResolveFolderLegacy(aggregateFlags.signalPath, sig, log)
	} else {
		folder, err = address.ResolveFolder(sig)
	}
	if err != nil {
		return nil, err
	}
	paths, err := address.Resolve(folder, aggregateFlags.pattern, sig)
	if err != nil {
		return nil, err
	}
	if sig.Conditions > 0 && len(paths) != sig.Conditions {
		log.Warn("resolved file count differs from descriptor",
			"resolved", len(paths), "declared", sig.Conditions)
	}
	for _, p := range paths {
		inputs = append(inputs, aggregate.Input{Path: p})
	}
	return inputs, nil
}
