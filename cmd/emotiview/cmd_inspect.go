package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"emotiview/internal/artifact"
	"emotiview/internal/format"
	"emotiview/internal/tabular"
)

var inspectFlags struct {
	markdown bool
	rows     int
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <artifact.parquet>",
	Short: "Show an artifact's family, fields and roles",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	f := inspectCmd.Flags()
	f.BoolVar(&inspectFlags.markdown, "markdown", false, "Render Markdown instead of an ASCII table")
	f.IntVar(&inspectFlags.rows, "rows", 20, "Max table rows to show (0 = all)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := artifact.ReadBytes(args[0])
	if err != nil {
		return err
	}
	family, err := artifact.Detect(data)
	if err != nil {
		return err
	}
	mode := format.ASCII
	if inspectFlags.markdown {
		mode = format.Markdown
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", args[0], family)

	switch family {
	case artifact.FamilyPlot:
		rec, err := artifact.DecodePlot(data)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, format.Summary(rec, mode))
	case artifact.FamilyGrouped:
		rec, err := artifact.DecodeGrouped(data)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, format.Summary(rec, mode))
	case artifact.FamilySignal:
		sig, err := artifact.DecodeSignal(data)
		if err != nil {
			return err
		}
		tb := format.NewTable(mode)
		tb.Header("Field", "Value")
		tb.Row("source", sig.Source)
		tb.Row("conditions", sig.Conditions)
		tb.Row("folder_path", sig.FolderPath)
		tb.Row("stream_types", fmt.Sprintf("%v", sig.StreamTypes))
		tb.Row("stream_names", fmt.Sprintf("%v", sig.StreamNames))
		fmt.Fprintln(out, tb.String())
	case artifact.FamilyTable:
		t, err := tabular.Decode(data)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, format.TableSummary(t, mode, inspectFlags.rows))
	default:
		return artifact.SchemaErr("", "unrecognized artifact schema in %s", args[0])
	}
	return nil
}
