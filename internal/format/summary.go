package format

import (
	"fmt"

	"emotiview/internal/artifact"
	"emotiview/internal/tabular"
)

// Summary renders one row per record field: name, role, value kind, outer
// length and a preview. The footer carries the detected plot type.
func Summary(rec *artifact.Record, m Mode) string {
	roles := artifact.Classify(rec)
	tb := NewTable(m)
	tb.Header("Field", "Role", "Kind", "Len", "Value")
	for _, name := range rec.Names() {
		v, _ := rec.Get(name)
		length := "-"
		if v.IsList() {
			length = fmt.Sprintf("%d", v.Len())
		}
		tb.Row(name, roles[name].String(), v.Kind().String(), length, Preview(v, 48))
	}
	tb.Footer("plot_type", "", "", "", rec.PlotType())
	tb.Columns(ColumnConfig{Number: 4, Right: true}, ColumnConfig{Number: 5, MaxWidth: 50})
	return tb.String()
}

// TableSummary renders a stats table's columns and up to maxRows of data.
func TableSummary(t *tabular.Table, m Mode, maxRows int) string {
	tb := NewTable(m)
	names := t.Names()
	header := make([]string, len(names))
	for i, n := range names {
		c, _ := t.Column(n)
		header[i] = fmt.Sprintf("%s (%s)", n, c.Type)
	}
	tb.Header(header...)

	rows := t.NumRows()
	shown := rows
	if maxRows > 0 && shown > maxRows {
		shown = maxRows
	}
	for r := 0; r < shown; r++ {
		vals := make([]any, len(names))
		for i, n := range names {
			c, _ := t.Column(n)
			vals[i] = cellValue(c, r)
		}
		tb.Row(vals...)
	}
	if shown < rows {
		tb.Footer(fmt.Sprintf("%d of %d rows", shown, rows))
	}
	return tb.String()
}

func cellValue(c tabular.Column, r int) any {
	switch c.Type {
	case tabular.Float:
		return fmt.Sprintf("%g", c.Floats[r])
	case tabular.Bool:
		return c.Bools[r]
	case tabular.String:
		return c.Strings[r]
	case tabular.Int:
		return c.Ints[r]
	}
	return ""
}

// Preview renders a value for display, truncated to max characters.
func Preview(v artifact.Value, max int) string {
	return Truncate(v.GoString(), max)
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
