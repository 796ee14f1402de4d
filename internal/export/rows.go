// Package export flattens artifacts and stats tables into row-oriented CSV
// or XLSX files for spreadsheet users downstream of the pipeline.
package export

import (
	"strconv"

	"emotiview/internal/artifact"
	"emotiview/internal/tabular"
)

// RecordRows flattens a plot or grouped record into long-format rows: one
// header row, then one row per (condition, point). The x column takes the
// record's x_label when present.
func RecordRows(rec *artifact.Record) ([][]string, error) {
	roles := artifact.Classify(rec)
	dataFields := artifact.DataFields(rec, roles)
	if len(dataFields) == 0 {
		return nil, artifact.SchemaErr("", "record has no data fields to export")
	}

	xHeader := "x"
	if v, ok := rec.Get(artifact.FieldXLabel); ok && v.Kind() == artifact.String {
		xHeader = v.AsString()
	}
	header := append([]string{"condition", xHeader}, dataFields...)
	rows := [][]string{header}

	labels := rec.Labels()
	if labels == nil {
		// Single-condition record: data fields are flat lists.
		cond := rec.Condition()
		n := pointCount(rec, dataFields, -1)
		for j := 0; j < n; j++ {
			row := []string{cond, xCell(rec, -1, j)}
			for _, name := range dataFields {
				v, _ := rec.Get(name)
				row = append(row, listCell(v, j))
			}
			rows = append(rows, row)
		}
		return rows, nil
	}

	for i, label := range labels {
		n := pointCount(rec, dataFields, i)
		for j := 0; j < n; j++ {
			row := []string{label, xCell(rec, i, j)}
			for _, name := range dataFields {
				v, _ := rec.Get(name)
				row = append(row, matrixCell(v, i, j))
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// pointCount returns the longest data series for condition i (i < 0 means a
// flat single-condition record).
func pointCount(rec *artifact.Record, dataFields []string, i int) int {
	n := 0
	for _, name := range dataFields {
		v, _ := rec.Get(name)
		switch {
		case i < 0:
			if v.Len() > n {
				n = v.Len()
			}
		case v.Kind() == artifact.FloatMatrix && i < v.Len():
			if l := len(v.AsMatrix()[i]); l > n {
				n = l
			}
		case v.Kind() == artifact.StringMatrix && i < v.Len():
			if l := len(v.AsStrMatrix()[i]); l > n {
				n = l
			}
		}
	}
	return n
}

func xCell(rec *artifact.Record, i, j int) string {
	v, ok := rec.Get(artifact.FieldXData)
	if !ok {
		return ""
	}
	switch v.Kind() {
	case artifact.StringList:
		if j < v.Len() {
			return v.AsStrings()[j]
		}
	case artifact.FloatList:
		if j < v.Len() {
			return formatFloat(v.AsFloats()[j])
		}
	case artifact.FloatMatrix:
		if i >= 0 && i < v.Len() && j < len(v.AsMatrix()[i]) {
			return formatFloat(v.AsMatrix()[i][j])
		}
	}
	return ""
}

func listCell(v artifact.Value, j int) string {
	switch v.Kind() {
	case artifact.FloatList:
		if j < v.Len() {
			return formatFloat(v.AsFloats()[j])
		}
	case artifact.StringList:
		if j < v.Len() {
			return v.AsStrings()[j]
		}
	}
	return ""
}

func matrixCell(v artifact.Value, i, j int) string {
	switch v.Kind() {
	case artifact.FloatMatrix:
		if i < v.Len() && j < len(v.AsMatrix()[i]) {
			return formatFloat(v.AsMatrix()[i][j])
		}
	case artifact.StringMatrix:
		if i < v.Len() && j < len(v.AsStrMatrix()[i]) {
			return v.AsStrMatrix()[i][j]
		}
	}
	return ""
}

// TableRows flattens a stats table: header row, then one row per table row.
func TableRows(t *tabular.Table) [][]string {
	rows := [][]string{t.Names()}
	for r := 0; r < t.NumRows(); r++ {
		row := make([]string, 0, t.NumCols())
		for _, name := range t.Names() {
			c, _ := t.Column(name)
			switch c.Type {
			case tabular.Float:
				row = append(row, formatFloat(c.Floats[r]))
			case tabular.Bool:
				row = append(row, strconv.FormatBool(c.Bools[r]))
			case tabular.String:
				row = append(row, c.Strings[r])
			case tabular.Int:
				row = append(row, strconv.FormatInt(c.Ints[r], 10))
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
