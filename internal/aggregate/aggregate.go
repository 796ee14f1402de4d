// Package aggregate merges an ordered list of single-condition plot records
// into one grouped, multi-condition artifact.
package aggregate

import (
	"errors"
	"log/slog"

	"emotiview/internal/artifact"
)

// Input names one per-condition artifact. Label is optional; when empty the
// record's condition field or a positional default is used instead.
type Input struct {
	Label string
	Path  string
}

// Aggregate loads every input in order and merges them into a grouped
// artifact: labels in input order, each data field collected into one inner
// sequence per condition (ragged lengths permitted), metadata copied from
// the first record.
//
// The field partition is classified from the FIRST record only and applied
// to all remaining records. Later records missing a classified data field
// fail explicitly; extra fields on later records are ignored. This mirrors
// the permissive first-wins behavior of the stages producing these files.
func Aggregate(inputs []Input, log *slog.Logger) (*artifact.Record, error) {
	if log == nil {
		log = slog.Default()
	}
	if len(inputs) == 0 {
		return nil, errors.New("aggregate: no input artifacts")
	}

	records := make([]*artifact.Record, len(inputs))
	labels := make([]string, len(inputs))
	for i, in := range inputs {
		rec, err := artifact.LoadPlot(in.Path)
		if err != nil {
			return nil, err
		}
		records[i] = rec
		lbl := resolveLabel(rec, in.Label, i)
		labels[i] = lbl.Value
		log.Debug("loaded condition artifact",
			"path", in.Path, "label", lbl.Value, "label_source", lbl.Source.String())
	}

	first := records[0]
	roles := artifact.Classify(first)
	dataFields := artifact.DataFields(first, roles)

	out := artifact.NewRecord()
	out.Set(artifact.FieldLabels, artifact.Strings(labels))
	for _, name := range first.Names() {
		switch roles[name] {
		case artifact.RoleMetadata, artifact.RoleMetadataList:
			v, _ := first.Get(name)
			out.Set(name, v)
		}
	}
	for _, name := range dataFields {
		col, err := collect(records, inputs, name)
		if err != nil {
			return nil, err
		}
		out.Set(name, col)
	}

	log.Info("aggregated conditions",
		"conditions", len(labels), "data_fields", len(dataFields))
	return out, nil
}

// collect gathers one data field across all records, preserving input order.
// The field's kind in the first record decides the matrix type.
func collect(records []*artifact.Record, inputs []Input, name string) (artifact.Value, error) {
	first, _ := records[0].Get(name)
	switch first.Kind() {
	case artifact.FloatList:
		m := make([][]float64, len(records))
		for i, rec := range records {
			v, ok := rec.Get(name)
			if !ok || v.Kind() != artifact.FloatList {
				return artifact.Value{}, &artifact.Error{
					Category: artifact.SchemaViolation,
					Path:     inputs[i].Path,
					Field:    name,
					Msg:      "record is missing a data field present in the first input",
				}
			}
			m[i] = v.AsFloats()
		}
		return artifact.Matrix(m), nil
	case artifact.StringList:
		m := make([][]string, len(records))
		for i, rec := range records {
			v, ok := rec.Get(name)
			if !ok || v.Kind() != artifact.StringList {
				return artifact.Value{}, &artifact.Error{
					Category: artifact.SchemaViolation,
					Path:     inputs[i].Path,
					Field:    name,
					Msg:      "record is missing a data field present in the first input",
				}
			}
			m[i] = v.AsStrings()
		}
		return artifact.StrMatrix(m), nil
	}
	return artifact.Value{}, artifact.SchemaErr(name, "data field has unexpected kind %s", first.Kind())
}
