// Package baseline converts a grouped artifact to baseline-relative values,
// dropping the baseline condition from the output.
package baseline

import (
	"fmt"
	"log/slog"
	"strings"

	"emotiview/internal/artifact"
)

// varianceField reports whether a data field carries per-point error rather
// than values. Errors are passed through unchanged, not differenced.
func varianceField(name string) bool {
	return name == artifact.FieldYVar || strings.HasSuffix(name, "_var") || strings.HasSuffix(name, "_sem")
}

// Normalize returns a new grouped artifact whose value fields are expressed
// as change from the baseline condition. The baseline is located by exact
// label match; when absent, index 0 is used instead with a warning (matching
// the historical behavior downstream tooling expects). Per point, the
// baseline value at the same index is subtracted; a condition longer than
// the baseline falls back to the baseline's first element for the overflow
// indexes. Variance fields and the x axis pass through unchanged. The
// baseline condition is removed from the output, so labels shrink by one.
func Normalize(rec *artifact.Record, baselineLabel string, log *slog.Logger) (*artifact.Record, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := artifact.ValidateGrouped(rec); err != nil {
		return nil, err
	}
	labels := rec.Labels()
	if len(labels) == 0 {
		return nil, artifact.SchemaErr(artifact.FieldLabels, "grouped artifact has no conditions")
	}

	baseIdx := -1
	for i, l := range labels {
		if l == baselineLabel {
			baseIdx = i
			break
		}
	}
	effective := baselineLabel
	if baseIdx < 0 {
		baseIdx = 0
		effective = labels[0]
		log.Warn("baseline label not found, using first condition",
			"requested", baselineLabel, "using", effective, "labels", labels)
	}

	keep := make([]string, 0, len(labels)-1)
	for i, l := range labels {
		if i != baseIdx {
			keep = append(keep, l)
		}
	}

	roles := artifact.Classify(rec)
	out := artifact.NewRecord()
	for _, name := range rec.Names() {
		v, _ := rec.Get(name)
		switch {
		case name == artifact.FieldLabels:
			out.Set(name, artifact.Strings(keep))
		case roles[name] != artifact.RoleData:
			out.Set(name, v)
		case name == artifact.FieldXData && v.Kind() == artifact.FloatMatrix:
			out.Set(name, artifact.Matrix(dropRowFloats(v.AsMatrix(), baseIdx)))
		case v.Kind() == artifact.FloatMatrix && !varianceField(name):
			rel, err := subtractBaseline(name, v.AsMatrix(), baseIdx)
			if err != nil {
				return nil, err
			}
			out.Set(name, artifact.Matrix(rel))
		case v.Kind() == artifact.FloatMatrix:
			out.Set(name, artifact.Matrix(dropRowFloats(v.AsMatrix(), baseIdx)))
		case v.Kind() == artifact.StringMatrix:
			out.Set(name, artifact.StrMatrix(dropRowStrings(v.AsStrMatrix(), baseIdx)))
		default:
			out.Set(name, v)
		}
	}

	annotateYLabel(out, effective)
	log.Info("normalized to baseline", "baseline", effective, "conditions", len(keep))
	return out, nil
}

// subtractBaseline differences every non-baseline row against the baseline
// row and drops the baseline itself.
func subtractBaseline(name string, m [][]float64, baseIdx int) ([][]float64, error) {
	base := m[baseIdx]
	if len(base) == 0 {
		return nil, artifact.ShapeErr(name, "baseline condition has no data points")
	}
	out := make([][]float64, 0, len(m)-1)
	for i, row := range m {
		if i == baseIdx {
			continue
		}
		rel := make([]float64, len(row))
		for j, v := range row {
			b := base[0]
			if j < len(base) {
				b = base[j]
			}
			rel[j] = v - b
		}
		out = append(out, rel)
	}
	return out, nil
}

func dropRowFloats(m [][]float64, idx int) [][]float64 {
	out := make([][]float64, 0, len(m)-1)
	for i, row := range m {
		if i != idx {
			out = append(out, row)
		}
	}
	return out
}

func dropRowStrings(m [][]string, idx int) [][]string {
	out := make([][]string, 0, len(m)-1)
	for i, row := range m {
		if i != idx {
			out = append(out, row)
		}
	}
	return out
}

// annotateYLabel marks the y axis as baseline-relative, leaving other
// metadata untouched.
func annotateYLabel(rec *artifact.Record, baseline string) {
	v, ok := rec.Get(artifact.FieldYLabel)
	if !ok || v.Kind() != artifact.String {
		return
	}
	rec.Set(artifact.FieldYLabel,
		artifact.Str(fmt.Sprintf("Δ %s (rel. to %s)", v.AsString(), baseline)))
}
