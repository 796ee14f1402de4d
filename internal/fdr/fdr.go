// Package fdr applies Benjamini–Hochberg false-discovery-rate correction to
// p-value sets, standalone or as appended columns on a stats table.
package fdr

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"emotiview/internal/artifact"
	"emotiview/internal/tabular"
)

// DefaultAlpha is the significance level used when none is configured.
const DefaultAlpha = 0.05

// Corrector applies the step-up procedure under the independence /
// positive-dependence assumption.
type Corrector struct {
	Log *slog.Logger
}

func New(log *slog.Logger) *Corrector {
	if log == nil {
		log = slog.Default()
	}
	return &Corrector{Log: log}
}

// Correct returns, per input p-value, whether the hypothesis is rejected at
// level alpha and the corrected p-value. Output order matches input order.
//
// Empty input returns empty outputs. When every input is NaN the values are
// returned unchanged with nothing rejected (correction is not computed).
// NaN entries in a mixed input are excluded from the procedure and stay NaN.
func (c *Corrector) Correct(pValues []float64, alpha float64) ([]bool, []float64, error) {
	if !(alpha > 0 && alpha < 1) {
		return nil, nil, fmt.Errorf("alpha must be in (0, 1) exclusive, got %g", alpha)
	}
	n := len(pValues)
	if n == 0 {
		return []bool{}, []float64{}, nil
	}

	valid := make([]int, 0, n)
	for i, p := range pValues {
		if !math.IsNaN(p) {
			valid = append(valid, i)
		}
	}
	rejected := make([]bool, n)
	corrected := append([]float64(nil), pValues...)
	if len(valid) == 0 {
		c.Log.Warn("all p-values are NaN, returning input unchanged", "count", n)
		return rejected, corrected, nil
	}

	sort.Slice(valid, func(a, b int) bool {
		return pValues[valid[a]] < pValues[valid[b]]
	})

	m := float64(len(valid))
	// Step-up: scale by m/rank, then enforce monotonicity from the largest
	// rank down and clip at 1.
	adj := make([]float64, len(valid))
	for rank, idx := range valid {
		adj[rank] = pValues[idx] * m / float64(rank+1)
	}
	runMin := math.Inf(1)
	for rank := len(valid) - 1; rank >= 0; rank-- {
		runMin = math.Min(runMin, adj[rank])
		corrected[valid[rank]] = math.Min(runMin, 1)
	}
	for _, idx := range valid {
		rejected[idx] = corrected[idx] <= alpha
	}
	return rejected, corrected, nil
}

// CorrectColumn runs Correct over one column of a stats table and returns a
// new table with two appended columns, "<prefix>_significant" and
// "<prefix>_corrected_p". The source column is left untouched.
func (c *Corrector) CorrectColumn(t *tabular.Table, column, prefix string, alpha float64) (*tabular.Table, error) {
	if t == nil || t.NumCols() == 0 {
		return nil, artifact.SchemaErr(column, "input is not tabular")
	}
	p, ok := t.Floats(column)
	if !ok {
		return nil, artifact.SchemaErr(column, "no numeric column %q; columns: %v", column, t.Names())
	}
	rejected, corrected, err := c.Correct(p, alpha)
	if err != nil {
		return nil, err
	}
	out := t.Clone()
	if err := out.AddBools(prefix+"_significant", rejected); err != nil {
		return nil, err
	}
	if err := out.AddFloats(prefix+"_corrected_p", corrected); err != nil {
		return nil, err
	}
	c.Log.Info("applied FDR correction",
		"column", column, "alpha", alpha, "tests", len(p), "rejected", countTrue(rejected))
	return out, nil
}

func countTrue(bs []bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}
