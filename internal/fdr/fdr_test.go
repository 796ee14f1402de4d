package fdr

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"emotiview/internal/artifact"
	"emotiview/internal/tabular"
)

const tolerance = 1e-9

func TestCorrect_KnownValues(t *testing.T) {
	c := New(nil)
	rejected, corrected, err := c.Correct([]float64{0.001, 0.2, 0.03, 0.04}, 0.05)
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}

	wantRejected := []bool{true, false, false, false}
	if diff := cmp.Diff(wantRejected, rejected); diff != "" {
		t.Errorf("rejected mismatch (-want +got):\n%s", diff)
	}
	wantCorrected := []float64{0.004, 0.2, 0.05333333333333334, 0.05333333333333334}
	if diff := cmp.Diff(wantCorrected, corrected, cmpopts.EquateApprox(0, tolerance)); diff != "" {
		t.Errorf("corrected mismatch (-want +got):\n%s", diff)
	}
}

func TestCorrect_Empty(t *testing.T) {
	c := New(nil)
	rejected, corrected, err := c.Correct([]float64{}, 0.05)
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if len(rejected) != 0 || len(corrected) != 0 {
		t.Errorf("got %d rejected, %d corrected, want empty", len(rejected), len(corrected))
	}
}

func TestCorrect_AllNaN(t *testing.T) {
	var buf bytes.Buffer
	c := New(slog.New(slog.NewTextHandler(&buf, nil)))

	in := []float64{math.NaN(), math.NaN(), math.NaN()}
	rejected, corrected, err := c.Correct(in, 0.05)
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	for i := range rejected {
		if rejected[i] {
			t.Errorf("rejected[%d] = true, want false", i)
		}
		if !math.IsNaN(corrected[i]) {
			t.Errorf("corrected[%d] = %g, want NaN", i, corrected[i])
		}
	}
	if !strings.Contains(buf.String(), "all p-values are NaN") {
		t.Errorf("expected warning, got: %s", buf.String())
	}
}

func TestCorrect_MixedNaN(t *testing.T) {
	c := New(nil)
	rejected, corrected, err := c.Correct([]float64{0.001, math.NaN(), 0.04}, 0.05)
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if !math.IsNaN(corrected[1]) || rejected[1] {
		t.Errorf("NaN entry should stay NaN and unrejected: %g %t", corrected[1], rejected[1])
	}
	// The procedure runs over the two valid entries only (m = 2).
	if math.Abs(corrected[0]-0.002) > tolerance {
		t.Errorf("corrected[0] = %g, want 0.002", corrected[0])
	}
	if math.Abs(corrected[2]-0.04) > tolerance {
		t.Errorf("corrected[2] = %g, want 0.04", corrected[2])
	}
	if !rejected[0] || !rejected[2] {
		t.Errorf("rejected = %v, want both valid entries rejected", rejected)
	}
}

func TestCorrect_ClipsAtOne(t *testing.T) {
	c := New(nil)
	_, corrected, err := c.Correct([]float64{0.9, 0.95}, 0.05)
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	for i, v := range corrected {
		if v > 1 {
			t.Errorf("corrected[%d] = %g > 1", i, v)
		}
	}
}

func TestCorrect_AlphaValidation(t *testing.T) {
	c := New(nil)
	for _, alpha := range []float64{0, 1, -0.1, 1.5} {
		if _, _, err := c.Correct([]float64{0.01}, alpha); err == nil {
			t.Errorf("alpha %g should be rejected", alpha)
		}
	}
}

func TestCorrectColumn(t *testing.T) {
	tab := tabular.New()
	if err := tab.AddStrings("channel", []string{"Fz", "Cz", "Pz", "Oz"}); err != nil {
		t.Fatal(err)
	}
	if err := tab.AddFloats("p_value", []float64{0.001, 0.2, 0.03, 0.04}); err != nil {
		t.Fatal(err)
	}

	c := New(nil)
	out, err := c.CorrectColumn(tab, "p_value", "fdr", 0.05)
	if err != nil {
		t.Fatalf("CorrectColumn: %v", err)
	}

	sig, ok := out.Column("fdr_significant")
	if !ok {
		t.Fatal("fdr_significant column missing")
	}
	if diff := cmp.Diff([]bool{true, false, false, false}, sig.Bools); diff != "" {
		t.Errorf("significant mismatch (-want +got):\n%s", diff)
	}
	if _, ok := out.Floats("fdr_corrected_p"); !ok {
		t.Fatal("fdr_corrected_p column missing")
	}

	// Source table and column are untouched.
	p, _ := tab.Floats("p_value")
	if diff := cmp.Diff([]float64{0.001, 0.2, 0.03, 0.04}, p); diff != "" {
		t.Errorf("source column changed (-want +got):\n%s", diff)
	}
	if tab.Has("fdr_significant") {
		t.Error("source table gained a column")
	}
}

func TestCorrectColumn_MissingColumn(t *testing.T) {
	tab := tabular.New()
	if err := tab.AddStrings("channel", []string{"Fz"}); err != nil {
		t.Fatal(err)
	}
	_, err := New(nil).CorrectColumn(tab, "p_value", "fdr", 0.05)
	cat, ok := artifact.CategoryOf(err)
	if !ok || cat != artifact.SchemaViolation {
		t.Fatalf("err = %v, want schema-violation", err)
	}
	if !strings.Contains(err.Error(), "channel") {
		t.Errorf("error should list available columns: %v", err)
	}
}

func TestCorrectColumn_EmptyTable(t *testing.T) {
	_, err := New(nil).CorrectColumn(tabular.New(), "p", "fdr", 0.05)
	cat, ok := artifact.CategoryOf(err)
	if !ok || cat != artifact.SchemaViolation {
		t.Fatalf("err = %v, want schema-violation", err)
	}
}
