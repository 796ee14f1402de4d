package aggregate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"emotiview/internal/artifact"
)

// writePlot encodes a per-condition record into dir and returns its path.
func writePlot(t *testing.T, dir, name string, cond string, y []float64) string {
	t.Helper()
	rec := artifact.NewRecord()
	if cond != "" {
		rec.Set(artifact.FieldCondition, artifact.Str(cond))
	}
	x := make([]float64, len(y))
	for i := range x {
		x[i] = float64(i) * 0.5
	}
	rec.Set(artifact.FieldXData, artifact.Floats(x))
	rec.Set(artifact.FieldYData, artifact.Floats(y))
	rec.Set(artifact.FieldYVar, artifact.Floats(make([]float64, len(y))))
	rec.Set(artifact.FieldPlotType, artifact.Str(artifact.PlotLine))
	rec.Set(artifact.FieldYLabel, artifact.Str("Amplitude (µV)"))

	data, err := artifact.EncodePlot(rec)
	if err != nil {
		t.Fatalf("EncodePlot: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAggregate_ThreeConditions(t *testing.T) {
	dir := t.TempDir()
	inputs := []Input{
		{Path: writePlot(t, dir, "neg.parquet", "NEG", []float64{1, 2})},
		{Path: writePlot(t, dir, "neu.parquet", "NEU", []float64{3, 4})},
		{Path: writePlot(t, dir, "pos.parquet", "POS", []float64{5, 6})},
	}

	got, err := Aggregate(inputs, nil)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if diff := cmp.Diff([]string{"NEG", "NEU", "POS"}, got.Labels()); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}

	y, _ := got.Get(artifact.FieldYData)
	want := [][]float64{{1, 2}, {3, 4}, {5, 6}}
	if diff := cmp.Diff(want, y.AsMatrix()); diff != "" {
		t.Errorf("y_data mismatch (-want +got):\n%s", diff)
	}

	// Metadata comes from the first record.
	yl, _ := got.Get(artifact.FieldYLabel)
	if yl.AsString() != "Amplitude (µV)" {
		t.Errorf("y_label = %q", yl.AsString())
	}
	if got.PlotType() != artifact.PlotLine {
		t.Errorf("plot_type = %q", got.PlotType())
	}
}

func TestAggregate_RaggedLengthsPermitted(t *testing.T) {
	dir := t.TempDir()
	inputs := []Input{
		{Path: writePlot(t, dir, "a.parquet", "NEG", []float64{1, 2, 3})},
		{Path: writePlot(t, dir, "b.parquet", "POS", []float64{4})},
	}
	got, err := Aggregate(inputs, nil)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	y, _ := got.Get(artifact.FieldYData)
	if len(y.AsMatrix()[0]) != 3 || len(y.AsMatrix()[1]) != 1 {
		t.Errorf("inner lengths = %d, %d", len(y.AsMatrix()[0]), len(y.AsMatrix()[1]))
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	if _, err := Aggregate(nil, nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestAggregate_MissingPath(t *testing.T) {
	_, err := Aggregate([]Input{{Path: filepath.Join(t.TempDir(), "absent.parquet")}}, nil)
	cat, ok := artifact.CategoryOf(err)
	if !ok || cat != artifact.InputNotFound {
		t.Fatalf("err = %v, want input-not-found", err)
	}
}

func TestResolveLabel_Tiers(t *testing.T) {
	withCond := artifact.NewRecord()
	withCond.Set(artifact.FieldCondition, artifact.Str("NEG"))
	without := artifact.NewRecord()

	tests := []struct {
		name     string
		rec      *artifact.Record
		explicit string
		want     Label
	}{
		{"record wins", withCond, "OTHER", Label{Value: "NEG", Source: LabelFromRecord}},
		{"explicit", without, "NEU", Label{Value: "NEU", Source: LabelExplicit}},
		{"synthesized", without, "", Label{Value: "cond3", Source: LabelSynthesized}},
	}
	for _, tc := range tests {
		got := resolveLabel(tc.rec, tc.explicit, 2)
		if got != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestAggregate_LosslessThroughCodec(t *testing.T) {
	dir := t.TempDir()
	inputs := []Input{
		{Path: writePlot(t, dir, "neg.parquet", "NEG", []float64{1.25, -2.5})},
		{Path: writePlot(t, dir, "pos.parquet", "POS", []float64{0.001, 99})},
	}
	rec, err := Aggregate(inputs, nil)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	data, err := artifact.EncodeGrouped(rec)
	if err != nil {
		t.Fatalf("EncodeGrouped: %v", err)
	}
	back, err := artifact.DecodeGrouped(data)
	if err != nil {
		t.Fatalf("DecodeGrouped: %v", err)
	}
	y, _ := back.Get(artifact.FieldYData)
	want := [][]float64{{1.25, -2.5}, {0.001, 99}}
	if diff := cmp.Diff(want, y.AsMatrix()); diff != "" {
		t.Errorf("values changed through encode/decode (-want +got):\n%s", diff)
	}
}
