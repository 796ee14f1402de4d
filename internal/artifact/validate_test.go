package artifact

import "testing"

func TestValidatePlotRecord(t *testing.T) {
	rec := NewRecord()
	rec.Set(FieldXData, Floats([]float64{0, 1}))
	rec.Set(FieldYData, Floats([]float64{1, 2}))
	rec.Set(FieldYVar, Floats([]float64{0.1, 0.1}))
	if err := ValidatePlotRecord(rec); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	rec.Set(FieldYVar, Floats([]float64{0.1}))
	err := ValidatePlotRecord(rec)
	cat, ok := CategoryOf(err)
	if !ok || cat != DataShapeError {
		t.Fatalf("err = %v, want data-shape-error", err)
	}
}

func TestValidatePlotRecord_ScalarFieldsSkipped(t *testing.T) {
	rec := NewRecord()
	rec.Set(FieldXData, Str("not-a-list"))
	rec.Set(FieldYData, Floats([]float64{1, 2}))
	rec.Set(FieldYVar, Floats([]float64{0.1}))
	if err := ValidatePlotRecord(rec); err != nil {
		t.Fatalf("pairing should only apply when all three are lists: %v", err)
	}
}

func TestValidateGrouped(t *testing.T) {
	rec := NewRecord()
	rec.Set(FieldLabels, Strings([]string{"NEG", "POS"}))
	rec.Set(FieldYData, Matrix([][]float64{{1}, {2}}))
	rec.Set(FieldYVar, Matrix([][]float64{{0.1}, {0.2}}))
	if err := ValidateGrouped(rec); err != nil {
		t.Fatalf("valid grouped rejected: %v", err)
	}

	rec.Set(FieldYData, Matrix([][]float64{{1}}))
	err := ValidateGrouped(rec)
	cat, ok := CategoryOf(err)
	if !ok || cat != DataShapeError {
		t.Fatalf("err = %v, want data-shape-error", err)
	}
}

func TestValidateGrouped_NoLabels(t *testing.T) {
	rec := NewRecord()
	rec.Set(FieldYData, Matrix([][]float64{{1}}))
	err := ValidateGrouped(rec)
	cat, ok := CategoryOf(err)
	if !ok || cat != SchemaViolation {
		t.Fatalf("err = %v, want schema-violation", err)
	}
}

func TestValidateGrouped_RaggedInnerLengthsAllowed(t *testing.T) {
	rec := NewRecord()
	rec.Set(FieldLabels, Strings([]string{"NEG", "POS"}))
	rec.Set(FieldYData, Matrix([][]float64{{1, 2, 3}, {4}}))
	rec.Set(FieldYVar, Matrix([][]float64{{0.1, 0.1, 0.1}, {0.2}}))
	if err := ValidateGrouped(rec); err != nil {
		t.Fatalf("ragged inner lengths should be permitted: %v", err)
	}
}
