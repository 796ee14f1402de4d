package tabular

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emotiview/internal/artifact"
)

func statsTable(t *testing.T) *Table {
	t.Helper()
	tab := New()
	require.NoError(t, tab.AddStrings("channel", []string{"Fz", "Cz"}))
	require.NoError(t, tab.AddFloats("p_value", []float64{0.01, 0.2}))
	require.NoError(t, tab.AddBools("significant", []bool{true, false}))
	require.NoError(t, tab.AddInts("n_trials", []int64{40, 38}))
	return tab
}

func TestTable_Accessors(t *testing.T) {
	tab := statsTable(t)
	assert.Equal(t, 2, tab.NumRows())
	assert.Equal(t, 4, tab.NumCols())
	assert.Equal(t, []string{"channel", "p_value", "significant", "n_trials"}, tab.Names())

	p, ok := tab.Floats("p_value")
	require.True(t, ok)
	assert.Equal(t, []float64{0.01, 0.2}, p)

	_, ok = tab.Floats("channel")
	assert.False(t, ok, "Floats on a string column")
	_, ok = tab.Column("absent")
	assert.False(t, ok)
}

func TestTable_AddRejectsDuplicatesAndLengthMismatch(t *testing.T) {
	tab := statsTable(t)
	assert.Error(t, tab.AddFloats("p_value", []float64{1, 2}))
	assert.Error(t, tab.AddFloats("extra", []float64{1}))
}

func TestTable_CloneIsIndependent(t *testing.T) {
	tab := statsTable(t)
	cp := tab.Clone()
	require.NoError(t, cp.AddFloats("new_col", []float64{1, 2}))

	p, _ := cp.Floats("p_value")
	p[0] = 99

	orig, _ := tab.Floats("p_value")
	assert.Equal(t, 0.01, orig[0])
	assert.False(t, tab.Has("new_col"))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tab := statsTable(t)
	data, err := Encode(tab)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	// Parquet group schemas order columns alphabetically.
	assert.Equal(t, []string{"channel", "n_trials", "p_value", "significant"}, got.Names())

	ch, ok := got.Column("channel")
	require.True(t, ok)
	assert.Equal(t, []string{"Fz", "Cz"}, ch.Strings)
	p, ok := got.Floats("p_value")
	require.True(t, ok)
	if diff := cmp.Diff([]float64{0.01, 0.2}, p); diff != "" {
		t.Errorf("p_value mismatch (-want +got):\n%s", diff)
	}
	sig, ok := got.Column("significant")
	require.True(t, ok)
	assert.Equal(t, []bool{true, false}, sig.Bools)
	n, ok := got.Column("n_trials")
	require.True(t, ok)
	assert.Equal(t, []int64{40, 38}, n.Ints)
}

func TestDecode_RejectsNestedColumns(t *testing.T) {
	rec := artifact.NewRecord()
	rec.Set(artifact.FieldLabels, artifact.Strings([]string{"NEG"}))
	rec.Set(artifact.FieldXData, artifact.Matrix([][]float64{{0}}))
	rec.Set(artifact.FieldYData, artifact.Matrix([][]float64{{1}}))
	rec.Set(artifact.FieldYVar, artifact.Matrix([][]float64{{0}}))
	data, err := artifact.EncodeGrouped(rec)
	require.NoError(t, err)

	_, err = Decode(data)
	cat, ok := artifact.CategoryOf(err)
	require.True(t, ok, "err = %v", err)
	assert.Equal(t, artifact.SchemaViolation, cat)
}

func TestEncode_EmptyTable(t *testing.T) {
	_, err := Encode(New())
	assert.Error(t, err)
}
