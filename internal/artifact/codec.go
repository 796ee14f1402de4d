package artifact

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Family identifies which canonical schema a parquet artifact carries.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyPlot           // one per-condition plot-ready record
	FamilyGrouped        // merged multi-condition artifact
	FamilySignal         // signal descriptor
	FamilyTable          // flat stats table (see internal/tabular)
)

func (f Family) String() string {
	switch f {
	case FamilyPlot:
		return "plot-record"
	case FamilyGrouped:
		return "grouped"
	case FamilySignal:
		return "signal"
	case FamilyTable:
		return "table"
	}
	return "unknown"
}

// The parquet row shapes. x_data is either a numeric series (times) or a
// categorical axis (ROI, channel or item names), so each family has two
// variants and the codec picks one from the file schema on read and from the
// value kind on write.

type plotSeriesRow struct {
	Condition string    `parquet:"condition,optional"`
	XData     []float64 `parquet:"x_data,list"`
	YData     []float64 `parquet:"y_data,list"`
	YVar      []float64 `parquet:"y_var,list"`
	PlotType  string    `parquet:"plot_type,optional"`
	XLabel    string    `parquet:"x_label,optional"`
	YLabel    string    `parquet:"y_label,optional"`
	YTicks    *float64  `parquet:"y_ticks,optional"`
	Count     *int64    `parquet:"count,optional"`
}

type plotCategoricalRow struct {
	Condition string    `parquet:"condition,optional"`
	XData     []string  `parquet:"x_data,list"`
	YData     []float64 `parquet:"y_data,list"`
	YVar      []float64 `parquet:"y_var,list"`
	PlotType  string    `parquet:"plot_type,optional"`
	XLabel    string    `parquet:"x_label,optional"`
	YLabel    string    `parquet:"y_label,optional"`
	YTicks    *float64  `parquet:"y_ticks,optional"`
	Count     *int64    `parquet:"count,optional"`
}

type groupedSeriesRow struct {
	Labels   []string    `parquet:"labels,list"`
	XData    [][]float64 `parquet:"x_data,list"`
	YData    [][]float64 `parquet:"y_data,list"`
	YVar     [][]float64 `parquet:"y_var,list"`
	PlotType string      `parquet:"plot_type,optional"`
	XLabel   string      `parquet:"x_label,optional"`
	YLabel   string      `parquet:"y_label,optional"`
	YTicks   *float64    `parquet:"y_ticks,optional"`
	Count    *int64      `parquet:"count,optional"`
}

type groupedCategoricalRow struct {
	Labels   []string    `parquet:"labels,list"`
	XData    []string    `parquet:"x_data,list"`
	YData    [][]float64 `parquet:"y_data,list"`
	YVar     [][]float64 `parquet:"y_var,list"`
	PlotType string      `parquet:"plot_type,optional"`
	XLabel   string      `parquet:"x_label,optional"`
	YLabel   string      `parquet:"y_label,optional"`
	YTicks   *float64    `parquet:"y_ticks,optional"`
	Count    *int64      `parquet:"count,optional"`
}

// Signal is the marker artifact a producing stage writes so downstream
// stages can locate its per-condition output folder without path knowledge.
type Signal struct {
	Source      string
	Conditions  int
	FolderPath  string
	StreamTypes []string
	StreamNames []string
}

type signalRow struct {
	Signal      int32   `parquet:"signal"`
	Source      string  `parquet:"source"`
	Conditions  int64   `parquet:"conditions"`
	FolderPath  string  `parquet:"folder_path,optional"`
	StreamTypes *string `parquet:"stream_types,optional"`
	StreamNames *string `parquet:"stream_names,optional"`
}

// Detect inspects the parquet schema and reports the artifact family.
func Detect(data []byte) (Family, error) {
	pf, err := openFile(data)
	if err != nil {
		return FamilyUnknown, err
	}
	names := make(map[string]bool)
	allLeaf := true
	for _, f := range pf.Schema().Fields() {
		names[f.Name()] = true
		if !f.Leaf() {
			allLeaf = false
		}
	}
	switch {
	case names["signal"]:
		return FamilySignal, nil
	case names[FieldLabels]:
		return FamilyGrouped, nil
	case names[FieldYData] || names[FieldCondition]:
		return FamilyPlot, nil
	case allLeaf:
		return FamilyTable, nil
	}
	return FamilyUnknown, nil
}

func openFile(data []byte) (*parquet.File, error) {
	return parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
}

// xDataKind returns the leaf primitive kind of the x_data column.
func xDataKind(data []byte) (parquet.Kind, bool, error) {
	pf, err := openFile(data)
	if err != nil {
		return 0, false, err
	}
	for _, f := range pf.Schema().Fields() {
		if f.Name() != FieldXData {
			continue
		}
		var n parquet.Node = f
		for !n.Leaf() {
			sub := n.Fields()
			if len(sub) == 0 {
				return 0, false, nil
			}
			n = sub[0]
		}
		return n.Type().Kind(), true, nil
	}
	return 0, false, nil
}

func readOne[T any](data []byte) (T, error) {
	var zero T
	r := parquet.NewGenericReader[T](bytes.NewReader(data))
	defer r.Close()
	rows := make([]T, 1)
	n, err := r.Read(rows)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return zero, err
		}
		return zero, errors.New("artifact has no rows")
	}
	return rows[0], nil
}

func writeOne[T any](row T) ([]byte, error) {
	var buf bytes.Buffer
	w := parquet.NewGenericWriter[T](&buf)
	if _, err := w.Write([]T{row}); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodePlot parses a per-condition plot-ready record.
func DecodePlot(data []byte) (*Record, error) {
	kind, ok, err := xDataKind(data)
	if err != nil {
		return nil, err
	}
	if ok && kind == parquet.ByteArray {
		row, err := readOne[plotCategoricalRow](data)
		if err != nil {
			return nil, err
		}
		rec := plotRecord(row.Condition, Strings(row.XData), row.YData, row.YVar,
			row.PlotType, row.XLabel, row.YLabel, row.YTicks, row.Count)
		return rec, ValidatePlotRecord(rec)
	}
	row, err := readOne[plotSeriesRow](data)
	if err != nil {
		return nil, err
	}
	rec := plotRecord(row.Condition, Floats(row.XData), row.YData, row.YVar,
		row.PlotType, row.XLabel, row.YLabel, row.YTicks, row.Count)
	return rec, ValidatePlotRecord(rec)
}

func plotRecord(cond string, x Value, y, yv []float64, pt, xl, yl string, ticks *float64, count *int64) *Record {
	rec := NewRecord()
	if cond != "" {
		rec.Set(FieldCondition, Str(cond))
	}
	rec.Set(FieldXData, x)
	rec.Set(FieldYData, Floats(y))
	rec.Set(FieldYVar, Floats(yv))
	if pt != "" {
		rec.Set(FieldPlotType, Str(pt))
	}
	if xl != "" {
		rec.Set(FieldXLabel, Str(xl))
	}
	if yl != "" {
		rec.Set(FieldYLabel, Str(yl))
	}
	if ticks != nil {
		rec.Set(FieldYTicks, Num(*ticks))
	}
	if count != nil {
		rec.Set(FieldCount, IntVal(*count))
	}
	return rec
}

// EncodePlot serializes a per-condition record. x_data's value kind selects
// the numeric or categorical schema variant.
func EncodePlot(rec *Record) ([]byte, error) {
	if err := ValidatePlotRecord(rec); err != nil {
		return nil, err
	}
	x, ok := rec.Get(FieldXData)
	if !ok {
		return nil, SchemaErr(FieldXData, "plot record has no x_data")
	}
	y, ok := rec.Get(FieldYData)
	if !ok || y.Kind() != FloatList {
		return nil, SchemaErr(FieldYData, "plot record needs a numeric y_data list")
	}
	yv, ok := rec.Get(FieldYVar)
	if !ok || yv.Kind() != FloatList {
		return nil, SchemaErr(FieldYVar, "plot record needs a numeric y_var list")
	}
	ticks, count := optionalMeta(rec)
	switch x.Kind() {
	case StringList:
		return writeOne(plotCategoricalRow{
			Condition: rec.Condition(),
			XData:     x.AsStrings(),
			YData:     y.AsFloats(),
			YVar:      yv.AsFloats(),
			PlotType:  rec.PlotType(),
			XLabel:    stringField(rec, FieldXLabel),
			YLabel:    stringField(rec, FieldYLabel),
			YTicks:    ticks,
			Count:     count,
		})
	case FloatList:
		return writeOne(plotSeriesRow{
			Condition: rec.Condition(),
			XData:     x.AsFloats(),
			YData:     y.AsFloats(),
			YVar:      yv.AsFloats(),
			PlotType:  rec.PlotType(),
			XLabel:    stringField(rec, FieldXLabel),
			YLabel:    stringField(rec, FieldYLabel),
			YTicks:    ticks,
			Count:     count,
		})
	}
	return nil, SchemaErr(FieldXData, "unsupported x_data kind %s", x.Kind())
}

// DecodeGrouped parses a merged multi-condition artifact.
func DecodeGrouped(data []byte) (*Record, error) {
	kind, ok, err := xDataKind(data)
	if err != nil {
		return nil, err
	}
	if ok && kind == parquet.ByteArray {
		row, err := readOne[groupedCategoricalRow](data)
		if err != nil {
			return nil, err
		}
		rec := groupedRecord(row.Labels, Strings(row.XData), row.YData, row.YVar,
			row.PlotType, row.XLabel, row.YLabel, row.YTicks, row.Count)
		return rec, ValidateGrouped(rec)
	}
	row, err := readOne[groupedSeriesRow](data)
	if err != nil {
		return nil, err
	}
	rec := groupedRecord(row.Labels, Matrix(row.XData), row.YData, row.YVar,
		row.PlotType, row.XLabel, row.YLabel, row.YTicks, row.Count)
	return rec, ValidateGrouped(rec)
}

func groupedRecord(labels []string, x Value, y, yv [][]float64, pt, xl, yl string, ticks *float64, count *int64) *Record {
	rec := NewRecord()
	rec.Set(FieldLabels, Strings(labels))
	rec.Set(FieldXData, x)
	rec.Set(FieldYData, Matrix(y))
	rec.Set(FieldYVar, Matrix(yv))
	if pt != "" {
		rec.Set(FieldPlotType, Str(pt))
	}
	if xl != "" {
		rec.Set(FieldXLabel, Str(xl))
	}
	if yl != "" {
		rec.Set(FieldYLabel, Str(yl))
	}
	if ticks != nil {
		rec.Set(FieldYTicks, Num(*ticks))
	}
	if count != nil {
		rec.Set(FieldCount, IntVal(*count))
	}
	return rec
}

// EncodeGrouped serializes a merged artifact. x_data is either the shared
// category axis (string list) or one numeric series per condition.
func EncodeGrouped(rec *Record) ([]byte, error) {
	if err := ValidateGrouped(rec); err != nil {
		return nil, err
	}
	labels := rec.Labels()
	y, ok := rec.Get(FieldYData)
	if !ok || y.Kind() != FloatMatrix {
		return nil, SchemaErr(FieldYData, "grouped artifact needs a y_data matrix")
	}
	yv, ok := rec.Get(FieldYVar)
	if !ok || yv.Kind() != FloatMatrix {
		return nil, SchemaErr(FieldYVar, "grouped artifact needs a y_var matrix")
	}
	ticks, count := optionalMeta(rec)
	x, _ := rec.Get(FieldXData)
	switch x.Kind() {
	case StringList:
		return writeOne(groupedCategoricalRow{
			Labels:   labels,
			XData:    x.AsStrings(),
			YData:    y.AsMatrix(),
			YVar:     yv.AsMatrix(),
			PlotType: rec.PlotType(),
			XLabel:   stringField(rec, FieldXLabel),
			YLabel:   stringField(rec, FieldYLabel),
			YTicks:   ticks,
			Count:    count,
		})
	case FloatMatrix:
		return writeOne(groupedSeriesRow{
			Labels:   labels,
			XData:    x.AsMatrix(),
			YData:    y.AsMatrix(),
			YVar:     yv.AsMatrix(),
			PlotType: rec.PlotType(),
			XLabel:   stringField(rec, FieldXLabel),
			YLabel:   stringField(rec, FieldYLabel),
			YTicks:   ticks,
			Count:    count,
		})
	}
	return nil, SchemaErr(FieldXData, "unsupported x_data kind %s in grouped artifact", x.Kind())
}

// DecodeSignal parses a signal descriptor.
func DecodeSignal(data []byte) (*Signal, error) {
	row, err := readOne[signalRow](data)
	if err != nil {
		return nil, err
	}
	if row.Signal != 1 {
		return nil, SchemaErr("signal", "descriptor marker is %d, want 1", row.Signal)
	}
	return &Signal{
		Source:      row.Source,
		Conditions:  int(row.Conditions),
		FolderPath:  row.FolderPath,
		StreamTypes: splitStreams(row.StreamTypes),
		StreamNames: splitStreams(row.StreamNames),
	}, nil
}

// EncodeSignal serializes a signal descriptor.
func EncodeSignal(sig *Signal) ([]byte, error) {
	return writeOne(signalRow{
		Signal:      1,
		Source:      sig.Source,
		Conditions:  int64(sig.Conditions),
		FolderPath:  sig.FolderPath,
		StreamTypes: joinStreams(sig.StreamTypes),
		StreamNames: joinStreams(sig.StreamNames),
	})
}

func splitStreams(s *string) []string {
	if s == nil || *s == "" {
		return nil
	}
	parts := strings.Split(*s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func joinStreams(parts []string) *string {
	if len(parts) == 0 {
		return nil
	}
	s := strings.Join(parts, ",")
	return &s
}

func stringField(rec *Record, name string) string {
	v, ok := rec.Get(name)
	if !ok || v.Kind() != String {
		return ""
	}
	return v.AsString()
}

func optionalMeta(rec *Record) (*float64, *int64) {
	var ticks *float64
	var count *int64
	if v, ok := rec.Get(FieldYTicks); ok && v.Kind() == Float {
		f := v.AsFloat()
		ticks = &f
	}
	if v, ok := rec.Get(FieldCount); ok && v.Kind() == Int {
		n := v.AsInt()
		count = &n
	}
	return ticks, count
}

// ReadBytes loads a file, mapping a missing path to InputNotFound.
func ReadBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NotFound(path, err)
		}
		return nil, err
	}
	return data, nil
}

// LoadPlot reads and parses a per-condition record, naming the path on failure.
func LoadPlot(path string) (*Record, error) {
	data, err := ReadBytes(path)
	if err != nil {
		return nil, err
	}
	rec, err := DecodePlot(data)
	if err != nil {
		return nil, wrapParse(path, err)
	}
	return rec, nil
}

// LoadGrouped reads and parses a merged artifact, naming the path on failure.
func LoadGrouped(path string) (*Record, error) {
	data, err := ReadBytes(path)
	if err != nil {
		return nil, err
	}
	rec, err := DecodeGrouped(data)
	if err != nil {
		return nil, wrapParse(path, err)
	}
	return rec, nil
}

// LoadSignal reads and parses a signal descriptor, naming the path on failure.
func LoadSignal(path string) (*Signal, error) {
	data, err := ReadBytes(path)
	if err != nil {
		return nil, err
	}
	sig, err := DecodeSignal(data)
	if err != nil {
		return nil, wrapParse(path, err)
	}
	return sig, nil
}

func wrapParse(path string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		if e.Path == "" {
			e.Path = path
		}
		return e
	}
	return &Error{Category: SchemaViolation, Path: path, Err: err}
}
