package artifact

// Canonical field names shared by all artifact families.
const (
	FieldCondition = "condition"
	FieldXData     = "x_data"
	FieldYData     = "y_data"
	FieldYVar      = "y_var"
	FieldPlotType  = "plot_type"
	FieldXLabel    = "x_label"
	FieldYLabel    = "y_label"
	FieldYTicks    = "y_ticks"
	FieldCount     = "count"
	FieldLabels    = "labels"
	FieldYLabels   = "y_labels"
)

// Plot types understood by the renderers downstream.
const (
	PlotBar      = "bar"
	PlotLine     = "line"
	PlotLineGrid = "line_grid"
	PlotScatter  = "scatter"
	PlotGrid     = "grid"
)

// Record is an ordered mapping of field name to value: one artifact row.
// Field order is preserved so transformed artifacts keep the layout of the
// record they were derived from.
type Record struct {
	names  []string
	fields map[string]Value
}

func NewRecord() *Record {
	return &Record{fields: make(map[string]Value)}
}

// Set stores v under name, appending the field if it is new.
func (r *Record) Set(name string, v Value) {
	if _, ok := r.fields[name]; !ok {
		r.names = append(r.names, name)
	}
	r.fields[name] = v
}

// Get returns the value for name and whether the field exists.
func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Has reports whether the field exists.
func (r *Record) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// Names returns the field names in insertion order. The slice is shared;
// callers must not modify it.
func (r *Record) Names() []string { return r.names }

// PlotType returns the record's plot_type field, or "" when absent.
func (r *Record) PlotType() string {
	v, ok := r.fields[FieldPlotType]
	if !ok || v.Kind() != String {
		return ""
	}
	return v.AsString()
}

// Condition returns the record's condition field, or "" when absent.
func (r *Record) Condition() string {
	v, ok := r.fields[FieldCondition]
	if !ok || v.Kind() != String {
		return ""
	}
	return v.AsString()
}

// Labels returns the grouped artifact's condition labels, or nil for a
// single-condition record.
func (r *Record) Labels() []string {
	v, ok := r.fields[FieldLabels]
	if !ok || v.Kind() != StringList {
		return nil
	}
	return v.AsStrings()
}

// Clone returns a deep-enough copy: the field table and order are copied,
// the values themselves are immutable by convention.
func (r *Record) Clone() *Record {
	out := &Record{
		names:  append([]string(nil), r.names...),
		fields: make(map[string]Value, len(r.fields)),
	}
	for k, v := range r.fields {
		out.fields[k] = v
	}
	return out
}
