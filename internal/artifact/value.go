// Package artifact defines the canonical plot-ready record shapes exchanged
// between pipeline stages: the per-condition plot record, the grouped
// multi-condition artifact, and the signal descriptor, together with the
// field-role classification the aggregator depends on.
package artifact

import "fmt"

// Kind discriminates the value shapes a record field may hold.
type Kind int

const (
	Null Kind = iota
	String
	Float
	Int
	Bool
	FloatList
	StringList
	FloatMatrix // one inner list per condition, ragged lengths permitted
	StringMatrix
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case String:
		return "string"
	case Float:
		return "float"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case FloatList:
		return "float-list"
	case StringList:
		return "string-list"
	case FloatMatrix:
		return "float-matrix"
	case StringMatrix:
		return "string-matrix"
	}
	return "unknown"
}

// Value is the tagged union stored in a record field. The zero Value is Null.
type Value struct {
	kind Kind
	str  string
	num  float64
	i    int64
	b    bool
	fl   []float64
	sl   []string
	fm   [][]float64
	sm   [][]string
}

func Str(s string) Value           { return Value{kind: String, str: s} }
func Num(f float64) Value          { return Value{kind: Float, num: f} }
func IntVal(i int64) Value         { return Value{kind: Int, i: i} }
func BoolVal(b bool) Value         { return Value{kind: Bool, b: b} }
func Floats(f []float64) Value     { return Value{kind: FloatList, fl: f} }
func Strings(s []string) Value     { return Value{kind: StringList, sl: s} }
func Matrix(m [][]float64) Value   { return Value{kind: FloatMatrix, fm: m} }
func StrMatrix(m [][]string) Value { return Value{kind: StringMatrix, sm: m} }

func (v Value) Kind() Kind { return v.kind }

// IsList reports whether the value is list-shaped (including matrices).
func (v Value) IsList() bool {
	switch v.kind {
	case FloatList, StringList, FloatMatrix, StringMatrix:
		return true
	}
	return false
}

// Len returns the outer length of a list-shaped value, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case FloatList:
		return len(v.fl)
	case StringList:
		return len(v.sl)
	case FloatMatrix:
		return len(v.fm)
	case StringMatrix:
		return len(v.sm)
	}
	return 0
}

func (v Value) AsString() string        { return v.str }
func (v Value) AsFloat() float64        { return v.num }
func (v Value) AsInt() int64            { return v.i }
func (v Value) AsBool() bool            { return v.b }
func (v Value) AsFloats() []float64     { return v.fl }
func (v Value) AsStrings() []string     { return v.sl }
func (v Value) AsMatrix() [][]float64   { return v.fm }
func (v Value) AsStrMatrix() [][]string { return v.sm }

// GoString renders the value for diagnostics.
func (v Value) GoString() string {
	switch v.kind {
	case Null:
		return "null"
	case String:
		return fmt.Sprintf("%q", v.str)
	case Float:
		return fmt.Sprintf("%g", v.num)
	case Int:
		return fmt.Sprintf("%d", v.i)
	case Bool:
		return fmt.Sprintf("%t", v.b)
	case FloatList:
		return fmt.Sprintf("%v", v.fl)
	case StringList:
		return fmt.Sprintf("%v", v.sl)
	case FloatMatrix:
		return fmt.Sprintf("%v", v.fm)
	case StringMatrix:
		return fmt.Sprintf("%v", v.sm)
	}
	return "?"
}

// Equal compares two values structurally.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case String:
		return v.str == o.str
	case Float:
		return v.num == o.num
	case Int:
		return v.i == o.i
	case Bool:
		return v.b == o.b
	case FloatList:
		return equalFloats(v.fl, o.fl)
	case StringList:
		return equalStrings(v.sl, o.sl)
	case FloatMatrix:
		if len(v.fm) != len(o.fm) {
			return false
		}
		for i := range v.fm {
			if !equalFloats(v.fm[i], o.fm[i]) {
				return false
			}
		}
		return true
	case StringMatrix:
		if len(v.sm) != len(o.sm) {
			return false
		}
		for i := range v.sm {
			if !equalStrings(v.sm[i], o.sm[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
