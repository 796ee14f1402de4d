// Package tabular holds flat columnar tables: the analyzer outputs (per
// channel or per comparison statistics) that are not plot records but still
// travel between stages as parquet files. Columns are typed vectors; rows
// are implicit.
package tabular

import (
	"fmt"
)

// ColType enumerates the column value types a stats table may carry.
type ColType int

const (
	Float ColType = iota
	Bool
	String
	Int
)

func (t ColType) String() string {
	switch t {
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Int:
		return "int"
	}
	return "unknown"
}

// Column is one named, typed vector. Only the slice matching Type is set.
type Column struct {
	Name    string
	Type    ColType
	Floats  []float64
	Bools   []bool
	Strings []string
	Ints    []int64
}

// Len returns the column's row count.
func (c Column) Len() int {
	switch c.Type {
	case Float:
		return len(c.Floats)
	case Bool:
		return len(c.Bools)
	case String:
		return len(c.Strings)
	case Int:
		return len(c.Ints)
	}
	return 0
}

// Table is an ordered collection of equal-length columns.
type Table struct {
	cols  []Column
	index map[string]int
}

func New() *Table {
	return &Table{index: make(map[string]int)}
}

// NumRows returns the row count (0 for an empty table).
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// NumCols returns the column count.
func (t *Table) NumCols() int { return len(t.cols) }

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Has reports whether a column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.cols[i], true
}

// Floats returns the named column's values if it is a float column.
func (t *Table) Floats(name string) ([]float64, bool) {
	c, ok := t.Column(name)
	if !ok || c.Type != Float {
		return nil, false
	}
	return c.Floats, true
}

func (t *Table) add(c Column) error {
	if _, exists := t.index[c.Name]; exists {
		return fmt.Errorf("column %q already exists", c.Name)
	}
	if len(t.cols) > 0 && c.Len() != t.NumRows() {
		return fmt.Errorf("column %q has %d rows, table has %d", c.Name, c.Len(), t.NumRows())
	}
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// AddFloats appends a float column.
func (t *Table) AddFloats(name string, vals []float64) error {
	return t.add(Column{Name: name, Type: Float, Floats: vals})
}

// AddBools appends a bool column.
func (t *Table) AddBools(name string, vals []bool) error {
	return t.add(Column{Name: name, Type: Bool, Bools: vals})
}

// AddStrings appends a string column.
func (t *Table) AddStrings(name string, vals []string) error {
	return t.add(Column{Name: name, Type: String, Strings: vals})
}

// AddInts appends an int column.
func (t *Table) AddInts(name string, vals []int64) error {
	return t.add(Column{Name: name, Type: Int, Ints: vals})
}

// Clone returns a copy sharing no column slices with the original.
func (t *Table) Clone() *Table {
	out := New()
	for _, c := range t.cols {
		cp := Column{Name: c.Name, Type: c.Type}
		switch c.Type {
		case Float:
			cp.Floats = append([]float64(nil), c.Floats...)
		case Bool:
			cp.Bools = append([]bool(nil), c.Bools...)
		case String:
			cp.Strings = append([]string(nil), c.Strings...)
		case Int:
			cp.Ints = append([]int64(nil), c.Ints...)
		}
		// add cannot fail: names and lengths were valid in the source.
		_ = out.add(cp)
	}
	return out
}
