package tabular

import (
	"bytes"
	"errors"
	"io"
	"math"

	"github.com/parquet-go/parquet-go"

	"emotiview/internal/artifact"
)

// Decode parses a flat parquet file into a Table. Files with nested or
// repeated columns are rejected: those are plot artifacts, not stats tables.
func Decode(data []byte) (*Table, error) {
	pf, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	fields := pf.Schema().Fields()
	if len(fields) == 0 {
		return nil, artifact.SchemaErr("", "parquet file has no columns")
	}

	types := make([]ColType, len(fields))
	for i, f := range fields {
		if !f.Leaf() {
			return nil, artifact.SchemaErr(f.Name(), "input is not tabular: column %q is nested", f.Name())
		}
		switch f.Type().Kind() {
		case parquet.Double, parquet.Float:
			types[i] = Float
		case parquet.Boolean:
			types[i] = Bool
		case parquet.ByteArray, parquet.FixedLenByteArray:
			types[i] = String
		case parquet.Int32, parquet.Int64:
			types[i] = Int
		default:
			return nil, artifact.SchemaErr(f.Name(), "unsupported column type %s", f.Type())
		}
	}

	floats := make([][]float64, len(fields))
	bools := make([][]bool, len(fields))
	strs := make([][]string, len(fields))
	ints := make([][]int64, len(fields))

	appendValue := func(ci int, v parquet.Value) {
		switch types[ci] {
		case Float:
			if v.IsNull() {
				floats[ci] = append(floats[ci], math.NaN())
			} else {
				floats[ci] = append(floats[ci], v.Double())
			}
		case Bool:
			bools[ci] = append(bools[ci], !v.IsNull() && v.Boolean())
		case String:
			if v.IsNull() {
				strs[ci] = append(strs[ci], "")
			} else {
				strs[ci] = append(strs[ci], v.String())
			}
		case Int:
			if v.IsNull() {
				ints[ci] = append(ints[ci], 0)
			} else {
				ints[ci] = append(ints[ci], v.Int64())
			}
		}
	}

	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		buf := make([]parquet.Row, 128)
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				for _, v := range row {
					appendValue(v.Column(), v)
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					rows.Close()
					return nil, err
				}
				break
			}
		}
		if err := rows.Close(); err != nil {
			return nil, err
		}
	}

	t := New()
	for i, f := range fields {
		var err error
		switch types[i] {
		case Float:
			err = t.AddFloats(f.Name(), floats[i])
		case Bool:
			err = t.AddBools(f.Name(), bools[i])
		case String:
			err = t.AddStrings(f.Name(), strs[i])
		case Int:
			err = t.AddInts(f.Name(), ints[i])
		}
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Encode serializes the table to parquet bytes. Parquet orders group fields
// by name, so the file's column order is alphabetical regardless of the
// table's insertion order.
func Encode(t *Table) ([]byte, error) {
	if t == nil || t.NumCols() == 0 {
		return nil, artifact.SchemaErr("", "cannot encode an empty table")
	}

	group := parquet.Group{}
	for _, c := range t.cols {
		switch c.Type {
		case Float:
			group[c.Name] = parquet.Leaf(parquet.DoubleType)
		case Bool:
			group[c.Name] = parquet.Leaf(parquet.BooleanType)
		case String:
			group[c.Name] = parquet.String()
		case Int:
			group[c.Name] = parquet.Int(64)
		}
	}
	schema := parquet.NewSchema("table", group)

	// Leaf order after the schema's alphabetical sort.
	order := make([]Column, 0, t.NumCols())
	for _, path := range schema.Columns() {
		c, _ := t.Column(path[0])
		order = append(order, c)
	}

	var buf bytes.Buffer
	w := parquet.NewWriter(&buf, schema)
	b := parquet.NewRowBuilder(schema)
	for r := 0; r < t.NumRows(); r++ {
		b.Reset()
		for ci, c := range order {
			switch c.Type {
			case Float:
				b.Add(ci, parquet.ValueOf(c.Floats[r]))
			case Bool:
				b.Add(ci, parquet.ValueOf(c.Bools[r]))
			case String:
				b.Add(ci, parquet.ValueOf(c.Strings[r]))
			case Int:
				b.Add(ci, parquet.ValueOf(c.Ints[r]))
			}
		}
		if _, err := w.WriteRows([]parquet.Row{b.Row()}); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load reads and parses a stats table, naming the path on failure.
func Load(path string) (*Table, error) {
	data, err := artifact.ReadBytes(path)
	if err != nil {
		return nil, err
	}
	t, err := Decode(data)
	if err != nil {
		var e *artifact.Error
		if errors.As(err, &e) && e.Path == "" {
			e.Path = path
		}
		return nil, err
	}
	return t, nil
}
