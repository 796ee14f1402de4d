package artifact

// ValidatePlotRecord checks the pairing invariant of a per-condition record:
// x_data, y_data and y_var must have equal lengths whenever all of them are
// list-valued. Returns a DataShapeError naming the first mismatched field.
func ValidatePlotRecord(rec *Record) error {
	x, hasX := rec.Get(FieldXData)
	y, hasY := rec.Get(FieldYData)
	v, hasV := rec.Get(FieldYVar)
	if !hasX || !hasY || !hasV {
		return nil
	}
	if !x.IsList() || !y.IsList() || !v.IsList() {
		return nil
	}
	if y.Len() != x.Len() {
		return ShapeErr(FieldYData, "x_data has %d points but y_data has %d", x.Len(), y.Len())
	}
	if v.Len() != y.Len() {
		return ShapeErr(FieldYVar, "y_data has %d points but y_var has %d", y.Len(), v.Len())
	}
	return nil
}

// ValidateGrouped checks a grouped artifact: labels must be present and every
// data-field matrix must have one inner sequence per label. Inner lengths may
// be ragged.
func ValidateGrouped(rec *Record) error {
	labels := rec.Labels()
	if labels == nil {
		return SchemaErr(FieldLabels, "grouped artifact has no labels field")
	}
	roles := Classify(rec)
	for _, name := range DataFields(rec, roles) {
		v, _ := rec.Get(name)
		if v.Len() != len(labels) {
			return ShapeErr(name, "%d conditions in labels but %d in %s", len(labels), v.Len(), name)
		}
	}
	return nil
}
