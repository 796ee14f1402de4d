package artifact

// FieldRole partitions a record's fields for aggregation. Data fields are
// per-condition series collected into a matrix; Metadata fields are copied
// from the first record; MetadataList fields are list-valued but shared
// across conditions (category axes, per-row label sets).
type FieldRole int

const (
	RoleData FieldRole = iota
	RoleMetadata
	RoleMetadataList
)

func (r FieldRole) String() string {
	switch r {
	case RoleData:
		return "data"
	case RoleMetadata:
		return "metadata"
	case RoleMetadataList:
		return "metadata-list"
	}
	return "unknown"
}

// metadataListFields are list-valued fields that are never per-condition
// series, independent of plot type.
var metadataListFields = map[string]struct{}{
	FieldYLabels: {},
	FieldLabels:  {},
}

// categoricalAxis reports whether plot type pt uses x_data as a shared
// category axis (ROI or item names) rather than a per-condition series.
func categoricalAxis(pt string) bool {
	return pt == PlotBar || pt == PlotGrid
}

// Classify partitions every field of rec into its role. The rules apply in
// order: non-list values are metadata; fields in the fixed metadata-list set
// are metadata lists; x_data is a metadata list for bar and grid plots;
// every remaining list-valued field is data. Pure: no I/O, no mutation.
func Classify(rec *Record) map[string]FieldRole {
	roles := make(map[string]FieldRole, len(rec.Names()))
	pt := rec.PlotType()
	for _, name := range rec.Names() {
		v, _ := rec.Get(name)
		switch {
		case !v.IsList():
			roles[name] = RoleMetadata
		case isMetadataList(name):
			roles[name] = RoleMetadataList
		case name == FieldXData && categoricalAxis(pt):
			roles[name] = RoleMetadataList
		default:
			roles[name] = RoleData
		}
	}
	return roles
}

func isMetadataList(name string) bool {
	_, ok := metadataListFields[name]
	return ok
}

// DataFields returns the names classified RoleData, in record field order.
func DataFields(rec *Record, roles map[string]FieldRole) []string {
	var out []string
	for _, name := range rec.Names() {
		if roles[name] == RoleData {
			out = append(out, name)
		}
	}
	return out
}
