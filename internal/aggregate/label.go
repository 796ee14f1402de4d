package aggregate

import (
	"fmt"

	"emotiview/internal/artifact"
)

// LabelSource records which tier of the resolver produced a condition label.
type LabelSource int

const (
	// LabelFromRecord: the record's own condition field.
	LabelFromRecord LabelSource = iota
	// LabelExplicit: a label supplied alongside the path by the caller.
	LabelExplicit
	// LabelSynthesized: "cond{i+1}" fallback when neither is available.
	LabelSynthesized
)

func (s LabelSource) String() string {
	switch s {
	case LabelFromRecord:
		return "record"
	case LabelExplicit:
		return "explicit"
	case LabelSynthesized:
		return "synthesized"
	}
	return "unknown"
}

// Label is the discriminated result of resolving a condition label.
type Label struct {
	Value  string
	Source LabelSource
}

// resolveLabel applies the three tiers in order: the record's condition
// field, then the explicit label, then a positional default.
func resolveLabel(rec *artifact.Record, explicit string, idx int) Label {
	if c := rec.Condition(); c != "" {
		return Label{Value: c, Source: LabelFromRecord}
	}
	if explicit != "" {
		return Label{Value: explicit, Source: LabelExplicit}
	}
	return Label{Value: fmt.Sprintf("cond%d", idx+1), Source: LabelSynthesized}
}
