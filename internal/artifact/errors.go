package artifact

import (
	"errors"
	"fmt"
)

// Category classifies a pipeline failure. Non-recoverable categories abort the
// stage with no output written; recoverable ones proceed with a logged fallback.
type Category int

const (
	// InputNotFound: a referenced artifact or signal path does not exist.
	InputNotFound Category = iota
	// SchemaViolation: a required field or column is absent.
	SchemaViolation
	// AddressingFailure: a pattern resolved to zero matches, or semantic
	// addressing was requested without stream metadata.
	AddressingFailure
	// DataShapeError: paired list fields of unequal length.
	DataShapeError
	// StatisticalDegenerate: recoverable statistical condition (all-NaN
	// p-values, missing baseline label).
	StatisticalDegenerate
)

func (c Category) String() string {
	switch c {
	case InputNotFound:
		return "input-not-found"
	case SchemaViolation:
		return "schema-violation"
	case AddressingFailure:
		return "addressing-failure"
	case DataShapeError:
		return "data-shape-error"
	case StatisticalDegenerate:
		return "statistical-degenerate"
	}
	return "unknown"
}

// Error is the typed failure carried across stage boundaries. Path, Field and
// Pattern identify the offending item so an operator can re-run just the
// failed stage.
type Error struct {
	Category Category
	Path     string
	Field    string
	Pattern  string
	Msg      string
	Err      error
}

func (e *Error) Error() string {
	s := e.Category.String()
	if e.Path != "" {
		s += " " + e.Path
	}
	if e.Field != "" {
		s += " field " + e.Field
	}
	if e.Pattern != "" {
		s += " pattern " + e.Pattern
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound builds an InputNotFound error for path.
func NotFound(path string, err error) *Error {
	return &Error{Category: InputNotFound, Path: path, Err: err}
}

// SchemaErr builds a SchemaViolation for a missing or malformed field.
func SchemaErr(field, format string, args ...any) *Error {
	return &Error{Category: SchemaViolation, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// AddressingErr builds an AddressingFailure for pattern.
func AddressingErr(pattern, format string, args ...any) *Error {
	return &Error{Category: AddressingFailure, Pattern: pattern, Msg: fmt.Sprintf(format, args...)}
}

// ShapeErr builds a DataShapeError naming the unequal fields.
func ShapeErr(field, format string, args ...any) *Error {
	return &Error{Category: DataShapeError, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// CategoryOf extracts the Category from err, if it carries one.
func CategoryOf(err error) (Category, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Category, true
	}
	return 0, false
}
