package libpin

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewFields is reported for records with fewer than 11 fields
	// after the tag.
	ErrTooFewFields = errors.New("too few fields")
	// ErrUnknownType is reported for an electrical type letter outside the
	// catalog.
	ErrUnknownType = errors.New("unknown pin type")
	// ErrUnknownAttribute is reported for an unrecognised attribute letter.
	ErrUnknownAttribute = errors.New("unknown pin attribute")
	// ErrBadField is reported for a numeric field that does not parse.
	ErrBadField = errors.New("bad field")
	// ErrNotPinRecord is reported when the record tag is not "X".
	ErrNotPinRecord = errors.New("not a pin record")
)

// FormatError describes a malformed pin record. Decoding stops at the first
// problem; no pin is returned alongside it.
type FormatError struct {
	Kind   error  // one of the Err* sentinels above
	Record string // the offending line
	Fields int    // fields found after the tag
	Field  string // name of the offending field, if any
	Letter byte   // offending letter for type and attribute errors
	Column int    // 1-based column of the offending field, 0 if unknown
	Err    error  // underlying parse error, if any
}

func (e *FormatError) Error() string {
	switch e.Kind {
	case ErrTooFewFields:
		return fmt.Sprintf("pin only had %d parameters of the required 11 or 12", e.Fields)
	case ErrUnknownType:
		return fmt.Sprintf("unknown pin type [%c]", e.Letter)
	case ErrUnknownAttribute:
		return fmt.Sprintf("unknown pin attribute [%c]", e.Letter)
	case ErrBadField:
		return fmt.Sprintf("invalid %s at column %d: %v", e.Field, e.Column, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("malformed pin record: %v", e.Err)
	}
	return "malformed pin record"
}

// Unwrap exposes both the sentinel kind and the underlying error.
func (e *FormatError) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
