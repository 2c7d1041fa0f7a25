// =============================================================================
// UPD XML Generator - Error Types
// =============================================================================
//
// Construction-time errors fail the constructor synchronously: no partially
// initialized builder is ever returned. Rendering never fails on missing
// optional fields - those are defaulted or omitted. Filesystem errors are
// wrapped and propagated from Create.
//
// =============================================================================

package upd

import "fmt"

// DateFormatError reports a header date that does not parse under its
// mandated format, or two header dates that resolve to different days.
type DateFormatError struct {
	// Field names the offending input ("upd_date_yyyymmdd",
	// "upd_date_russian", or both for a mismatch).
	Field string

	// Value is the raw input.
	Value string

	// Reason describes the failure.
	Reason string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date %s=%q: %s", e.Field, e.Value, e.Reason)
}

// ValidationError reports an input that makes identity rendering impossible,
// such as a tax identifier whose length is neither 10 nor 12. The reference
// format would silently emit no identity block; this implementation fails
// loudly instead.
type ValidationError struct {
	// Field names the offending input (e.g. "seller.ИНН").
	Field string

	// Value is the raw input.
	Value string

	// Reason describes the failure.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s=%q: %s", e.Field, e.Value, e.Reason)
}
