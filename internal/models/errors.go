package models

import (
	"encoding/json"
	"fmt"
)

// ValidationError reports the first malformed record in a batch. Batch
// normalization aborts on it; nothing before the offending record is kept.
type ValidationError struct {
	Kind   string // "coupon" or "receipt"
	Record interface{}
}

func (e *ValidationError) Error() string {
	raw, err := json.Marshal(e.Record)
	if err != nil {
		return fmt.Sprintf("invalid %s data: %+v", e.Kind, e.Record)
	}
	return fmt.Sprintf("invalid %s data: %s", e.Kind, raw)
}

// NoMatchError means MatchType was asked to classify a pair that no matching
// rule accepts. Callers must confirm IsMatch before asking for the type.
type NoMatchError struct {
	ProductName string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no match found between receipt item %q and coupon", e.ProductName)
}

// InvalidDateError reports a date string that is not a well-formed, real
// YYYY-MM-DD calendar date.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date format: %q", e.Value)
}
