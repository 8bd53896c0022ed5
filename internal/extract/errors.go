// Package extract turns raw AI answers into typed extractions.
package extract

import "fmt"

// Extraction kinds, used in errors and logs
const (
	KindCompanyDoc = "company document"
	KindASO        = "aso"
	KindTraining   = "training"
)

// FormatError reports an AI answer that could not be parsed into the
// expected shape. Raw carries the answer verbatim for the user.
type FormatError struct {
	Kind   string
	Reason string
	Raw    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unexpected %s answer: %s (raw answer: %q)", e.Kind, e.Reason, e.Raw)
}

func formatErr(kind, raw, format string, args ...interface{}) error {
	return &FormatError{Kind: kind, Reason: fmt.Sprintf(format, args...), Raw: raw}
}
