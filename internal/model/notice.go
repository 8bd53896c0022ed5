package model

import "fmt"

// Severity indicates how a notice should be surfaced
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notice is a non-fatal diagnostic returned by the rule engine. Core
// packages never log; callers decide how to surface notices.
type Notice struct {
	Severity Severity               `json:"severity" yaml:"severity"`
	Code     string                 `json:"code" yaml:"code"`
	Message  string                 `json:"message" yaml:"message"`
	Data     map[string]interface{} `json:"data,omitempty" yaml:"data,omitempty"`
}

// Warningf builds a warning notice
func Warningf(code, format string, args ...interface{}) Notice {
	return Notice{Severity: SeverityWarning, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Errorf builds an error notice
func Errorf(code, format string, args ...interface{}) Notice {
	return Notice{Severity: SeverityError, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Infof builds an informational notice
func Infof(code, format string, args ...interface{}) Notice {
	return Notice{Severity: SeverityInfo, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Notice codes emitted by the rule engine
const (
	NoticeUnknownModule  = "unknown_module"
	NoticeInferredModule = "inferred_module"
	NoticeNoRule         = "no_expiration_rule"
	NoticeHoursBelowMin  = "hours_below_minimum"
	NoticeExpired        = "expired"
	NoticeExpiringSoon   = "expiring_soon"
	NoticeUnparsedDate   = "unparsed_date"
)
