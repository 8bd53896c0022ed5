package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/sstrack/internal/validate"
)

// ErrUnknownKind is returned by Assemble for an unsupported record kind
var ErrUnknownKind = errors.New("unknown record kind")

// MissingFieldsError aborts an assembly before anything is written
type MissingFieldsError struct {
	Record string
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s record is missing required fields: %s", e.Record, strings.Join(e.Fields, ", "))
}

// NoRuleError is returned when a training norm has no expiration rule
type NoRuleError struct {
	Norm string
}

func (e *NoRuleError) Error() string {
	return fmt.Sprintf("no expiration rule for norm %s", e.Norm)
}

// HoursError is returned when a workload is below the legal minimum and
// saving such records is blocked by configuration.
type HoursError struct {
	Result validate.HoursResult
}

func (e *HoursError) Error() string {
	return "workload below minimum: " + e.Result.Message
}
