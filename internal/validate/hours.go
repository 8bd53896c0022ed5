// Package validate checks extracted training records against the legal
// minimum workloads.
package validate

import (
	"fmt"

	"github.com/ppiankov/sstrack/internal/model"
	"github.com/ppiankov/sstrack/internal/norm"
	"github.com/ppiankov/sstrack/internal/util"
)

// CompliantMessage is returned when no minimum applies or all are met.
const CompliantMessage = "workload compliant"

// Requirement is one minimum-hours condition. Markers are folded module
// substrings that select the requirement; no markers means it always
// applies to its training kind.
type Requirement struct {
	Label   string
	Markers []string
	Kind    model.TrainingKind
	Minimum int
}

func (r Requirement) applies(module string, kind model.TrainingKind) bool {
	if r.Kind != kind {
		return false
	}
	return len(r.Markers) == 0 || util.ContainsAny(module, r.Markers...)
}

// HoursRule groups the requirements of one canonical norm. For a given
// training kind only the first applicable requirement is checked.
type HoursRule struct {
	Norm         norm.Canonical
	Requirements []Requirement
}

// These encode legal minimums per role and tier. They are independent of
// the recurrence catalog in package rules.
var hoursRules = []HoursRule{
	{
		Norm: norm.NR33,
		Requirements: []Requirement{
			{Label: "supervisor", Markers: []string{"SUPERVISOR"}, Kind: model.TrainingInitial, Minimum: 40},
			{Label: "trabalhador autorizado", Markers: []string{"TRABALHADOR", "AUTORIZADO"}, Kind: model.TrainingInitial, Minimum: 16},
			{Label: "all roles", Kind: model.TrainingRecurring, Minimum: 8},
		},
	},
	{
		Norm: norm.WorkPermit,
		Requirements: []Requirement{
			{Label: "emitente", Markers: []string{"EMITENTE"}, Kind: model.TrainingInitial, Minimum: 16},
			{Label: "emitente", Markers: []string{"EMITENTE"}, Kind: model.TrainingRecurring, Minimum: 4},
			{Label: "requisitante", Markers: []string{"REQUISITANTE"}, Kind: model.TrainingInitial, Minimum: 8},
			{Label: "requisitante", Markers: []string{"REQUISITANTE"}, Kind: model.TrainingRecurring, Minimum: 4},
		},
	},
	{
		Norm: norm.FireBrigade,
		Requirements: []Requirement{
			{Label: "avançado", Markers: []string{"AVANCADO"}, Kind: model.TrainingInitial, Minimum: 24},
			{Label: "avançado", Markers: []string{"AVANCADO"}, Kind: model.TrainingRecurring, Minimum: 16},
		},
	},
	{
		Norm: norm.NR11,
		Requirements: []Requirement{
			{Label: "all modules", Kind: model.TrainingInitial, Minimum: 16},
			{Label: "all modules", Kind: model.TrainingRecurring, Minimum: 16},
		},
	},
	{
		Norm: norm.TechnicalRescue,
		Requirements: []Requirement{
			{Label: "industrial", Markers: []string{"INDUSTRIAL"}, Kind: model.TrainingInitial, Minimum: 24},
			{Label: "industrial", Markers: []string{"INDUSTRIAL"}, Kind: model.TrainingRecurring, Minimum: 24},
		},
	},
}

// HoursRules returns a copy of the ordered minimum-hours table
func HoursRules() []HoursRule {
	out := make([]HoursRule, len(hoursRules))
	copy(out, hoursRules)
	return out
}

// HoursResult is the outcome of a workload check
type HoursResult struct {
	OK          bool           `json:"ok"`
	Message     string         `json:"message"`
	Norm        norm.Canonical `json:"norm,omitempty"`
	Requirement *Requirement   `json:"-"`
}

// ValidateHours checks hours against the minimum for the norm, module and
// training kind. Norms and modules without a minimum always pass.
func ValidateHours(rawNorm, module string, kind model.TrainingKind, hours int) HoursResult {
	canonical, _ := norm.Normalize(rawNorm)
	folded := util.Fold(module)

	for _, rule := range hoursRules {
		if rule.Norm != canonical {
			continue
		}
		for i := range rule.Requirements {
			req := rule.Requirements[i]
			if !req.applies(folded, kind) {
				continue
			}
			if hours < req.Minimum {
				return HoursResult{
					OK: false,
					Message: fmt.Sprintf("%s %s (%s) requires at least %dh, got %dh",
						canonical, req.Label, kind, req.Minimum, hours),
					Norm:        canonical,
					Requirement: &req,
				}
			}
			break
		}
		break
	}

	return HoursResult{OK: true, Message: CompliantMessage, Norm: canonical}
}

// Notice converts a failing result into a warning notice
func (r HoursResult) Notice() (model.Notice, bool) {
	if r.OK {
		return model.Notice{}, false
	}
	n := model.Warningf(model.NoticeHoursBelowMin, "%s", r.Message)
	if r.Requirement != nil {
		n.Data = map[string]interface{}{
			"norm":    string(r.Norm),
			"minimum": r.Requirement.Minimum,
		}
	}
	return n, true
}
