package classify

import (
	"time"

	"github.com/ppiankov/sstrack/internal/dates"
	"github.com/ppiankov/sstrack/internal/model"
	"github.com/ppiankov/sstrack/internal/util"
)

var asoPatterns = []struct {
	kind    model.ASOKind
	markers []string
}{
	{model.ASOAdmission, []string{"ADMISS"}},
	{model.ASOPeriodic, []string{"PERIODIC"}},
	{model.ASOTermination, []string{"DEMISS"}},
	{model.ASORiskChange, []string{"MUDANCA DE RISCO", "MUDANCA DE FUNCAO", "MUDANCA DE RISCOS"}},
	{model.ASOReturnWork, []string{"RETORNO"}},
	{model.ASOMonitoring, []string{"MONITORACAO PONTUAL", "MONITORAMENTO PONTUAL"}},
}

// ASOKind maps free text to an exam kind, ASOUnknown when nothing matches.
func ASOKind(raw string) model.ASOKind {
	folded := util.Fold(raw)
	for _, p := range asoPatterns {
		if util.ContainsAny(folded, p.markers...) {
			return p.kind
		}
	}
	return model.ASOUnknown
}

// MonitoringValidityDays is how long a point-in-time monitoring exam
// stays valid when the certificate states no expiration.
const MonitoringValidityDays = 180

// ASOExpiration applies the fallback when a certificate states no expiration:
// termination exams have none, point-in-time monitoring lasts
// MonitoringValidityDays and every other kind is valid for one year.
func ASOExpiration(examDate time.Time, kind model.ASOKind) *time.Time {
	var exp time.Time
	switch kind {
	case model.ASOTermination:
		return nil
	case model.ASOMonitoring:
		exp = dates.AddDays(examDate, MonitoringValidityDays)
	default:
		exp = dates.AddYears(examDate, 1)
	}
	return &exp
}
