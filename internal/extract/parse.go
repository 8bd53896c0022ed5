package extract

import (
	"strings"

	"github.com/ppiankov/sstrack/internal/classify"
	"github.com/ppiankov/sstrack/internal/dates"
	"github.com/ppiankov/sstrack/internal/model"
)

// ParseCompanyDoc reads the numbered two-field company document answer:
// 1. document type, 2. issuance date. The issuance date is mandatory.
func ParseCompanyDoc(raw string) (model.CompanyDocExtraction, error) {
	answers := ParseNumbered(raw)
	if len(answers) == 0 {
		return model.CompanyDocExtraction{}, formatErr(KindCompanyDoc, raw, "no numbered answers")
	}

	issued, ok := dates.Parse(answers[2])
	if !ok {
		return model.CompanyDocExtraction{}, formatErr(KindCompanyDoc, raw, "issuance date missing or unparseable")
	}

	return model.CompanyDocExtraction{
		Kind:   classify.CompanyDocument(answers[1]).Kind,
		Issued: issued,
	}, nil
}

type asoAnswer struct {
	ExamDate   string `json:"data_aso"`
	Expiration string `json:"vencimento"`
	Risks      Text   `json:"riscos"`
	JobTitle   Text   `json:"cargo"`
	Kind       Text   `json:"tipo_aso"`
}

// ParseASO reads the JSON medical fitness answer. The exam date is
// mandatory; an unparseable vencimento is treated as absent. Missing risks
// and job title default to "N/A".
func ParseASO(raw string) (model.ASOExtraction, error) {
	var a asoAnswer
	if err := DecodeJSON(raw, &a); err != nil {
		return model.ASOExtraction{}, formatErr(KindASO, raw, "%v", err)
	}

	exam, ok := dates.Parse(a.ExamDate)
	if !ok {
		return model.ASOExtraction{}, formatErr(KindASO, raw, "data_aso missing or unparseable")
	}

	ext := model.ASOExtraction{
		ExamDate: exam,
		Risks:    orNA(string(a.Risks)),
		JobTitle: orNA(string(a.JobTitle)),
		Kind:     classify.ASOKind(string(a.Kind)),
	}
	if exp, ok := dates.Parse(a.Expiration); ok {
		ext.Expiration = &exp
	}
	return ext, nil
}

type trainingAnswer struct {
	Completed string `json:"data"`
	Norm      Text   `json:"norma"`
	Module    Text   `json:"modulo"`
	Kind      Text   `json:"tipo_treinamento"`
	Hours     Hours  `json:"carga_horaria"`
}

// ParseTraining reads the JSON training answer. Completion date and norm are
// mandatory; a missing module stays empty, a missing workload is zero.
func ParseTraining(raw string) (model.TrainingExtraction, error) {
	var a trainingAnswer
	if err := DecodeJSON(raw, &a); err != nil {
		return model.TrainingExtraction{}, formatErr(KindTraining, raw, "%v", err)
	}

	completed, ok := dates.Parse(a.Completed)
	if !ok {
		return model.TrainingExtraction{}, formatErr(KindTraining, raw, "data missing or unparseable")
	}
	norm := strings.TrimSpace(string(a.Norm))
	if norm == "" || strings.EqualFold(norm, dates.NotAvailable) {
		return model.TrainingExtraction{}, formatErr(KindTraining, raw, "norma missing")
	}

	module := strings.TrimSpace(string(a.Module))
	if strings.EqualFold(module, dates.NotAvailable) {
		module = ""
	}

	return model.TrainingExtraction{
		Completed: completed,
		Norm:      norm,
		Module:    module,
		Kind:      model.ParseTrainingKind(string(a.Kind)),
		Hours:     int(a.Hours),
	}, nil
}

func orNA(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return dates.NotAvailable
	}
	return s
}
