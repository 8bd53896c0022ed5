package model

import (
	"strings"
	"time"

	"github.com/ppiankov/sstrack/internal/util"
)

// TrainingKind distinguishes initial training from periodic refreshers
type TrainingKind string

const (
	TrainingInitial   TrainingKind = "formação"
	TrainingRecurring TrainingKind = "reciclagem"
)

// ParseTrainingKind maps free text to a training kind. Anything that does
// not name a refresher is initial training.
func ParseTrainingKind(text string) TrainingKind {
	folded := util.Fold(text)
	if util.ContainsAny(folded, "RECICL", "PERIODIC", "RECURRING", "ATUALIZA") {
		return TrainingRecurring
	}
	return TrainingInitial
}

// ASOKind is the exam kind written on a medical fitness certificate
type ASOKind string

const (
	ASOAdmission   ASOKind = "Admissional"
	ASOPeriodic    ASOKind = "Periódico"
	ASOTermination ASOKind = "Demissional"
	ASORiskChange  ASOKind = "Mudança de Risco"
	ASOReturnWork  ASOKind = "Retorno ao Trabalho"
	ASOMonitoring  ASOKind = "Monitoração Pontual"
	ASOUnknown     ASOKind = "Não identificado"
)

// DocKind is the kind of a company-level regulatory document
type DocKind string

const (
	DocPGR   DocKind = "PGR"
	DocPCMSO DocKind = "PCMSO"
	DocPPR   DocKind = "PPR"
	DocPCA   DocKind = "PCA"
	DocOther DocKind = "Outro"
)

// TrainingExtraction is the parsed answer for one training certificate.
// Module is empty when the certificate names none.
type TrainingExtraction struct {
	Completed time.Time
	Norm      string
	Module    string
	Kind      TrainingKind
	Hours     int
}

// ASOExtraction is the parsed answer for one medical fitness certificate.
// Expiration is nil when the certificate states none.
type ASOExtraction struct {
	ExamDate   time.Time
	Expiration *time.Time
	Risks      string
	JobTitle   string
	Kind       ASOKind
}

// CompanyDocExtraction is the parsed answer for one company document.
// Kind defaults to DocOther.
type CompanyDocExtraction struct {
	Kind   DocKind
	Issued time.Time
}

// ModuleOrDefault returns the module, or "N/A" when the certificate names none
func (t TrainingExtraction) ModuleOrDefault() string {
	if m := strings.TrimSpace(t.Module); m != "" {
		return m
	}
	return "N/A"
}
