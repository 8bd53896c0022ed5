package model

import (
	"strconv"
	"time"

	"github.com/ppiankov/sstrack/internal/dates"
)

// Table names in the backing store
const (
	TableCompanies   = "empresas"
	TableEmployees   = "funcionarios"
	TableCompanyDocs = "documentos_empresa"
	TableASOs        = "asos"
	TableTrainings   = "treinamentos"
)

// Columns lists every table's columns in persisted order, excluding the
// leading id column the store adds.
var Columns = map[string][]string{
	TableCompanies:   {"nome", "cnpj"},
	TableEmployees:   {"nome", "empresa_id", "cargo"},
	TableCompanyDocs: {"empresa_id", "tipo_documento", "data_emissao", "vencimento", "arquivo_id"},
	TableASOs:        {"funcionario_id", "data_aso", "vencimento", "arquivo_id", "riscos", "cargo", "tipo_aso"},
	TableTrainings:   {"funcionario_id", "data", "vencimento", "norma", "modulo", "status", "arquivo_id", "tipo_treinamento", "carga_horaria"},
}

// Tables returns the table names in creation order
func Tables() []string {
	return []string{TableCompanies, TableEmployees, TableCompanyDocs, TableASOs, TableTrainings}
}

// CompanyDocRecord is a persisted company document row
type CompanyDocRecord struct {
	ID           string    `json:"id,omitempty"`
	CompanyID    string    `json:"empresa_id"`
	Kind         DocKind   `json:"tipo_documento"`
	Issued       time.Time `json:"data_emissao"`
	Expiration   time.Time `json:"vencimento"`
	AttachmentID string    `json:"arquivo_id"`
}

// Row serializes the record in column order
func (r CompanyDocRecord) Row() []string {
	return []string{
		r.CompanyID,
		string(r.Kind),
		dates.Format(r.Issued),
		dates.Format(r.Expiration),
		r.AttachmentID,
	}
}

// ASORecord is a persisted medical fitness row. Expiration is nil for
// termination exams.
type ASORecord struct {
	ID           string     `json:"id,omitempty"`
	EmployeeID   string     `json:"funcionario_id"`
	ExamDate     time.Time  `json:"data_aso"`
	Expiration   *time.Time `json:"vencimento,omitempty"`
	AttachmentID string     `json:"arquivo_id"`
	Risks        string     `json:"riscos"`
	JobTitle     string     `json:"cargo"`
	Kind         ASOKind    `json:"tipo_aso"`
}

// Row serializes the record in column order
func (r ASORecord) Row() []string {
	return []string{
		r.EmployeeID,
		dates.Format(r.ExamDate),
		dates.FormatOptional(r.Expiration),
		r.AttachmentID,
		r.Risks,
		r.JobTitle,
		string(r.Kind),
	}
}

// TrainingRecord is a persisted training row
type TrainingRecord struct {
	ID           string       `json:"id,omitempty"`
	EmployeeID   string       `json:"funcionario_id"`
	Completed    time.Time    `json:"data"`
	Expiration   time.Time    `json:"vencimento"`
	Norm         string       `json:"norma"`
	Module       string       `json:"modulo"`
	Status       string       `json:"status"`
	AttachmentID string       `json:"arquivo_id"`
	Kind         TrainingKind `json:"tipo_treinamento"`
	Hours        int          `json:"carga_horaria"`
}

// Row serializes the record in column order
func (r TrainingRecord) Row() []string {
	return []string{
		r.EmployeeID,
		dates.Format(r.Completed),
		dates.Format(r.Expiration),
		r.Norm,
		r.Module,
		r.Status,
		r.AttachmentID,
		string(r.Kind),
		strconv.Itoa(r.Hours),
	}
}

// TrainingFromRow rebuilds a training record from its persisted row
func TrainingFromRow(id string, row []string) (TrainingRecord, bool) {
	if len(row) < len(Columns[TableTrainings]) {
		return TrainingRecord{}, false
	}
	completed, ok := dates.Parse(row[1])
	if !ok {
		return TrainingRecord{}, false
	}
	expiration, ok := dates.Parse(row[2])
	if !ok {
		return TrainingRecord{}, false
	}
	hours, _ := strconv.Atoi(row[8])
	return TrainingRecord{
		ID:           id,
		EmployeeID:   row[0],
		Completed:    completed,
		Expiration:   expiration,
		Norm:         row[3],
		Module:       row[4],
		Status:       row[5],
		AttachmentID: row[6],
		Kind:         TrainingKind(row[7]),
		Hours:        hours,
	}, true
}

// Row is one persisted row: the store-assigned id and the values in
// Columns order.
type Row struct {
	ID     string   `json:"id" yaml:"id"`
	Values []string `json:"values" yaml:"values"`
}

// Get returns the named column of a row in table, or "" when absent
func (r Row) Get(table, column string) string {
	for i, c := range Columns[table] {
		if c == column {
			if i < len(r.Values) {
				return r.Values[i]
			}
			return ""
		}
	}
	return ""
}
