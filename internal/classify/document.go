// Package classify maps AI-extracted type text to the fixed document and
// exam kinds.
package classify

import (
	"time"

	"github.com/ppiankov/sstrack/internal/dates"
	"github.com/ppiankov/sstrack/internal/model"
	"github.com/ppiankov/sstrack/internal/util"
)

type docPattern struct {
	kind          model.DocKind
	markers       []string
	validityYears int
}

// docPatterns is checked in order; the first marker hit wins.
var docPatterns = []docPattern{
	{kind: model.DocPGR, markers: []string{"PGR", "GERENCIAMENTO DE RISCO"}, validityYears: 2},
	{kind: model.DocPCMSO, markers: []string{"PCMSO", "CONTROLE MEDICO"}, validityYears: 1},
	{kind: model.DocPPR, markers: []string{"PPR", "PROTECAO RESPIRATORIA"}, validityYears: 1},
	{kind: model.DocPCA, markers: []string{"PCA", "CONSERVACAO AUDITIVA"}, validityYears: 1},
}

// Document is the classification of a company document
type Document struct {
	Kind          model.DocKind `json:"kind"`
	ValidityYears int           `json:"validity_years"`
}

// CompanyDocument classifies raw type text. Unmatched text is DocOther with
// one year of validity.
func CompanyDocument(rawType string) Document {
	folded := util.Fold(rawType)
	for _, p := range docPatterns {
		if util.ContainsAny(folded, p.markers...) {
			return Document{Kind: p.kind, ValidityYears: p.validityYears}
		}
	}
	return Document{Kind: model.DocOther, ValidityYears: 1}
}

// Expiration returns the issuance date plus a fixed 365 days per validity
// year. Company documents deliberately use day offsets, not calendar years.
func (d Document) Expiration(issued time.Time) time.Time {
	return dates.AddDays(issued, 365*d.ValidityYears)
}

// Kinds lists every document kind in classification order, DocOther last
func Kinds() []model.DocKind {
	out := make([]model.DocKind, 0, len(docPatterns)+1)
	for _, p := range docPatterns {
		out = append(out, p.kind)
	}
	return append(out, model.DocOther)
}

// Lookup returns the classification of a known kind. Unknown kinds are
// DocOther.
func Lookup(kind model.DocKind) Document {
	for _, p := range docPatterns {
		if p.kind == kind {
			return Document{Kind: p.kind, ValidityYears: p.validityYears}
		}
	}
	return Document{Kind: model.DocOther, ValidityYears: 1}
}
