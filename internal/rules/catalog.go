// Package rules holds the training rule catalog and the expiration
// calculator built on it.
package rules

import (
	"sort"

	"github.com/ppiankov/sstrack/internal/model"
	"github.com/ppiankov/sstrack/internal/norm"
	"github.com/ppiankov/sstrack/internal/util"
)

type opt struct {
	v   int
	set bool
}

func some(v int) opt { return opt{v: v, set: true} }

// Entry is one catalog row. Any field may be absent; an absent validity
// means the norm has no automatic expiration rule.
type Entry struct {
	initial   opt
	recurring opt
	validity  opt
}

// InitialHours returns the initial training workload.
func (e Entry) InitialHours() (int, bool) { return e.initial.v, e.initial.set }

// RecurringHours returns the refresher training workload.
func (e Entry) RecurringHours() (int, bool) { return e.recurring.v, e.recurring.set }

// ValidityYears returns how long a certificate stays valid.
func (e Entry) ValidityYears() (int, bool) { return e.validity.v, e.validity.set }

// Tier is one module of the tiered norm.
type Tier struct {
	Name  string
	Entry Entry
}

// TieredNorm is the only norm whose rules vary by module.
const TieredNorm = norm.NR20

var tiers = []Tier{
	{Name: "Básico", Entry: Entry{initial: some(8), recurring: some(4), validity: some(3)}},
	{Name: "Intermediário", Entry: Entry{initial: some(16), recurring: some(4), validity: some(2)}},
	{Name: "Avançado I", Entry: Entry{initial: some(20), recurring: some(4), validity: some(2)}},
	{Name: "Avançado II", Entry: Entry{initial: some(32), recurring: some(4), validity: some(1)}},
}

// Norms whose workloads depend on role or tier (NR-33, the brigade, rescue
// and work permits) only carry a validity here; package validate holds
// their minimums.
var flat = map[norm.Canonical]Entry{
	norm.NR06:            {initial: some(3), recurring: some(3), validity: some(10)},
	norm.NR10:            {initial: some(40), recurring: some(40), validity: some(2)},
	norm.NR11:            {recurring: some(16), validity: some(3)},
	norm.NR12:            {initial: some(8), recurring: some(8), validity: some(5)},
	norm.NR18:            {initial: some(8), recurring: some(8), validity: some(1)},
	norm.NR33:            {validity: some(1)},
	norm.NR34:            {initial: some(8), recurring: some(8), validity: some(1)},
	norm.NR35:            {initial: some(8), recurring: some(8), validity: some(2)},
	norm.FireBrigade:     {validity: some(1)},
	norm.TechnicalRescue: {validity: some(1)},
	norm.WorkPermit:      {validity: some(1)},
}

// Lookup returns the flat catalog entry for a canonical norm.
func Lookup(c norm.Canonical) (Entry, bool) {
	e, ok := flat[c]
	return e, ok
}

// LookupTier matches module against the tier names of the tiered norm,
// ignoring case and accents.
func LookupTier(module string) (Tier, bool) {
	folded := util.Fold(module)
	if folded == "" {
		return Tier{}, false
	}
	for _, t := range tiers {
		if util.Fold(t.Name) == folded {
			return t, true
		}
	}
	return Tier{}, false
}

// InferTier picks the first tier, in catalog order, whose workload for the
// training kind equals hours. It is used when a tiered norm certificate
// names no module.
func InferTier(hours int, kind model.TrainingKind) (Tier, bool) {
	if hours <= 0 {
		return Tier{}, false
	}
	for _, t := range tiers {
		want, ok := t.Entry.InitialHours()
		if kind == model.TrainingRecurring {
			want, ok = t.Entry.RecurringHours()
		}
		if ok && want == hours {
			return t, true
		}
	}
	return Tier{}, false
}

// Tiers returns the tiered norm's modules in catalog order.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// Norms returns the flat catalog's norms sorted by name.
func Norms() []norm.Canonical {
	out := make([]norm.Canonical, 0, len(flat))
	for c := range flat {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// shortestTierValidity is the fallback validity for unrecognized modules.
func shortestTierValidity() int {
	shortest := -1
	for _, t := range tiers {
		if v, ok := t.Entry.ValidityYears(); ok && (shortest < 0 || v < shortest) {
			shortest = v
		}
	}
	return shortest
}

// Row is a flattened catalog entry for display. Absent values are nil.
type Row struct {
	Norm           norm.Canonical `json:"norma" yaml:"norma"`
	Tier           string         `json:"modulo,omitempty" yaml:"modulo,omitempty"`
	InitialHours   *int           `json:"carga_formacao,omitempty" yaml:"carga_formacao,omitempty"`
	RecurringHours *int           `json:"carga_reciclagem,omitempty" yaml:"carga_reciclagem,omitempty"`
	ValidityYears  *int           `json:"validade_anos,omitempty" yaml:"validade_anos,omitempty"`
}

// Catalog lists the flat norms sorted by name followed by the tiers of the
// tiered norm.
func Catalog() []Row {
	rows := make([]Row, 0, len(flat)+len(tiers))
	for _, c := range Norms() {
		rows = append(rows, rowOf(c, "", flat[c]))
	}
	for _, t := range tiers {
		rows = append(rows, rowOf(TieredNorm, t.Name, t.Entry))
	}
	return rows
}

func rowOf(c norm.Canonical, tier string, e Entry) Row {
	return Row{
		Norm:           c,
		Tier:           tier,
		InitialHours:   ptr(e.InitialHours()),
		RecurringHours: ptr(e.RecurringHours()),
		ValidityYears:  ptr(e.ValidityYears()),
	}
}

func ptr(v int, ok bool) *int {
	if !ok {
		return nil
	}
	return &v
}
