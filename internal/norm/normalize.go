// Package norm maps free-text regulatory norm mentions to canonical norm
// identifiers.
package norm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/sstrack/internal/util"
)

// Canonical is a normalized norm identifier. Generic numbered norms are
// "NR-" plus a zero-padded two digit number.
type Canonical string

// Named categories that are not plain numbered norms.
const (
	FireBrigade     Canonical = "BRIGADA DE INCÊNDIO"
	TechnicalRescue Canonical = "NBR-16710 RESGATE TÉCNICO"
	WorkPermit      Canonical = "PERMISSÃO DE TRABALHO (PT)"
)

// Numbered norms referenced by the rule tables.
const (
	NR06 Canonical = "NR-06"
	NR10 Canonical = "NR-10"
	NR11 Canonical = "NR-11"
	NR12 Canonical = "NR-12"
	NR18 Canonical = "NR-18"
	NR20 Canonical = "NR-20"
	NR33 Canonical = "NR-33"
	NR34 Canonical = "NR-34"
	NR35 Canonical = "NR-35"
)

// NR formats a numbered norm.
func NR(n int) Canonical {
	return Canonical(fmt.Sprintf("NR-%02d", n))
}

// Rule is one entry of the ordered normalization table. Match receives the
// accent-folded, upper-cased input and reports the canonical value it maps to.
type Rule struct {
	Name  string
	Match func(folded string) (Canonical, bool)
}

var (
	// NR-23 was the fire protection norm before it was folded into the
	// brigade training requirements.
	legacyFirePattern      = regexp.MustCompile(`\bNR[\s\-_.]*0*23\b`)
	// IT-17 is the state fire department instruction for brigade training.
	fireInstructionPattern = regexp.MustCompile(`\bIT[\s\-_.]*17\b`)
	workPermitAbbrev       = regexp.MustCompile(`\bPT\b`)
	numberedPattern        = regexp.MustCompile(`\bNR[\s\-_.]*(\d{1,2})\b`)
	bareNumberPattern      = regexp.MustCompile(`^0*(\d{1,2})$`)
)

func fixed(c Canonical, match func(string) bool) func(string) (Canonical, bool) {
	return func(s string) (Canonical, bool) {
		if match(s) {
			return c, true
		}
		return "", false
	}
}

// rules is evaluated first match wins; later rules never override an
// earlier one.
var rules = []Rule{
	{
		Name: "fire-brigade",
		Match: fixed(FireBrigade, func(s string) bool {
			return util.ContainsAny(s, "BRIGADA", "INCENDIO", "BOMBEIRO CIVIL") ||
				legacyFirePattern.MatchString(s) || fireInstructionPattern.MatchString(s)
		}),
	},
	{
		Name: "technical-rescue",
		Match: fixed(TechnicalRescue, func(s string) bool {
			return util.ContainsAny(s, "16710", "RESGATE TECNICO")
		}),
	},
	{
		Name: "work-permit",
		Match: fixed(WorkPermit, func(s string) bool {
			return strings.Contains(s, "PERMISSAO DE TRABALHO") || workPermitAbbrev.MatchString(s)
		}),
	},
	{
		Name: "numbered",
		Match: func(s string) (Canonical, bool) {
			m := numberedPattern.FindStringSubmatch(s)
			if m == nil {
				m = bareNumberPattern.FindStringSubmatch(s)
			}
			if m == nil {
				return "", false
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return "", false
			}
			return NR(n), true
		},
	},
}

// Rules returns a copy of the ordered normalization table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Normalize maps raw to its canonical norm. It returns false only for empty
// input; text no rule recognizes is returned upper-cased and trimmed.
func Normalize(raw string) (Canonical, bool) {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	if upper == "" {
		return "", false
	}

	folded := util.Fold(upper)
	for _, r := range rules {
		if c, ok := r.Match(folded); ok {
			return c, true
		}
	}
	return Canonical(upper), true
}

// String returns the canonical identifier.
func (c Canonical) String() string {
	return string(c)
}
