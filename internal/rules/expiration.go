package rules

import (
	"strings"
	"time"

	"github.com/ppiankov/sstrack/internal/dates"
	"github.com/ppiankov/sstrack/internal/model"
	"github.com/ppiankov/sstrack/internal/norm"
)

// Expiration is the outcome of an expiration lookup. Date is only
// meaningful when ComputeExpiration reports success.
type Expiration struct {
	Norm          norm.Canonical
	Tier          string
	ValidityYears int
	Date          time.Time
	Notices       []model.Notice
}

// ComputeExpiration derives a training certificate's expiration date from
// its completion date. Validity does not depend on the training kind; kind
// is accepted so callers can pass the extraction through unchanged.
//
// For the tiered norm an unrecognized or missing module falls back to the
// shortest tier validity with a warning notice. A norm without a validity
// entry yields no date and an error notice.
func ComputeExpiration(issued time.Time, rawNorm, module string, kind model.TrainingKind) (Expiration, bool) {
	canonical, ok := norm.Normalize(rawNorm)
	if !ok {
		return Expiration{}, false
	}
	exp := Expiration{Norm: canonical}

	if canonical == TieredNorm {
		if tier, ok := LookupTier(module); ok {
			exp.Tier = tier.Name
			exp.ValidityYears, _ = tier.Entry.ValidityYears()
		} else {
			exp.ValidityYears = shortestTierValidity()
			n := model.Warningf(model.NoticeUnknownModule,
				"%s module %q not recognized, using shortest validity of %d year(s)", canonical, module, exp.ValidityYears)
			n.Data = map[string]interface{}{"norm": string(canonical), "module": module}
			exp.Notices = append(exp.Notices, n)
		}
	} else {
		entry, found := Lookup(canonical)
		years, hasValidity := entry.ValidityYears()
		if !found || !hasValidity {
			n := model.Errorf(model.NoticeNoRule, "no expiration rule for norm %s", canonical)
			n.Data = map[string]interface{}{"norm": string(canonical)}
			exp.Notices = append(exp.Notices, n)
			return exp, false
		}
		exp.ValidityYears = years
	}

	exp.Date = dates.AddYears(dates.Truncate(issued), exp.ValidityYears)
	return exp, true
}

// ResolveModule returns the module to compute with. When a tiered norm
// certificate names no module, the tier whose workload matches hours is
// used and an info notice records the inference. Any other input is
// returned unchanged.
func ResolveModule(rawNorm, module string, kind model.TrainingKind, hours int) (string, []model.Notice) {
	module = strings.TrimSpace(module)
	if module != "" && !strings.EqualFold(module, dates.NotAvailable) {
		return module, nil
	}
	if canonical, _ := norm.Normalize(rawNorm); canonical != TieredNorm {
		return module, nil
	}
	tier, ok := InferTier(hours, kind)
	if !ok {
		return module, nil
	}
	n := model.Infof(model.NoticeInferredModule,
		"%s module inferred as %q from a %dh %s workload", TieredNorm, tier.Name, hours, kind)
	n.Data = map[string]interface{}{"norm": string(TieredNorm), "module": tier.Name, "hours": hours}
	return tier.Name, []model.Notice{n}
}
