// Package status derives validity status from expiration dates and builds
// compliance summaries over persisted tables.
package status

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/sstrack/internal/dates"
	"github.com/ppiankov/sstrack/internal/model"
)

// Status is the validity of a record on a given day
type Status string

const (
	Valid         Status = "Válido"
	ExpiringSoon  Status = "A vencer"
	Expired       Status = "Vencido"
	NotApplicable Status = "N/A"
)

// DefaultSoonDays is the expiring-soon window used when none is configured
const DefaultSoonDays = 30

// Compute returns the status of a record expiring on expiry, as seen on now.
// A record expiring today is still valid for the day. soonDays <= 0 uses
// DefaultSoonDays.
func Compute(expiry *time.Time, now time.Time, soonDays int) Status {
	if expiry == nil {
		return NotApplicable
	}
	if soonDays <= 0 {
		soonDays = DefaultSoonDays
	}
	left := DaysLeft(*expiry, now)
	switch {
	case left < 0:
		return Expired
	case left <= soonDays:
		return ExpiringSoon
	default:
		return Valid
	}
}

// DaysLeft returns whole days from now until expiry, negative when overdue
func DaysLeft(expiry, now time.Time) int {
	return int(dates.Truncate(expiry).Sub(dates.Truncate(now)).Hours() / 24)
}

// Entry is a dated record needing attention
type Entry struct {
	Table      string    `json:"table" yaml:"table"`
	ID         string    `json:"id" yaml:"id"`
	Owner      string    `json:"owner" yaml:"owner"`
	Label      string    `json:"label" yaml:"label"`
	Expiration time.Time `json:"expiration" yaml:"expiration"`
	Status     Status    `json:"status" yaml:"status"`
	DaysLeft   int       `json:"days_left" yaml:"days_left"`
}

// Summary is the compliance picture across all dated tables
type Summary struct {
	GeneratedAt time.Time                 `json:"generated_at" yaml:"generated_at"`
	Counts      map[string]map[Status]int `json:"counts" yaml:"counts"`
	Attention   []Entry                   `json:"attention" yaml:"attention"`
	Notices     []model.Notice            `json:"notices,omitempty" yaml:"notices,omitempty"`
}

// dated lists the tables carrying a vencimento column, with the owner column
// and the columns that label a row.
var dated = []struct {
	table  string
	owner  string
	labels []string
}{
	{model.TableCompanyDocs, "empresa_id", []string{"tipo_documento"}},
	{model.TableASOs, "funcionario_id", []string{"tipo_aso"}},
	{model.TableTrainings, "funcionario_id", []string{"norma", "modulo"}},
}

// Summarize computes the status of every dated row. Expired and expiring
// rows are listed in Attention, soonest first, with a notice each.
func Summarize(tables map[string][]model.Row, now time.Time, soonDays int) Summary {
	sum := Summary{
		GeneratedAt: now,
		Counts:      make(map[string]map[Status]int),
	}

	for _, d := range dated {
		counts := make(map[Status]int)
		sum.Counts[d.table] = counts

		for _, row := range tables[d.table] {
			raw := row.Get(d.table, "vencimento")
			var expiry *time.Time
			if t, ok := dates.Parse(raw); ok {
				expiry = &t
			} else if strings.TrimSpace(raw) != "" && raw != dates.NotAvailable {
				n := model.Warningf(model.NoticeUnparsedDate, "%s %s: unparseable vencimento %q", d.table, row.ID, raw)
				sum.Notices = append(sum.Notices, n)
			}

			st := Compute(expiry, now, soonDays)
			counts[st]++
			if st != Expired && st != ExpiringSoon {
				continue
			}

			e := Entry{
				Table:      d.table,
				ID:         row.ID,
				Owner:      row.Get(d.table, d.owner),
				Label:      label(d.table, row, d.labels),
				Expiration: *expiry,
				Status:     st,
				DaysLeft:   DaysLeft(*expiry, now),
			}
			sum.Attention = append(sum.Attention, e)
			sum.Notices = append(sum.Notices, entryNotice(e))
		}
	}

	sort.SliceStable(sum.Attention, func(i, j int) bool {
		return sum.Attention[i].Expiration.Before(sum.Attention[j].Expiration)
	})

	return sum
}

func label(table string, row model.Row, columns []string) string {
	var parts []string
	for _, c := range columns {
		if v := strings.TrimSpace(row.Get(table, c)); v != "" && v != dates.NotAvailable {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

func entryNotice(e Entry) model.Notice {
	var n model.Notice
	if e.Status == Expired {
		n = model.Errorf(model.NoticeExpired, "%s %s (%s) expired on %s", e.Table, e.ID, e.Label, dates.Format(e.Expiration))
	} else {
		n = model.Warningf(model.NoticeExpiringSoon, "%s %s (%s) expires on %s", e.Table, e.ID, e.Label, dates.Format(e.Expiration))
	}
	n.Data = map[string]interface{}{
		"owner":     e.Owner,
		"days_left": e.DaysLeft,
	}
	return n
}

// Total returns the number of rows with the given status across tables
func (s Summary) Total(st Status) int {
	total := 0
	for _, counts := range s.Counts {
		total += counts[st]
	}
	return total
}

// String renders a one-line overview
func (s Summary) String() string {
	return fmt.Sprintf("%d valid, %d expiring, %d expired, %d n/a",
		s.Total(Valid), s.Total(ExpiringSoon), s.Total(Expired), s.Total(NotApplicable))
}
