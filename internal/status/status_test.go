package status

import (
	"testing"
	"time"

	"github.com/ppiankov/sstrack/internal/dates"
	"github.com/ppiankov/sstrack/internal/model"
)

func TestCompute(t *testing.T) {
	now := time.Date(2024, time.June, 1, 15, 30, 0, 0, time.UTC)
	day := func(y int, m time.Month, d int) *time.Time {
		t := dates.Day(y, m, d)
		return &t
	}

	tests := []struct {
		name   string
		expiry *time.Time
		soon   int
		want   Status
	}{
		{"no expiry", nil, 30, NotApplicable},
		{"yesterday", day(2024, time.May, 31), 30, Expired},
		{"today", day(2024, time.June, 1), 30, ExpiringSoon},
		{"edge of window", day(2024, time.July, 1), 30, ExpiringSoon},
		{"past window", day(2024, time.July, 2), 30, Valid},
		{"default window", day(2024, time.June, 20), 0, ExpiringSoon},
		{"narrow window", day(2024, time.June, 20), 7, Valid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.expiry, now, tt.soon); got != tt.want {
				t.Errorf("Compute() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDaysLeft(t *testing.T) {
	now := time.Date(2024, time.June, 1, 23, 59, 0, 0, time.UTC)
	if got := DaysLeft(dates.Day(2024, time.June, 3), now); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := DaysLeft(dates.Day(2024, time.May, 30), now); got != -2 {
		t.Errorf("expected -2, got %d", got)
	}
}

func TestSummarize(t *testing.T) {
	now := dates.Day(2024, time.June, 1)

	tables := map[string][]model.Row{
		model.TableTrainings: {
			{ID: "t1", Values: []string{"f1", "10/01/2022", "10/01/2024", "NR-35", "N/A", "Vencido", "a1", "formação", "8"}},
			{ID: "t2", Values: []string{"f1", "10/06/2023", "10/06/2024", "NR-33", "Supervisor", "A vencer", "a2", "formação", "40"}},
			{ID: "t3", Values: []string{"f2", "10/01/2024", "10/01/2026", "NR-35", "N/A", "Válido", "a3", "formação", "8"}},
		},
		model.TableASOs: {
			{ID: "s1", Values: []string{"f1", "01/02/2024", "N/A", "a4", "ruído", "operador", "Demissional"}},
			{ID: "s2", Values: []string{"f2", "01/02/2024", "talvez", "a5", "", "", "Periódico"}},
		},
		model.TableCompanyDocs: {
			{ID: "d1", Values: []string{"e1", "PGR", "01/01/2022", "01/05/2024", "a6"}},
		},
	}

	sum := Summarize(tables, now, 30)

	if got := sum.Counts[model.TableTrainings][Expired]; got != 1 {
		t.Errorf("expected 1 expired training, got %d", got)
	}
	if got := sum.Counts[model.TableTrainings][ExpiringSoon]; got != 1 {
		t.Errorf("expected 1 expiring training, got %d", got)
	}
	if got := sum.Counts[model.TableASOs][NotApplicable]; got != 2 {
		t.Errorf("expected 2 n/a asos, got %d", got)
	}
	if got := sum.Total(Expired); got != 2 {
		t.Errorf("expected 2 expired overall, got %d", got)
	}

	if len(sum.Attention) != 3 {
		t.Fatalf("expected 3 entries needing attention, got %d", len(sum.Attention))
	}
	if sum.Attention[0].ID != "t1" || sum.Attention[1].ID != "d1" || sum.Attention[2].ID != "t2" {
		t.Errorf("expected soonest-first order t1,d1,t2, got %s,%s,%s",
			sum.Attention[0].ID, sum.Attention[1].ID, sum.Attention[2].ID)
	}
	if sum.Attention[2].Label != "NR-33 Supervisor" {
		t.Errorf("unexpected label %q", sum.Attention[2].Label)
	}
	if sum.Attention[0].Label != "NR-35" {
		t.Errorf("N/A module should be dropped from label, got %q", sum.Attention[0].Label)
	}

	var expired, soon, unparsed int
	for _, n := range sum.Notices {
		switch n.Code {
		case model.NoticeExpired:
			expired++
		case model.NoticeExpiringSoon:
			soon++
		case model.NoticeUnparsedDate:
			unparsed++
		}
	}
	if expired != 2 || soon != 1 || unparsed != 1 {
		t.Errorf("unexpected notices: expired=%d soon=%d unparsed=%d", expired, soon, unparsed)
	}
}

func TestSummary_String(t *testing.T) {
	sum := Summarize(nil, dates.Day(2024, time.June, 1), 30)
	if got := sum.String(); got != "0 valid, 0 expiring, 0 expired, 0 n/a" {
		t.Errorf("unexpected summary %q", got)
	}
}
