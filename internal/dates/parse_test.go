package dates

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
		ok   bool
	}{
		{"slash full year", "15/03/2024", Day(2024, time.March, 15), true},
		{"slash short year", "15/03/24", Day(2024, time.March, 15), true},
		{"dash full year", "15-03-2024", Day(2024, time.March, 15), true},
		{"dots", "15.03.2024", Day(2024, time.March, 15), true},
		{"single digits", "5/3/2024", Day(2024, time.March, 5), true},
		{"long form", "15 de março de 2024", Day(2024, time.March, 15), true},
		{"long form without accent", "1 de marco de 2024", Day(2024, time.March, 1), true},
		{"long form upper case", "10 DE JANEIRO DE 2023", Day(2023, time.January, 10), true},
		{"iso", "2024-03-15", Day(2024, time.March, 15), true},
		{"year first slashes", "2024/03/15", Day(2024, time.March, 15), true},
		{"year first dots", "2024.03.15", Day(2024, time.March, 15), true},
		{"year first mixed separators", "2024/3-5", Day(2024, time.March, 5), true},
		{"year first in prose", "Emitido em 2024/03/15.", Day(2024, time.March, 15), true},
		{"year first impossible day", "2024/02/30", time.Time{}, false},
		{"surrounding prose", "Data de realização: 10/01/2024 (presencial)", Day(2024, time.January, 10), true},
		{"first occurrence wins", "emitido 01/02/2024, válido até 01/02/2025", Day(2024, time.February, 1), true},
		{"not available marker", "N/A", time.Time{}, false},
		{"not informed text", "não consta", time.Time{}, false},
		{"empty", "", time.Time{}, false},
		{"blank", "   ", time.Time{}, false},
		{"impossible day", "31/02/2024", time.Time{}, false},
		{"impossible long form", "31 de fevereiro de 2024", time.Time{}, false},
		{"unknown month name", "15 de brumário de 2024", time.Time{}, false},
		{"three digit year", "15/03/202", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.in)
			if ok != tt.ok {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	days := []time.Time{
		Day(2024, time.January, 10),
		Day(2024, time.February, 29),
		Day(1999, time.December, 31),
		Day(2034, time.February, 28),
	}

	for _, d := range days {
		s := Format(d)
		got, ok := Parse(s)
		if !ok {
			t.Fatalf("Parse(%q) failed", s)
		}
		if !got.Equal(d) {
			t.Errorf("round trip of %v via %q gave %v", d, s, got)
		}
	}
}

func TestFormatOptional(t *testing.T) {
	if got := FormatOptional(nil); got != NotAvailable {
		t.Errorf("expected %q, got %q", NotAvailable, got)
	}
	d := Day(2025, time.July, 4)
	if got := FormatOptional(&d); got != "04/07/2025" {
		t.Errorf("expected 04/07/2025, got %q", got)
	}
}
