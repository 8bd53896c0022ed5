// Package dates parses the loosely formatted dates found in AI answers and
// provides the calendar arithmetic used for expiration dates. All values are
// calendar days at midnight UTC.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/sstrack/internal/util"
)

// NotAvailable is the serialized form of an absent date.
const NotAvailable = "N/A"

// Layout is the persisted date layout (DD/MM/YYYY).
const Layout = "02/01/2006"

// datePattern finds the first date-looking substring. Alternatives are
// tried leftmost-first, so "2024/03/15" is taken year-first rather than
// as "24/03/15".
var datePattern = regexp.MustCompile(`(?i)\d{4}[/.\-]\d{1,2}[/.\-]\d{1,2}|\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}|\d{1,2}\s+de\s+\p{L}+\s+de\s+\d{4}`)

var yearFirstPattern = regexp.MustCompile(`^\d{4}[/.\-]`)

// yearFirstSeparators rewrites any year-first separator to the ISO dash.
var yearFirstSeparators = strings.NewReplacer("/", "-", ".", "-")

var longFormPattern = regexp.MustCompile(`(?i)^(\d{1,2})\s+de\s+(\p{L}+)\s+de\s+(\d{4})$`)

var monthNames = map[string]time.Month{
	"JANEIRO":   time.January,
	"FEVEREIRO": time.February,
	"MARCO":     time.March,
	"ABRIL":     time.April,
	"MAIO":      time.May,
	"JUNHO":     time.June,
	"JULHO":     time.July,
	"AGOSTO":    time.August,
	"SETEMBRO":  time.September,
	"OUTUBRO":   time.October,
	"NOVEMBRO":  time.November,
	"DEZEMBRO":  time.December,
}

// interpretations are tried in order on the matched substring; the first
// that yields a real calendar date wins.
var interpretations = []func(string) (time.Time, bool){
	layout("2/1/2006"),
	layout("2/1/06"),
	layout("2-1-2006"),
	layout("2-1-06"),
	parseLongForm,
	layout("2006-1-2"),
}

// Parse extracts a calendar date from free text. It returns false for empty
// input, the "N/A" marker, or text without a recognizable date.
func Parse(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" || strings.EqualFold(text, NotAvailable) {
		return time.Time{}, false
	}

	match := datePattern.FindString(text)
	if match == "" {
		return time.Time{}, false
	}
	if yearFirstPattern.MatchString(match) {
		match = yearFirstSeparators.Replace(match)
	} else {
		match = strings.ReplaceAll(match, ".", "/")
	}

	for _, interpret := range interpretations {
		if t, ok := interpret(match); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func layout(l string) func(string) (time.Time, bool) {
	return func(s string) (time.Time, bool) {
		t, err := time.Parse(l, s)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
}

func parseLongForm(s string) (time.Time, bool) {
	m := longFormPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	month, ok := monthNames[util.Fold(m[2])]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])

	t := Day(year, month, day)
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

// Format serializes t as DD/MM/YYYY.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// FormatOptional serializes t, or "N/A" when t is nil.
func FormatOptional(t *time.Time) string {
	if t == nil {
		return NotAvailable
	}
	return Format(*t)
}
