package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// numberedLine matches "1. answer", "1) answer", "1 - answer" and the
// markdown-bold variants models like to produce.
var numberedLine = regexp.MustCompile(`^\s*[*_]*\s*(\d{1,2})\s*[.):\-]\s*(.*)$`)

// ParseNumbered collects the answers of a line-numbered reply, keyed by
// line number. Unnumbered lines are ignored; the first occurrence of a
// number wins.
func ParseNumbered(text string) map[int]string {
	answers := make(map[int]string)
	for _, line := range strings.Split(text, "\n") {
		m := numberedLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if _, seen := answers[n]; seen {
			continue
		}
		answers[n] = cleanAnswer(m[2])
	}
	return answers
}

// cleanAnswer strips markdown emphasis and a short leading label such as
// "Tipo:" from an answer.
func cleanAnswer(s string) string {
	s = strings.Trim(strings.TrimSpace(s), "*_` ")
	if idx := strings.Index(s, ":"); idx > 0 && idx <= 30 {
		label := s[:idx]
		if !strings.ContainsAny(label, "0123456789") {
			s = strings.TrimSpace(s[idx+1:])
		}
	}
	return strings.Trim(s, "*_` ")
}
