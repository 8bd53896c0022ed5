package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoObject is returned when an answer has no JSON object in it
var ErrNoObject = errors.New("no JSON object found")

// DecodeJSON decodes the outermost JSON object of an AI answer into v,
// tolerating code fences, labels and trailing prose around it.
func DecodeJSON(raw string, v interface{}) error {
	s := stripFences(raw)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return ErrNoObject
	}
	if err := json.Unmarshal([]byte(s[start:end+1]), v); err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}
	return nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		// drop the opener line, including any language tag
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

var firstNumber = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// Hours is a workload that decodes from a JSON number or from text such as
// "16 horas" or "16h". Unreadable values decode as zero.
type Hours int

// UnmarshalJSON implements json.Unmarshaler
func (h *Hours) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*h = Hours(math.Round(t))
	case string:
		m := firstNumber.FindString(t)
		if m == "" {
			*h = 0
			return nil
		}
		f, err := strconv.ParseFloat(strings.Replace(m, ",", ".", 1), 64)
		if err != nil {
			*h = 0
			return nil
		}
		*h = Hours(math.Round(f))
	default:
		*h = 0
	}
	return nil
}

// Text decodes from a JSON string, a list of strings (joined with ", ") or
// null.
type Text string

// UnmarshalJSON implements json.Unmarshaler
func (s *Text) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*s = Text(strings.TrimSpace(t))
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if str := strings.TrimSpace(fmt.Sprint(item)); str != "" {
				parts = append(parts, str)
			}
		}
		*s = Text(strings.Join(parts, ", "))
	case nil:
		*s = ""
	default:
		*s = Text(fmt.Sprint(t))
	}
	return nil
}
