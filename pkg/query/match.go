package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Matcher performs substring matching with a configured case policy.
type Matcher struct {
	CaseSensitive bool
}

// Contains reports whether value contains search. An empty search matches everything.
func (m Matcher) Contains(value, search string) bool {
	if search == "" {
		return true
	}
	if m.CaseSensitive {
		return strings.Contains(value, search)
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(search))
}

// ContainsValue matches the string form of an arbitrary scalar.
func (m Matcher) ContainsValue(value any, search string) bool {
	return m.Contains(Stringify(value), search)
}

// Stringify renders a scalar the way it is matched and sorted.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// ParseBool parses a boolean filter value. It accepts the strconv forms
// plus "yes"/"no".
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(s))
}
