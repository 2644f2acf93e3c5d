// Package query provides the sort and match primitives shared by the
// in-memory resource collections.
package query

import (
	"cmp"
	"strings"
)

// SortField is one requested sort key. A "-" prefix in the query string
// marks the field as descending.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending,omitempty"`
}

// ParseSortFields parses a comma-separated sort expression such as "name,-isEnabled".
// Empty segments are ignored.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	fields := make([]SortField, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		descending := false
		if strings.HasPrefix(part, "-") {
			descending = true
			part = part[1:]
		}

		if part != "" {
			fields = append(fields, SortField{Field: part, Descending: descending})
		}
	}

	return fields
}

// String renders the field back to its query form.
func (f SortField) String() string {
	if f.Descending {
		return "-" + f.Field
	}
	return f.Field
}

// CompareBool orders false before true.
func CompareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// CompareString orders strings lexically.
func CompareString(a, b string) int {
	return cmp.Compare(a, b)
}
