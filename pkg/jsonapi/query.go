package jsonapi

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/JaimeStill/system-api/pkg/pagination"
	"github.com/JaimeStill/system-api/pkg/query"
)

// Query holds the JSON:API query parameters of a request.
type Query struct {
	Fields  map[string][]string
	Filters map[string]string
	Sort    []query.SortField
	Page    pagination.PageRequest
}

// ParseQuery reads fields[type], filter[name], sort, page[offset] and
// page[limit] from values. The page request is normalized against cfg, so
// the limit never exceeds cfg.MaxLimit.
func ParseQuery(values url.Values, cfg pagination.Config) (*Query, Errors) {
	q := &Query{
		Fields:  make(map[string][]string),
		Filters: make(map[string]string),
	}

	var errs Errors

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		value := vals[0]

		switch {
		case key == "sort":
			q.Sort = query.ParseSortFields(value)

		case strings.HasPrefix(key, "fields[") && strings.HasSuffix(key, "]"):
			typ := key[len("fields[") : len(key)-1]
			q.Fields[typ] = splitList(value)

		case strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]"):
			name := key[len("filter[") : len(key)-1]
			q.Filters[name] = value

		case key == "page[offset]":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 || n > pagination.MaxOffset {
				errs.Add(PageInvalid(key, value))
				continue
			}
			q.Page.Offset = n

		case key == "page[limit]":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				errs.Add(PageInvalid(key, value))
				continue
			}
			q.Page.Limit = n
		}
	}

	q.Page.Normalize(cfg)

	return q, errs
}

// FilterNames returns the requested filter names in a stable order.
func (q *Query) FilterNames() []string {
	names := make([]string, 0, len(q.Filters))
	for name := range q.Filters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsFieldRequested reports whether field of typ should be rendered. Without
// a sparse fieldset for typ every field is requested.
func (q *Query) IsFieldRequested(typ, field string) bool {
	if q == nil {
		return true
	}
	fields, ok := q.Fields[typ]
	if !ok {
		return true
	}
	return slices.Contains(fields, field)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
