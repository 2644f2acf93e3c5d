package jsonapi_test

import (
	"cmp"
	"testing"

	"github.com/JaimeStill/system-api/pkg/jsonapi"
	"github.com/JaimeStill/system-api/pkg/query"
)

type row struct {
	name    string
	enabled bool
}

var rowComparators = map[string]jsonapi.Comparator[row]{
	"name":    func(a, b row) int { return cmp.Compare(a.name, b.name) },
	"enabled": func(a, b row) int { return query.CompareBool(a.enabled, b.enabled) },
}

func names(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.name
	}
	return out
}

func TestSorter_Stable(t *testing.T) {
	rows := []row{{"d", true}, {"a", false}, {"c", true}, {"b", false}}

	sorter, errs := jsonapi.NewSorter("rows", query.ParseSortFields("-enabled"), nil, rowComparators)
	if !errs.Empty() {
		t.Fatalf("NewSorter() errors = %v", errs)
	}

	sorter.Sort(rows)

	want := []string{"d", "c", "a", "b"}
	got := names(rows)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSorter_Defaults(t *testing.T) {
	rows := []row{{"b", false}, {"c", true}, {"a", false}}

	sorter, errs := jsonapi.NewSorter("rows", nil, []query.SortField{{Field: "name"}}, rowComparators)
	if !errs.Empty() {
		t.Fatalf("NewSorter() errors = %v", errs)
	}

	sorter.Sort(rows)

	if got := names(rows); got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("order = %v, want [a b c]", got)
	}
}

func TestSorter_UnknownField(t *testing.T) {
	_, errs := jsonapi.NewSorter("rows", query.ParseSortFields("name,size,-weight"), nil, rowComparators)
	if len(errs) != 2 {
		t.Fatalf("len(errs) = %d, want 2", len(errs))
	}
	for _, err := range errs {
		if err.Code != jsonapi.CodeSortNotFound {
			t.Errorf("Code = %q, want %q", err.Code, jsonapi.CodeSortNotFound)
		}
	}
}
