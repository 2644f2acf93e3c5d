package jsonapi_test

import (
	"net/url"
	"testing"

	"github.com/JaimeStill/system-api/pkg/jsonapi"
	"github.com/JaimeStill/system-api/pkg/pagination"
)

var pageCfg = pagination.Config{DefaultLimit: 100, MaxLimit: 100}

func TestParseQuery(t *testing.T) {
	values := url.Values{
		"fields[caches]":   {"name, isEnabled"},
		"filter[name]":     {"tmpl"},
		"filter[isLocked]": {"false"},
		"sort":             {"-isEnabled,name"},
		"page[offset]":     {"10"},
		"page[limit]":      {"5"},
	}

	q, errs := jsonapi.ParseQuery(values, pageCfg)
	if !errs.Empty() {
		t.Fatalf("ParseQuery() errors = %v", errs)
	}

	if q.Page.Offset != 10 || q.Page.Limit != 5 {
		t.Errorf("Page = %+v, want offset 10 limit 5", q.Page)
	}

	if len(q.Sort) != 2 || q.Sort[0].Field != "isEnabled" || !q.Sort[0].Descending {
		t.Errorf("Sort = %v", q.Sort)
	}

	if q.Filters["name"] != "tmpl" || q.Filters["isLocked"] != "false" {
		t.Errorf("Filters = %v", q.Filters)
	}

	names := q.FilterNames()
	if len(names) != 2 || names[0] != "isLocked" || names[1] != "name" {
		t.Errorf("FilterNames() = %v", names)
	}

	if !q.IsFieldRequested("caches", "isEnabled") {
		t.Error("isEnabled should be requested")
	}
	if q.IsFieldRequested("caches", "isLocked") {
		t.Error("isLocked should not be requested")
	}
	if !q.IsFieldRequested("parameters", "value") {
		t.Error("types without a fieldset request every field")
	}
}

func TestParseQuery_LimitCapped(t *testing.T) {
	q, errs := jsonapi.ParseQuery(url.Values{"page[limit]": {"1000"}}, pageCfg)
	if !errs.Empty() {
		t.Fatalf("ParseQuery() errors = %v", errs)
	}
	if q.Page.Limit != 100 {
		t.Errorf("Limit = %d, want 100", q.Page.Limit)
	}
}

func TestParseQuery_InvalidPage(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric offset", "page[offset]", "abc"},
		{"negative offset", "page[offset]", "-1"},
		{"offset above bound", "page[offset]", "2147483648"},
		{"offset near max int", "page[offset]", "9223372036854775807"},
		{"non-numeric limit", "page[limit]", "ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := jsonapi.ParseQuery(url.Values{tt.key: {tt.value}}, pageCfg)
			if len(errs) != 1 {
				t.Fatalf("len(errs) = %d, want 1", len(errs))
			}
			if errs[0].Code != jsonapi.CodePageInvalid {
				t.Errorf("Code = %q, want %q", errs[0].Code, jsonapi.CodePageInvalid)
			}
			if errs[0].Source.Parameter != tt.key {
				t.Errorf("Source.Parameter = %q, want %q", errs[0].Source.Parameter, tt.key)
			}
		})
	}
}
