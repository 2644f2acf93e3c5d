package parameters_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/system-api/internal/caches"
	"github.com/JaimeStill/system-api/internal/parameters"
	"github.com/JaimeStill/system-api/pkg/jsonapi"
	"github.com/JaimeStill/system-api/pkg/logging"
	"github.com/JaimeStill/system-api/pkg/pagination"
	"github.com/JaimeStill/system-api/pkg/query"
	"github.com/JaimeStill/system-api/pkg/routes"
)

const bulkType = jsonapi.MediaType + `; ext="bulk"`

type fixture struct {
	mux   *http.ServeMux
	store parameters.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	backing := parameters.NewMemoryStore(map[string]any{
		"app.name":       "system",
		"app.debug":      true,
		"mail.smtp.port": 25,
	})
	store := parameters.NewCachedStore(backing, "parameters", caches.Options{TTL: time.Minute, Enabled: true})

	links := routes.NewLinks()
	sys := parameters.New(store, query.Matcher{}, logging.Discard())
	h := parameters.NewHandler(
		sys,
		parameters.NewAdapter(links),
		logging.Discard(),
		pagination.Config{DefaultLimit: 100, MaxLimit: 100},
	)

	mux := http.NewServeMux()
	routes.Register(mux, "/api", nil, links, h.Routes())
	return &fixture{mux: mux, store: store}
}

type response struct {
	status int
	header http.Header
	Data   json.RawMessage   `json:"data"`
	Errors []jsonapi.Error   `json:"errors"`
	Meta   map[string]any    `json:"meta"`
	Links  map[string]string `json:"links"`
}

func (f *fixture) do(t *testing.T, method, target, contentType, body string) response {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	resp := response{status: rec.Code, header: rec.Header()}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body %q: %v", rec.Body.String(), err)
		}
	}
	return resp
}

func (f *fixture) all(t *testing.T) map[string]any {
	t.Helper()
	all, err := f.store.All(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return all
}

func (r response) resources(t *testing.T) []jsonapi.Resource {
	t.Helper()
	var res []jsonapi.Resource
	if err := json.Unmarshal(r.Data, &res); err != nil {
		t.Fatalf("data is not an array: %v", err)
	}
	return res
}

func (r response) resource(t *testing.T) jsonapi.Resource {
	t.Helper()
	var res jsonapi.Resource
	if err := json.Unmarshal(r.Data, &res); err != nil {
		t.Fatalf("data is not an object: %v", err)
	}
	return res
}

func ids(res []jsonapi.Resource) []string {
	out := make([]string, len(res))
	for i, r := range res {
		out[i] = r.ID
	}
	return out
}

func codes(errs []jsonapi.Error) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestList(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"default sort by key", "", []string{"app.debug", "app.name", "mail.smtp.port"}},
		{"key filter ignores case", "?filter[key]=APP", []string{"app.debug", "app.name"}},
		{"value filter", "?filter[value]=SYS", []string{"app.name"}},
		{"numeric value filter", "?filter[value]=25", []string{"mail.smtp.port"}},
		{"descending key", "?sort=-key", []string{"mail.smtp.port", "app.name", "app.debug"}},
		{"by value", "?sort=value", []string{"mail.smtp.port", "app.name", "app.debug"}},
		{"paged", "?page[offset]=2&page[limit]=1", []string{"mail.smtp.port"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			resp := f.do(t, http.MethodGet, "/parameters"+tt.query, "", "")

			if resp.status != http.StatusOK {
				t.Fatalf("status = %d, errors = %+v", resp.status, resp.Errors)
			}
			if got := ids(resp.resources(t)); !equal(got, tt.want) {
				t.Errorf("ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestList_Errors(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodGet, "/parameters?filter[name]=x&sort=size", "", "")

	if resp.status != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.status)
	}
	want := []string{jsonapi.CodeFilterNotFound, jsonapi.CodeSortNotFound}
	if got := codes(resp.Errors); !equal(got, want) {
		t.Errorf("codes = %v, want %v", got, want)
	}
}

func TestFind(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/parameters/mail.smtp.port", "", "")
	if resp.status != http.StatusOK {
		t.Fatalf("status = %d", resp.status)
	}
	res := resp.resource(t)
	if res.ID != "mail.smtp.port" || res.Attributes["value"] != float64(25) || res.Attributes["key"] != "mail.smtp.port" {
		t.Errorf("resource = %+v", res)
	}
	if res.Links["self"] != "/api/parameters/mail.smtp.port" {
		t.Errorf("self = %q", res.Links["self"])
	}

	for _, key := range []string{"missing.key", "mail.smtp"} {
		resp := f.do(t, http.MethodGet, "/parameters/"+key, "", "")
		if resp.status != http.StatusNotFound || resp.Errors[0].Code != jsonapi.CodeResourceNotFound {
			t.Errorf("%s: status = %d, errors = %+v", key, resp.status, resp.Errors)
		}
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	body := `{"data":{"type":"parameters","attributes":{"key":"app.version","value":"1.0"}}}`
	resp := f.do(t, http.MethodPost, "/parameters", jsonapi.MediaType, body)

	if resp.status != http.StatusCreated {
		t.Fatalf("status = %d, errors = %+v", resp.status, resp.Errors)
	}
	if loc := resp.header.Get("Location"); loc != "/api/parameters/app.version" {
		t.Errorf("Location = %q", loc)
	}
	if res := resp.resource(t); res.ID != "app.version" || res.Attributes["value"] != "1.0" {
		t.Errorf("resource = %+v", res)
	}
	if f.all(t)["app.version"] != "1.0" {
		t.Error("parameter not stored")
	}
}

func TestCreate_ClientID(t *testing.T) {
	f := newFixture(t)

	body := `{"data":{"type":"parameters","id":"app.port","attributes":{"value":8080}}}`
	resp := f.do(t, http.MethodPost, "/parameters", jsonapi.MediaType, body)

	if resp.status != http.StatusCreated {
		t.Fatalf("status = %d, errors = %+v", resp.status, resp.Errors)
	}
	if f.all(t)["app.port"] != int64(8080) {
		t.Errorf("app.port = %#v", f.all(t)["app.port"])
	}
}

func TestCreate_Bulk(t *testing.T) {
	f := newFixture(t)

	body := `{"data":[
		{"type":"parameters","attributes":{"key":"cache.ttl","value":60}},
		{"type":"parameters","attributes":{"key":"cache.ratio","value":0.25}}
	]}`
	resp := f.do(t, http.MethodPost, "/parameters", bulkType, body)

	if resp.status != http.StatusCreated {
		t.Fatalf("status = %d, errors = %+v", resp.status, resp.Errors)
	}
	if resp.header.Get("Location") != "" {
		t.Error("bulk create should not set Location")
	}
	if got := ids(resp.resources(t)); !equal(got, []string{"cache.ttl", "cache.ratio"}) {
		t.Errorf("ids = %v", got)
	}

	all := f.all(t)
	if all["cache.ttl"] != int64(60) || all["cache.ratio"] != 0.25 {
		t.Errorf("stored = %v", all)
	}
}

func TestCreate_BulkRequiresExtension(t *testing.T) {
	f := newFixture(t)

	body := `{"data":[{"type":"parameters","attributes":{"key":"cache.ttl","value":60}}]}`
	resp := f.do(t, http.MethodPost, "/parameters", jsonapi.MediaType, body)

	if resp.status != http.StatusBadRequest || resp.Errors[0].Code != jsonapi.CodeBulkRequired {
		t.Errorf("status = %d, errors = %+v", resp.status, resp.Errors)
	}
}

func TestCreate_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		attrs   string
		status  int
		code    string
		pointer string
	}{
		{"missing key", `{"value":"x"}`, http.StatusBadRequest, jsonapi.CodeAttributeValidation, "/data/attributes/key"},
		{"key not a string", `{"key":5,"value":"x"}`, http.StatusBadRequest, jsonapi.CodeAttributeValidation, "/data/attributes/key"},
		{"key without dot", `{"key":"name","value":"x"}`, http.StatusBadRequest, jsonapi.CodeAttributeValidation, "/data/attributes/key"},
		{"key with leading dot", `{"key":".name","value":"x"}`, http.StatusBadRequest, jsonapi.CodeAttributeValidation, "/data/attributes/key"},
		{"empty segment", `{"key":"app..name","value":"x"}`, http.StatusBadRequest, jsonapi.CodeAttributeValidation, "/data/attributes/key"},
		{"missing value", `{"key":"app.x"}`, http.StatusBadRequest, jsonapi.CodeAttributeValidation, "/data/attributes/value"},
		{"null value", `{"key":"app.x","value":null}`, http.StatusBadRequest, jsonapi.CodeAttributeValidation, "/data/attributes/value"},
		{"object value", `{"key":"app.x","value":{"a":1}}`, http.StatusBadRequest, jsonapi.CodeAttributeValidation, "/data/attributes/value"},
		{"unknown attribute", `{"key":"app.x","value":1,"ttl":5}`, http.StatusBadRequest, jsonapi.CodeAttributeValidation, "/data/attributes/ttl"},
		{"existing key", `{"key":"app.name","value":"x"}`, http.StatusConflict, jsonapi.CodeDataExists, "/data"},
		{"overlaps existing", `{"key":"app.name.first","value":"x"}`, http.StatusConflict, jsonapi.CodeDataExists, "/data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			before := len(f.all(t))

			body := `{"data":{"type":"parameters","attributes":` + tt.attrs + `}}`
			resp := f.do(t, http.MethodPost, "/parameters", jsonapi.MediaType, body)

			if resp.status != tt.status {
				t.Fatalf("status = %d, want %d (%+v)", resp.status, tt.status, resp.Errors)
			}
			if len(resp.Errors) != 1 {
				t.Fatalf("errors = %+v", resp.Errors)
			}
			e := resp.Errors[0]
			if e.Code != tt.code || e.Source == nil || e.Source.Pointer != tt.pointer {
				t.Errorf("error = %+v, want %s at %s", e, tt.code, tt.pointer)
			}
			if after := len(f.all(t)); after != before {
				t.Errorf("store changed from %d to %d parameters", before, after)
			}
		})
	}
}

func TestCreate_BulkAllOrNothing(t *testing.T) {
	f := newFixture(t)

	body := `{"data":[
		{"type":"parameters","attributes":{"key":"cache.ttl","value":60}},
		{"type":"parameters","attributes":{"key":"cache.ttl","value":30}},
		{"type":"parameters","attributes":{"key":"bad","value":[1]}}
	]}`
	resp := f.do(t, http.MethodPost, "/parameters", bulkType, body)

	if resp.status != http.StatusBadRequest {
		t.Fatalf("status = %d, errors = %+v", resp.status, resp.Errors)
	}

	pointers := make([]string, len(resp.Errors))
	for i, e := range resp.Errors {
		pointers[i] = e.Source.Pointer
	}
	want := []string{"/data/1", "/data/2/attributes/key", "/data/2/attributes/value"}
	if !equal(pointers, want) {
		t.Errorf("pointers = %v, want %v", pointers, want)
	}
	if _, ok := f.all(t)["cache.ttl"]; ok {
		t.Error("valid resource saved despite errors")
	}
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)

	// warm the cache so the update must invalidate it
	f.do(t, http.MethodGet, "/parameters/app.name", "", "")

	body := `{"data":{"type":"parameters","id":"app.name","attributes":{"value":"renamed"}}}`
	resp := f.do(t, http.MethodPatch, "/parameters/app.name", jsonapi.MediaType, body)

	if resp.status != http.StatusOK {
		t.Fatalf("status = %d, errors = %+v", resp.status, resp.Errors)
	}
	if res := resp.resource(t); res.Attributes["value"] != "renamed" {
		t.Errorf("value = %v", res.Attributes["value"])
	}

	resp = f.do(t, http.MethodGet, "/parameters/app.name", "", "")
	if res := resp.resource(t); res.Attributes["value"] != "renamed" {
		t.Errorf("find after update = %v", res.Attributes["value"])
	}
}

func TestUpdate_Rename(t *testing.T) {
	f := newFixture(t)

	body := `{"data":{"type":"parameters","id":"app.name","attributes":{"key":"app.title"}}}`
	resp := f.do(t, http.MethodPatch, "/parameters/app.name", jsonapi.MediaType, body)

	if resp.status != http.StatusOK {
		t.Fatalf("status = %d, errors = %+v", resp.status, resp.Errors)
	}
	if res := resp.resource(t); res.ID != "app.title" || res.Attributes["value"] != "system" {
		t.Errorf("resource = %+v", res)
	}

	all := f.all(t)
	if _, ok := all["app.name"]; ok {
		t.Error("old key still stored")
	}
	if all["app.title"] != "system" {
		t.Errorf("app.title = %v", all["app.title"])
	}
}

func TestUpdate_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		attrs  string
		status int
		code   string
	}{
		{"missing parameter", "app.missing", `{"value":1}`, http.StatusNotFound, jsonapi.CodeResourceNotFound},
		{"rename onto existing", "app.name", `{"key":"app.debug"}`, http.StatusConflict, jsonapi.CodeDataExists},
		{"invalid key", "app.name", `{"key":"title"}`, http.StatusBadRequest, jsonapi.CodeAttributeValidation},
		{"null value", "app.name", `{"value":null}`, http.StatusBadRequest, jsonapi.CodeAttributeValidation},
		{"array value", "app.name", `{"value":[1,2]}`, http.StatusBadRequest, jsonapi.CodeAttributeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			body := `{"data":{"type":"parameters","id":"` + tt.id + `","attributes":` + tt.attrs + `}}`
			resp := f.do(t, http.MethodPatch, "/parameters/"+tt.id, jsonapi.MediaType, body)

			if resp.status != tt.status {
				t.Fatalf("status = %d, want %d (%+v)", resp.status, tt.status, resp.Errors)
			}
			if len(resp.Errors) != 1 || resp.Errors[0].Code != tt.code {
				t.Errorf("errors = %+v, want %s", resp.Errors, tt.code)
			}
			if f.all(t)["app.name"] != "system" {
				t.Error("rejected update changed app.name")
			}
		})
	}
}

func TestUpdate_Identity(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPatch, "/parameters/app.name", jsonapi.MediaType,
		`{"data":{"type":"caches","id":"app.debug","attributes":{"value":"x"}}}`)

	if resp.status != http.StatusConflict {
		t.Fatalf("status = %d", resp.status)
	}
	want := []string{jsonapi.CodeTypeMismatch, jsonapi.CodeIDMismatch}
	if got := codes(resp.Errors); !equal(got, want) {
		t.Errorf("codes = %v, want %v", got, want)
	}
}

func TestUpdateBulk(t *testing.T) {
	f := newFixture(t)

	body := `{"data":[
		{"type":"parameters","id":"app.debug","attributes":{"value":false}},
		{"type":"parameters","id":"mail.smtp.port","attributes":{"value":587}}
	]}`
	resp := f.do(t, http.MethodPatch, "/parameters", bulkType, body)

	if resp.status != http.StatusOK {
		t.Fatalf("status = %d, errors = %+v", resp.status, resp.Errors)
	}
	if !strings.Contains(resp.header.Get("Content-Type"), `ext="bulk"`) {
		t.Errorf("Content-Type = %q", resp.header.Get("Content-Type"))
	}

	all := f.all(t)
	if all["app.debug"] != false || all["mail.smtp.port"] != int64(587) {
		t.Errorf("stored = %v", all)
	}
}

func TestUpdateBulk_AllOrNothing(t *testing.T) {
	f := newFixture(t)

	body := `{"data":[
		{"type":"parameters","id":"app.debug","attributes":{"value":false}},
		{"type":"parameters","id":"app.gone","attributes":{"value":1}}
	]}`
	resp := f.do(t, http.MethodPatch, "/parameters", bulkType, body)

	if resp.status != http.StatusNotFound {
		t.Fatalf("status = %d, errors = %+v", resp.status, resp.Errors)
	}
	if f.all(t)["app.debug"] != true {
		t.Error("valid resource saved despite errors")
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t)

	f.do(t, http.MethodGet, "/parameters/app.name", "", "")

	resp := f.do(t, http.MethodDelete, "/parameters/app.name", "", "")
	if resp.status != http.StatusNoContent {
		t.Fatalf("status = %d, errors = %+v", resp.status, resp.Errors)
	}

	resp = f.do(t, http.MethodGet, "/parameters/app.name", "", "")
	if resp.status != http.StatusNotFound {
		t.Errorf("find after delete: status = %d", resp.status)
	}

	resp = f.do(t, http.MethodDelete, "/parameters/app.name", "", "")
	if resp.status != http.StatusNotFound || resp.Errors[0].Code != jsonapi.CodeResourceNotFound {
		t.Errorf("second delete: status = %d, errors = %+v", resp.status, resp.Errors)
	}
}

func TestDeleteBulk(t *testing.T) {
	f := newFixture(t)

	body := `{"data":[
		{"type":"parameters","id":"app.name"},
		{"type":"parameters","id":"mail.smtp.port"}
	]}`
	resp := f.do(t, http.MethodDelete, "/parameters", bulkType, body)

	if resp.status != http.StatusNoContent {
		t.Fatalf("status = %d, errors = %+v", resp.status, resp.Errors)
	}

	all := f.all(t)
	if len(all) != 1 || all["app.debug"] != true {
		t.Errorf("stored = %v", all)
	}
}

func TestDeleteBulk_AllOrNothing(t *testing.T) {
	f := newFixture(t)

	body := `{"data":[
		{"type":"parameters","id":"app.name"},
		{"type":"parameters","id":"app.gone"}
	]}`
	resp := f.do(t, http.MethodDelete, "/parameters", bulkType, body)

	if resp.status != http.StatusNotFound {
		t.Fatalf("status = %d", resp.status)
	}
	if len(f.all(t)) != 3 {
		t.Error("parameters deleted despite errors")
	}
}
