package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/system-api/pkg/openapi"
	"github.com/JaimeStill/system-api/pkg/routes"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(r.PathValue("id")))
}

func testGroup() routes.Group {
	return routes.Group{
		Prefix: "/caches",
		Tags:   []string{"Caches"},
		Schemas: map[string]*openapi.Schema{
			"Cache": {Type: "object"},
		},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: ok, OpenAPI: &openapi.Operation{Summary: "List"}},
			{Name: "caches.detail", Method: "GET", Pattern: "/{id}", Handler: ok, OpenAPI: &openapi.Operation{Summary: "Detail"}},
		},
		Children: []routes.Group{
			{
				Prefix: "/{id}",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "/warm", Handler: ok, OpenAPI: &openapi.Operation{Summary: "Warm"}},
				},
			},
		},
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	spec := openapi.NewSpec("test", "1.0.0")
	links := routes.NewLinks()

	routes.Register(mux, "/api", spec, links, testGroup())

	req := httptest.NewRequest(http.MethodGet, "/caches/templates", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "templates" {
		t.Errorf("detail route: status %d body %q", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/caches/templates/warm", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("child route status = %d", rec.Code)
	}

	if spec.Paths["/api/caches"].Get == nil {
		t.Error("list operation missing from spec")
	}
	warm := spec.Paths["/api/caches/{id}/warm"].Post
	if warm == nil || len(warm.Tags) != 1 || warm.Tags[0] != "Caches" {
		t.Errorf("child operation should inherit tags, got %+v", warm)
	}
	if _, ok := spec.Components.Schemas["Cache"]; !ok {
		t.Error("group schemas not added")
	}
}

func TestLinks_URL(t *testing.T) {
	mux := http.NewServeMux()
	links := routes.NewLinks()
	routes.Register(mux, "/api", nil, links, testGroup())

	tests := []struct {
		name    string
		route   string
		params  []string
		want    string
		wantErr bool
	}{
		{"resolved", "caches.detail", []string{"id", "templates"}, "/api/caches/templates", false},
		{"escaped", "caches.detail", []string{"id", "a b/c"}, "/api/caches/a%20b%2Fc", false},
		{"unknown route", "caches.missing", []string{"id", "x"}, "", true},
		{"odd params", "caches.detail", []string{"id"}, "", true},
		{"unresolved", "caches.detail", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := links.URL(tt.route, tt.params...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("URL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("URL() = %q, want %q", got, tt.want)
			}
		})
	}
}
