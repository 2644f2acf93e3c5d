package parameters_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/JaimeStill/system-api/internal/parameters"
	"github.com/JaimeStill/system-api/pkg/jsonapi"
	"github.com/JaimeStill/system-api/pkg/logging"
	"github.com/JaimeStill/system-api/pkg/query"
)

func arrayStore(t *testing.T) *parameters.FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parameters.toml")
	seed := "[app]\nservers = [\"a\", \"b\"]\n\n[[app.hosts]]\nname = \"primary\"\nport = 80\n"
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}
	return parameters.NewFileStore(path)
}

func valueAttrs(t *testing.T, v any) map[string]json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return map[string]json.RawMessage{parameters.AttrValue: raw}
}

func TestSystem_FindArrayElement(t *testing.T) {
	sys := parameters.New(arrayStore(t), query.Matcher{}, logging.Discard())
	ctx := context.Background()

	tests := map[string]any{
		"app.servers.0":    "a",
		"app.servers.1":    "b",
		"app.hosts.0.name": "primary",
		"app.hosts.0.port": int64(80),
	}
	for key, want := range tests {
		p, err := sys.Find(ctx, key)
		if err != nil {
			t.Errorf("Find(%s) error = %v", key, err)
			continue
		}
		if p.Value != want {
			t.Errorf("Find(%s) = %#v, want %#v", key, p.Value, want)
		}
	}

	for _, key := range []string{"app.servers.2", "app.servers.01", "app.servers.x", "app.servers"} {
		if _, err := sys.Find(ctx, key); !errors.Is(err, parameters.ErrNotFound) {
			t.Errorf("Find(%s) error = %v, want ErrNotFound", key, err)
		}
	}
}

func TestSystem_UpdateArrayElement(t *testing.T) {
	store := arrayStore(t)
	sys := parameters.New(store, query.Matcher{}, logging.Discard())
	ctx := context.Background()

	_, err := sys.Update(ctx, []parameters.Command{
		{ID: "app.servers.1", Attributes: valueAttrs(t, "z")},
		{Index: 1, ID: "app.hosts.0.port", Attributes: valueAttrs(t, 8080)},
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	want := map[string]any{
		"app.servers.0":    "a",
		"app.servers.1":    "z",
		"app.hosts.0.name": "primary",
		"app.hosts.0.port": int64(8080),
	}
	if len(all) != len(want) {
		t.Fatalf("All() = %v, want %v", all, want)
	}
	for k, v := range want {
		if all[k] != v {
			t.Errorf("All()[%s] = %#v, want %#v", k, all[k], v)
		}
	}
}

func TestSystem_DeleteArrayElement(t *testing.T) {
	store := arrayStore(t)
	sys := parameters.New(store, query.Matcher{}, logging.Discard())
	ctx := context.Background()

	if err := sys.Delete(ctx, []parameters.Command{{ID: "app.servers.0"}}); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := sys.Find(ctx, "app.servers.0"); !errors.Is(err, parameters.ErrNotFound) {
		t.Errorf("Find after delete error = %v, want ErrNotFound", err)
	}
	if p, err := sys.Find(ctx, "app.servers.1"); err != nil || p.Value != "b" {
		t.Errorf("Find(app.servers.1) = %+v, %v", p, err)
	}

	all, _ := store.All(ctx)
	if _, ok := all["app.servers.0"]; ok {
		t.Errorf("All() still lists deleted key: %v", all)
	}

	if err := sys.Delete(ctx, []parameters.Command{{ID: "app.servers.1"}}); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	all, _ = store.All(ctx)
	if _, ok := all["app.servers.1"]; ok {
		t.Errorf("All() still lists deleted key: %v", all)
	}
}

func TestSystem_ConcurrentCreate(t *testing.T) {
	sys := parameters.New(parameters.NewMemoryStore(nil), query.Matcher{}, logging.Discard())
	ctx := context.Background()

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			attrs := valueAttrs(t, i)
			attrs[parameters.AttrKey] = json.RawMessage(`"app.name"`)

			_, err := sys.Create(ctx, []parameters.Command{{Attributes: attrs}})

			mu.Lock()
			defer mu.Unlock()
			var errs jsonapi.Errors
			switch {
			case err == nil:
				succeeded++
			case errors.As(err, &errs) && errs[0].Code == jsonapi.CodeDataExists:
				conflicts++
			default:
				t.Errorf("Create() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 || conflicts != writers-1 {
		t.Errorf("succeeded = %d, conflicts = %d, want 1 and %d", succeeded, conflicts, writers-1)
	}
}
