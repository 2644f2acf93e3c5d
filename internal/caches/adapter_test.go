package caches_test

import (
	"errors"
	"testing"
	"time"

	"github.com/JaimeStill/system-api/internal/caches"
	"github.com/JaimeStill/system-api/pkg/jsonapi"
)

func TestAdapter_Resource(t *testing.T) {
	c := caches.NewTTLControl[string, int]("templates", caches.Options{TTL: time.Minute, Locked: true}, nil)
	snap := caches.Snapshot(c)

	q := &jsonapi.Query{Fields: map[string][]string{caches.Type: {"name", "isEnabled"}}}

	res, err := caches.NewAdapter(nil).Resource(snap, q)
	if err != nil {
		t.Fatalf("Resource() error = %v", err)
	}

	if res.Type != caches.Type || res.ID != "templates" {
		t.Errorf("identity = %s/%s", res.Type, res.ID)
	}
	if len(res.Attributes) != 2 || res.Attributes["name"] != "templates" || res.Attributes["isEnabled"] != false {
		t.Errorf("attributes = %v", res.Attributes)
	}
	if _, ok := res.Links["self"]; ok {
		t.Error("self link without a link table")
	}
	if !snap.IsLocked {
		t.Error("locked control should project isLocked")
	}
}

func TestAdapter_InvalidData(t *testing.T) {
	adapter := caches.NewAdapter(nil)

	for _, c := range []caches.Cache{caches.Snapshot(nil), {ID: "x"}} {
		if _, err := adapter.Resource(c, nil); !errors.Is(err, jsonapi.ErrInvalidData) {
			t.Errorf("Resource(%+v) error = %v, want ErrInvalidData", c, err)
		}
	}
}
