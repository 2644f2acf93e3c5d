package server_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/JaimeStill/system-api/internal/config"
	"github.com/JaimeStill/system-api/internal/server"
	"github.com/JaimeStill/system-api/pkg/lifecycle"
	"github.com/JaimeStill/system-api/pkg/logging"
)

func TestServer_StartShutdown(t *testing.T) {
	cfg := &config.ServerConfig{Host: "127.0.0.1", Port: 0, ReadTimeout: "1s", WriteTimeout: "1s"}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	lc := lifecycle.New()
	sys := server.New(cfg, handler, logging.Discard(), time.Second)

	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := lc.Shutdown(2 * time.Second); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestServer_ListenError(t *testing.T) {
	cfg := &config.ServerConfig{Host: "127.0.0.1", Port: -1}

	if err := server.New(cfg, http.NotFoundHandler(), logging.Discard(), time.Second).Start(lifecycle.New()); err == nil {
		t.Error("Start() error = nil, want listen error")
	}
}
