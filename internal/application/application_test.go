package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/buildconf/internal/config"
)

func TestNewInitializesDependencies(t *testing.T) {
	build := config.BuildConfiguration{
		CompilerVersion: "0.8.26",
		Networks: map[string]config.Network{
			"example": {URL: "http://host:8545", ChainID: 1337},
		},
	}
	logger := zaptest.NewLogger(t)

	app, err := New(build, baseTestConfig(":8085"), logger)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	got, err := app.store.Configuration()
	if err != nil {
		t.Fatalf("Configuration returned error: %v", err)
	}
	if !got.Equal(build) {
		t.Fatalf("expected stored configuration %+v, got %+v", build, got)
	}
	if app.server == nil || app.router == nil || app.handler == nil {
		t.Fatalf("expected server, router, and handler to be initialized")
	}
	if app.Server() != app.server {
		t.Fatalf("Server accessor did not return underlying instance")
	}
}

func TestNewServerAppliesConfig(t *testing.T) {
	cfg := baseTestConfig("9090")
	handler := http.NewServeMux()

	server := NewServer(cfg, handler)
	if server.Addr != ":9090" {
		t.Fatalf("expected address :9090, got %s", server.Addr)
	}
	if server.Handler != handler {
		t.Fatalf("expected handler to be applied")
	}
	if server.ReadHeaderTimeout != cfg.ReadHeaderTimeout ||
		server.WriteTimeout != cfg.WriteTimeout ||
		server.IdleTimeout != cfg.IdleTimeout {
		t.Fatalf("server timeouts do not match configuration")
	}
}

func TestNewReturnsErrorForInvalidConfiguration(t *testing.T) {
	build := config.BuildConfiguration{
		CompilerVersion: "0.8.26",
		Networks: map[string]config.Network{
			"broken": {URL: "http://host:8545", ChainID: -1},
		},
	}

	if _, err := New(build, baseTestConfig(":0"), zaptest.NewLogger(t)); !errors.Is(err, config.ErrConfigParse) {
		t.Fatalf("expected ErrConfigParse, got %v", err)
	}
}

func TestStartServesConfiguration(t *testing.T) {
	app, err := New(config.Default(), baseTestConfig("127.0.0.1:0"), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := app.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = app.server.Shutdown(ctx)
	})

	resp, err := http.Get(fmt.Sprintf("http://%s/api/config", app.Addr()))
	if err != nil {
		t.Fatalf("GET /api/config: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var body struct {
		CompilerVersion string `json:"compilerVersion"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.CompilerVersion != config.DefaultCompilerVersion {
		t.Fatalf("expected %s, got %s", config.DefaultCompilerVersion, body.CompilerVersion)
	}
}

func TestStartReturnsBindError(t *testing.T) {
	app, err := New(config.Default(), baseTestConfig("256.0.0.1:1"), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := app.Start(); err == nil {
		t.Fatalf("expected bind error for invalid address")
	}
}

func baseTestConfig(port string) config.ServerConfig {
	return config.ServerConfig{
		Port:                 port,
		ShutdownGracePeriod:  50 * time.Millisecond,
		ReadHeaderTimeout:    time.Second,
		WriteTimeout:         time.Second,
		IdleTimeout:          time.Second,
		EnableRequestLogging: false,
		RateLimitRPS:         0,
		RateLimitBurst:       0,
		LogLevel:             "info",
	}
}
