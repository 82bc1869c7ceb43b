package config

import (
	"strings"
	"testing"
)

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("load server config: %v", err)
	}
	if cfg.Addr != ":5000" {
		t.Fatalf("expected default addr :5000, got %q", cfg.Addr)
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Fatalf("expected no default origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadServerFromEnv(t *testing.T) {
	t.Setenv("INTERVIEWLY_ADDR", ":9000")
	t.Setenv("INTERVIEWLY_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("load server config: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Fatalf("expected :9000, got %q", cfg.Addr)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoadClientPriority(t *testing.T) {
	t.Setenv("INTERVIEWLY_SERVER_URL", "ws://env.example/ws")
	t.Setenv("INTERVIEWLY_NAME", "env-name")

	// Flags beat environment.
	cfg, err := LoadClient(ClientOptions{ServerURL: "ws://flag.example/ws", Name: "flag-name"})
	if err != nil {
		t.Fatalf("load client config: %v", err)
	}
	if cfg.ServerURL != "ws://flag.example/ws" || cfg.Name != "flag-name" {
		t.Fatalf("expected flag values to win, got %+v", cfg)
	}

	// Environment beats defaults.
	cfg, err = LoadClient(ClientOptions{})
	if err != nil {
		t.Fatalf("load client config: %v", err)
	}
	if cfg.ServerURL != "ws://env.example/ws" || cfg.Name != "env-name" {
		t.Fatalf("expected env values, got %+v", cfg)
	}
	if cfg.STUNServer != DefaultSTUN {
		t.Fatalf("expected default STUN, got %q", cfg.STUNServer)
	}
}

func TestClientTURNServers(t *testing.T) {
	cfg := &Client{}
	if got := cfg.GetTURNServers(); got != nil {
		t.Fatalf("expected nil without TURN config, got %v", got)
	}

	cfg.TURNServer = "turn:turn.example"
	got := cfg.GetTURNServers()
	if len(got) != 2 || !strings.HasPrefix(got[0], "turn:turn.example:3478") {
		t.Fatalf("unexpected TURN URLs: %v", got)
	}
}
