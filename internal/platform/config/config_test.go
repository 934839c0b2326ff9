package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port int `env:"TREEHOUSE_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TREEHOUSE_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.StreamAddr != ":8081" || cfg.Store != StoreSQLite {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.StorageKey != DefaultStorageKey || cfg.TickInterval != time.Minute || cfg.LeaseWait != 5*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !strings.HasSuffix(cfg.SQLitePath, ".treehouse.db") {
		t.Fatalf("unexpected sqlite path %q", cfg.SQLitePath)
	}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Fatalf("expected info level")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TREEHOUSE_STORE", " Memory ")
	t.Setenv("TREEHOUSE_TICK_INTERVAL", "250ms")
	t.Setenv("TREEHOUSE_LOG_LEVEL", "debug")
	t.Setenv("TREEHOUSE_SQLITE_PATH", "/tmp/x.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store != StoreMemory || cfg.TickInterval != 250*time.Millisecond || cfg.SQLitePath != "/tmp/x.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("expected debug level")
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown store":     {"TREEHOUSE_STORE": "redis"},
		"postgres w/o dsn":  {"TREEHOUSE_STORE": "postgres"},
		"negative interval": {"TREEHOUSE_TICK_INTERVAL": "-1s"},
		"bad duration":      {"TREEHOUSE_TICK_INTERVAL": "soon"},
		"negative wait":     {"TREEHOUSE_LEASE_WAIT": "-1s"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestServerBaseURL(t *testing.T) {
	cases := []struct {
		cfg  Config
		want string
	}{
		{Config{}, "http://127.0.0.1:8080"},
		{Config{HTTPAddr: ":9090"}, "http://127.0.0.1:9090"},
		{Config{HTTPAddr: "buddy.local:80"}, "http://buddy.local:80"},
		{Config{HTTPAddr: ":9090", ServerURL: "https://treehouse.example/"}, "https://treehouse.example"},
	}
	for _, tc := range cases {
		if got := tc.cfg.ServerBaseURL(); got != tc.want {
			t.Fatalf("ServerBaseURL(%+v) = %q, want %q", tc.cfg, got, tc.want)
		}
	}
}
