package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	DefaultStorageKey = "buddys-treehouse-storage"
)

type Config struct {
	HTTPAddr      string        `env:"TREEHOUSE_HTTP_ADDR" envDefault:":8080"`
	StreamAddr    string        `env:"TREEHOUSE_STREAM_ADDR" envDefault:":8081"`
	Store         string        `env:"TREEHOUSE_STORE" envDefault:"sqlite"`
	SQLitePath    string        `env:"TREEHOUSE_SQLITE_PATH"`
	DBDSN         string        `env:"TREEHOUSE_DB_DSN"`
	MigrationsDir string        `env:"TREEHOUSE_MIGRATIONS_DIR"`
	StorageKey    string        `env:"TREEHOUSE_STORAGE_KEY" envDefault:"buddys-treehouse-storage"`
	TickInterval  time.Duration `env:"TREEHOUSE_TICK_INTERVAL" envDefault:"1m"`
	LogLevel      string        `env:"TREEHOUSE_LOG_LEVEL" envDefault:"info"`
	CORSOrigin    string        `env:"TREEHOUSE_CORS_ORIGIN" envDefault:"*"`
	// ServerURL is where buddyctl forwards actions while a server holds the
	// store. Empty derives it from HTTPAddr.
	ServerURL     string        `env:"TREEHOUSE_SERVER_URL"`
	LeaseWait     time.Duration `env:"TREEHOUSE_LEASE_WAIT" envDefault:"5s"`
}

// Load parses the environment and fills derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case StoreSQLite, StoreMemory:
	case StorePostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return fmt.Errorf("TREEHOUSE_DB_DSN is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.SQLitePath == "" {
		c.SQLitePath = DefaultSQLitePath()
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		c.StorageKey = DefaultStorageKey
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	if c.LeaseWait < 0 {
		return fmt.Errorf("lease wait must not be negative, got %s", c.LeaseWait)
	}
	return nil
}

// DefaultSQLitePath is ~/.treehouse.db, or a file in the working directory
// when no home directory is known.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".treehouse.db"
	}
	return filepath.Join(home, ".treehouse.db")
}

// ServerBaseURL resolves the API root of the server sharing this store.
func (c Config) ServerBaseURL() string {
	if u := strings.TrimSpace(c.ServerURL); u != "" {
		return strings.TrimRight(u, "/")
	}
	addr := strings.TrimSpace(c.HTTPAddr)
	if addr == "" {
		addr = ":8080"
	}
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	return "http://" + addr
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
