package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	MCP       MCPConfig       `yaml:"mcp"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type StorageConfig struct {
	Driver   string         `yaml:"driver"`
	Path     string         `yaml:"path"`
	Slot     string         `yaml:"slot"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// CatalogConfig points at a program file. Empty Path means the built-in program.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DSN returns a PostgreSQL connection string.
func (d PostgresConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// SlogLevel maps log.level to a slog.Level.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
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

// Default returns the configuration used for keys a file leaves unset.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Host: "127.0.0.1", Port: 8080},
		Storage: StorageConfig{Driver: DriverSQLite, Path: "data/workouttracker.db", Slot: "workoutData"},
		Tailscale: TailscaleConfig{
			Hostname: "workouttracker",
			StateDir: "data/tsnet",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads config from a YAML file on top of Default, then applies
// environment variable overrides. An empty path skips the file.
// Env vars use the prefix WORKOUTTRACKER_ and underscore-separated paths:
//
//	WORKOUTTRACKER_SERVER_HOST, WORKOUTTRACKER_SERVER_PORT,
//	WORKOUTTRACKER_STORAGE_DRIVER, WORKOUTTRACKER_STORAGE_PATH, WORKOUTTRACKER_STORAGE_SLOT,
//	WORKOUTTRACKER_DB_HOST, WORKOUTTRACKER_DB_PORT, WORKOUTTRACKER_DB_NAME,
//	WORKOUTTRACKER_DB_USER, WORKOUTTRACKER_DB_PASSWORD, WORKOUTTRACKER_DB_SSLMODE,
//	WORKOUTTRACKER_CATALOG_PATH, WORKOUTTRACKER_TAILSCALE_ENABLED,
//	WORKOUTTRACKER_TAILSCALE_HOSTNAME, WORKOUTTRACKER_MCP_ENABLED,
//	WORKOUTTRACKER_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv("WORKOUTTRACKER_" + key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv("WORKOUTTRACKER_" + key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setBool := func(key string, dst *bool) {
		if v := os.Getenv("WORKOUTTRACKER_" + key); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}

	setString("SERVER_HOST", &cfg.Server.Host)
	setInt("SERVER_PORT", &cfg.Server.Port)
	setString("STORAGE_DRIVER", &cfg.Storage.Driver)
	setString("STORAGE_PATH", &cfg.Storage.Path)
	setString("STORAGE_SLOT", &cfg.Storage.Slot)
	setString("DB_HOST", &cfg.Storage.Postgres.Host)
	setInt("DB_PORT", &cfg.Storage.Postgres.Port)
	setString("DB_NAME", &cfg.Storage.Postgres.Name)
	setString("DB_USER", &cfg.Storage.Postgres.User)
	setString("DB_PASSWORD", &cfg.Storage.Postgres.Password)
	setString("DB_SSLMODE", &cfg.Storage.Postgres.SSLMode)
	setString("CATALOG_PATH", &cfg.Catalog.Path)
	setBool("TAILSCALE_ENABLED", &cfg.Tailscale.Enabled)
	setString("TAILSCALE_HOSTNAME", &cfg.Tailscale.Hostname)
	setBool("MCP_ENABLED", &cfg.MCP.Enabled)
	setString("LOG_LEVEL", &cfg.Log.Level)
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Storage.Slot == "" {
		return fmt.Errorf("storage.slot is required")
	}
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
	case DriverPostgres:
		p := c.Storage.Postgres
		if p.Host == "" {
			return fmt.Errorf("storage.postgres.host is required")
		}
		if p.Port == 0 {
			return fmt.Errorf("storage.postgres.port is required")
		}
		if p.Name == "" {
			return fmt.Errorf("storage.postgres.name is required")
		}
		if p.User == "" {
			return fmt.Errorf("storage.postgres.user is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("storage.driver %q is not one of sqlite, postgres, memory", c.Storage.Driver)
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
