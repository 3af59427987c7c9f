package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Backend BackendConfig `yaml:"backend"`
	Session SessionConfig `yaml:"session"`
	Listing ListingConfig `yaml:"listing"`
	Log     LogConfig     `yaml:"log"`
}

type HTTPConfig struct {
	Addr         string        `yaml:"addr" validate:"required"`
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gt=0"`
}

type BackendConfig struct {
	BaseURL   string        `yaml:"base_url" validate:"required,url"`
	Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
	JWTSecret string        `yaml:"jwt_secret"`
}

const (
	StoreMemory   = "memory"
	StoreMySQL    = "mysql"
	StorePostgres = "postgres"
)

type SessionConfig struct {
	CookieName   string        `yaml:"cookie_name" validate:"required"`
	TTL          time.Duration `yaml:"ttl" validate:"gt=0"`
	Secret       string        `yaml:"secret" validate:"required,min=16"`
	Store        string        `yaml:"store" validate:"oneof=memory mysql postgres"`
	MySQLDSN     string        `yaml:"mysql_dsn" validate:"required_if=Store mysql"`
	PostgresDSN  string        `yaml:"postgres_dsn" validate:"required_if=Store postgres"`
	SecureCookie bool          `yaml:"secure_cookie"`
}

type ListingConfig struct {
	CacheTTL    time.Duration `yaml:"cache_ttl" validate:"gte=0"`
	WaitTimeout time.Duration `yaml:"wait_timeout" validate:"gt=0"`
	IdleTimeout time.Duration `yaml:"idle_timeout" validate:"gt=0"`
	PageWindow  int           `yaml:"page_window" validate:"gte=1,lte=5"`
}

type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Backend: BackendConfig{
			BaseURL: "http://localhost:3000/api",
			Timeout: 15 * time.Second,
		},
		Session: SessionConfig{
			CookieName: "fieldops_session",
			TTL:        12 * time.Hour,
			Store:      StoreMemory,
		},
		Listing: ListingConfig{
			CacheTTL:    30 * time.Second,
			WaitTimeout: 3 * time.Second,
			IdleTimeout: 30 * time.Minute,
			PageWindow:  2,
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath is read when no --config flag is given and the file exists.
const DefaultPath = "fieldops.yaml"

// Load reads path (or DefaultPath when it exists), applies environment
// overrides and validates the result.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	applyEnv(&cfg, getenv)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	if port := getenv("APP_PORT"); port != "" {
		cfg.HTTP.Addr = ":" + strings.TrimPrefix(port, ":")
	}
	set(&cfg.Backend.BaseURL, "FIELDOPS_BACKEND_URL")
	set(&cfg.Backend.JWTSecret, "FIELDOPS_BACKEND_JWT_SECRET")
	set(&cfg.Session.Secret, "FIELDOPS_SESSION_SECRET")
	set(&cfg.Session.Store, "FIELDOPS_SESSION_STORE")
	set(&cfg.Session.MySQLDSN, "MYSQL_DSN")
	set(&cfg.Session.PostgresDSN, "PG_DSN")
	set(&cfg.Log.Level, "FIELDOPS_LOG_LEVEL")
}

func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
