package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fieldops.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeFile(t, `
backend:
  base_url: https://api.example.com/v1
  timeout: 5s
session:
  secret: file-secret-0123456789
listing:
  cache_ttl: 1m
  page_window: 3
`)

	cfg, err := Load(path, env(map[string]string{
		"APP_PORT":               "9090",
		"FIELDOPS_SESSION_STORE": "mysql",
		"MYSQL_DSN":              "user:pass@tcp(db:3306)/dash?parseTime=true",
	}))

	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Addr)
	require.Equal(t, "https://api.example.com/v1", cfg.Backend.BaseURL)
	require.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	require.Equal(t, time.Minute, cfg.Listing.CacheTTL)
	require.Equal(t, 3, cfg.Listing.PageWindow)
	require.Equal(t, StoreMySQL, cfg.Session.Store)
	require.Equal(t, 3*time.Second, cfg.Listing.WaitTimeout)
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", env(map[string]string{"FIELDOPS_SESSION_SECRET": "0123456789abcdef"}))

	require.NoError(t, err)
	require.Equal(t, Default().HTTP.Addr, cfg.HTTP.Addr)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), env(nil))

	require.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"short secret":    {"FIELDOPS_SESSION_SECRET": "short"},
		"unknown store":   {"FIELDOPS_SESSION_SECRET": "0123456789abcdef", "FIELDOPS_SESSION_STORE": "redis"},
		"mysql no dsn":    {"FIELDOPS_SESSION_SECRET": "0123456789abcdef", "FIELDOPS_SESSION_STORE": "mysql"},
		"bad backend url": {"FIELDOPS_SESSION_SECRET": "0123456789abcdef", "FIELDOPS_BACKEND_URL": "not a url"},
		"bad log level":   {"FIELDOPS_SESSION_SECRET": "0123456789abcdef", "FIELDOPS_LOG_LEVEL": "loud"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "http:\n  addr: \":8080\"\n")
			_, err := Load(path, env(vars))

			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeFile(t, "http: [")

	_, err := Load(path, env(nil))

	require.ErrorContains(t, err, "parse")
}
