package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Sternrassler/gh-rest-client/pkg/auth"
)

// clearEnv unsets every variable Load reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GITHUB_API_URL", "GITHUB_TOKEN", "GITHUB_USERNAME",
		"REDIS_URL", "PORT", "LOG_LEVEL", "GH_PROXY_BATCH_SIZE",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GitHub.APIURL != "https://api.github.com" {
		t.Errorf("APIURL = %q", cfg.GitHub.APIURL)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.BatchSize != 30 {
		t.Errorf("BatchSize = %d, want 30", cfg.Server.BatchSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
github:
  api_url: https://ghe.example.com/api/v3
  token: from-file
redis:
  url: redis://localhost:6379/2
  retention: 2h
server:
  port: 9090
  batch_size: 50
log:
  level: debug
  pretty: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.GitHub.APIURL != "https://ghe.example.com/api/v3" {
		t.Errorf("APIURL = %q", cfg.GitHub.APIURL)
	}
	if cfg.GitHub.Token != "from-file" {
		t.Errorf("Token = %q", cfg.GitHub.Token)
	}
	if cfg.Redis.URL != "redis://localhost:6379/2" {
		t.Errorf("Redis.URL = %q", cfg.Redis.URL)
	}
	if cfg.Redis.Retention != 2*time.Hour {
		t.Errorf("Retention = %v, want 2h", cfg.Redis.Retention)
	}
	if cfg.Server.Port != 9090 || cfg.Server.BatchSize != 50 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	// Unset keys keep their defaults.
	if cfg.Server.MaxLimit != 1000 {
		t.Errorf("MaxLimit = %d, want default 1000", cfg.Server.MaxLimit)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.Pretty {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
github:
  token: from-file
server:
  port: 9090
`)
	t.Setenv("GITHUB_TOKEN", "from-env")
	t.Setenv("PORT", "7070")
	t.Setenv("GH_PROXY_BATCH_SIZE", "100")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.GitHub.Token != "from-env" {
		t.Errorf("Token = %q, want from-env", cfg.GitHub.Token)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Server.BatchSize != 100 {
		t.Errorf("BatchSize = %d, want 100", cfg.Server.BatchSize)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Log.Level)
	}
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit file")
	}

	if _, err := Load(writeFile(t, "server: [not, a, map")); err == nil {
		t.Error("expected error for malformed YAML")
	}

	t.Setenv("PORT", "eighty")
	if _, err := Load(writeFile(t, "")); err == nil || !strings.Contains(err.Error(), "PORT") {
		t.Errorf("expected PORT parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "valid", modify: func(*Config) {}},
		{
			name:    "plain http api url",
			modify:  func(c *Config) { c.GitHub.APIURL = "http://api.github.com" },
			wantErr: "github.api_url",
		},
		{
			name:    "username without token",
			modify:  func(c *Config) { c.GitHub.Username = "octocat" },
			wantErr: "github.username",
		},
		{
			name:    "port out of range",
			modify:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "batch size too large",
			modify:  func(c *Config) { c.Server.BatchSize = 101 },
			wantErr: "server.batch_size",
		},
		{
			name:    "batch size zero",
			modify:  func(c *Config) { c.Server.BatchSize = 0 },
			wantErr: "server.batch_size",
		},
		{
			name:    "negative retention",
			modify:  func(c *Config) { c.Redis.Retention = -time.Second },
			wantErr: "redis.retention",
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReportsAll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 0
	cfg.Server.BatchSize = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"server.port", "server.batch_size"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestAuthStrategy(t *testing.T) {
	tests := []struct {
		name     string
		github   GitHubConfig
		expected auth.Strategy
	}{
		{name: "anonymous", github: GitHubConfig{}, expected: auth.None{}},
		{name: "token", github: GitHubConfig{Token: "abc"}, expected: auth.BearerToken{Token: "abc"}},
		{
			name:     "basic",
			github:   GitHubConfig{Username: "octocat", Token: "abc"},
			expected: auth.Basic{Username: "octocat", Secret: "abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.GitHub = tt.github

			if got := cfg.AuthStrategy(); got != tt.expected {
				t.Errorf("AuthStrategy() = %#v, want %#v", got, tt.expected)
			}
		})
	}
}
