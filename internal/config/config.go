// Package config loads the gh-proxy service configuration.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags (applied by the caller)
//  2. Environment variables
//  3. YAML configuration file
//  4. Built-in defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/gh-rest-client/pkg/auth"
	"github.com/Sternrassler/gh-rest-client/pkg/client"
	"github.com/Sternrassler/gh-rest-client/pkg/logging"
	"gopkg.in/yaml.v3"
)

// Config is the complete gh-proxy configuration.
type Config struct {
	GitHub GitHubConfig `yaml:"github"`
	Redis  RedisConfig  `yaml:"redis"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// GitHubConfig selects the API endpoint and credentials.
type GitHubConfig struct {
	APIURL string `yaml:"api_url"`
	Token  string `yaml:"token"`
	// Username switches to basic authentication with Token as the secret.
	Username string `yaml:"username"`
}

// RedisConfig enables the conditional request cache when URL is set.
type RedisConfig struct {
	// URL is either redis://host:port/db or a bare host:port.
	URL       string        `yaml:"url"`
	Retention time.Duration `yaml:"retention"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port      int `yaml:"port"`
	BatchSize int `yaml:"batch_size"`
	// MaxLimit caps the limit query parameter of list endpoints.
	MaxLimit int `yaml:"max_limit"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIURL: client.DefaultBaseURL,
		},
		Server: ServerConfig{
			Port:      8080,
			BatchSize: 30,
			MaxLimit:  1000,
		},
		Log: LogConfig{
			Level: string(logging.LevelInfo),
		},
	}
}

// Load reads configuration from path, or from the first existing default
// location when path is empty, then applies environment overrides. A missing
// default file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	} else {
		for _, candidate := range defaultPaths() {
			if _, err := os.Stat(candidate); err == nil {
				if err := loadFile(candidate, cfg); err != nil {
					return nil, err
				}
				break
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultPaths() []string {
	paths := []string{".gh-proxy.yaml", ".gh-proxy.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "gh-proxy", "config.yaml"),
			filepath.Join(home, ".config", "gh-proxy", "config.yml"),
		)
	}
	return paths
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("GITHUB_API_URL"); v != "" {
		cfg.GitHub.APIURL = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHub.Token = v
	}
	if v := os.Getenv("GITHUB_USERNAME"); v != "" {
		cfg.GitHub.Username = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("GH_PROXY_BATCH_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GH_PROXY_BATCH_SIZE: %w", err)
		}
		cfg.Server.BatchSize = size
	}
	return nil
}

// Validate reports every invalid value at once.
func (c *Config) Validate() error {
	var errs []error

	if !strings.HasPrefix(c.GitHub.APIURL, "https://") {
		errs = append(errs, fmt.Errorf("github.api_url must start with https:// (got %q)", c.GitHub.APIURL))
	}
	if c.GitHub.Username != "" && c.GitHub.Token == "" {
		errs = append(errs, errors.New("github.username requires github.token"))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}
	if err := client.ValidatePerPage(c.Server.BatchSize); err != nil {
		errs = append(errs, fmt.Errorf("server.batch_size: %w", err))
	}
	if c.Server.MaxLimit < 1 {
		errs = append(errs, fmt.Errorf("server.max_limit must be positive (got %d)", c.Server.MaxLimit))
	}
	if c.Redis.Retention < 0 {
		errs = append(errs, fmt.Errorf("redis.retention must not be negative (got %s)", c.Redis.Retention))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

// AuthStrategy maps the credentials to a client authentication strategy:
// username and token select Basic, a token alone BearerToken, nothing None.
func (c *Config) AuthStrategy() auth.Strategy {
	switch {
	case c.GitHub.Username != "" && c.GitHub.Token != "":
		return auth.Basic{Username: c.GitHub.Username, Secret: c.GitHub.Token}
	case c.GitHub.Token != "":
		return auth.BearerToken{Token: c.GitHub.Token}
	default:
		return auth.None{}
	}
}
