// Package config loads lanternd's configuration.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all lanternd configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Site       SiteConfig       `yaml:"site"`
	ContentAPI ContentAPIConfig `yaml:"content_api"`
	Session    SessionConfig    `yaml:"session"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`

	// TemplateDir, when set, makes the server read templates from disk
	// and reload them when they change, instead of using the embedded
	// copies.
	TemplateDir string `yaml:"template_dir,omitempty"`
}

// SiteConfig configures what the site shows.
type SiteConfig struct {
	Name string `yaml:"name"`
}

// ContentAPIConfig configures the Content API client.
type ContentAPIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`

	// ContactEndpoint is where contact forms are posted.
	ContactEndpoint string `yaml:"contact_endpoint"`
}

// SessionConfig configures login sessions.
type SessionConfig struct {
	DatabasePath  string `yaml:"database_path"`
	TTL           string `yaml:"ttl"`
	SecureCookies bool   `yaml:"secure_cookies"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     "10s",
			WriteTimeout:    "30s",
			ShutdownTimeout: "15s",
		},
		Site: SiteConfig{
			Name: "Lantern Foundation",
		},
		ContentAPI: ContentAPIConfig{
			BaseURL:         "http://localhost:5000/api",
			Timeout:         "10s",
			ContactEndpoint: "/contact/messages",
		},
		Session: SessionConfig{
			DatabasePath: "lantern-sessions.db",
			TTL:          "24h",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file is not an
// error; the defaults are used instead. Environment variables override both.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Marshal returns the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("LANTERN_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if u := os.Getenv("LANTERN_CONTENT_API"); u != "" {
		c.ContentAPI.BaseURL = u
	}
	if path := os.Getenv("LANTERN_SESSION_DB"); path != "" {
		c.Session.DatabasePath = path
	}
	if level := os.Getenv("LANTERN_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if dir := os.Getenv("LANTERN_TEMPLATE_DIR"); dir != "" {
		c.Server.TemplateDir = dir
	}
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// GetReadTimeout returns the server's read timeout.
func (c *Config) GetReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, 10*time.Second)
}

// GetWriteTimeout returns the server's write timeout.
func (c *Config) GetWriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, 30*time.Second)
}

// GetShutdownTimeout returns how long a graceful shutdown may take.
func (c *Config) GetShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 15*time.Second)
}

// GetContentTimeout returns the timeout for each Content API request.
func (c *Config) GetContentTimeout() time.Duration {
	return parseDuration(c.ContentAPI.Timeout, 10*time.Second)
}

// GetSessionTTL returns how long a login session lasts.
func (c *Config) GetSessionTTL() time.Duration {
	return parseDuration(c.Session.TTL, 24*time.Hour)
}

// GetLogLevel returns the configured log level, defaulting to info.
func (c *Config) GetLogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ValidLogFormats lists the supported log formats.
var ValidLogFormats = []string{"text", "json"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server address not configured (set server.addr or LANTERN_ADDR)")
	}

	u, err := url.Parse(c.ContentAPI.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid content API URL: %q (set content_api.base_url or LANTERN_CONTENT_API)", c.ContentAPI.BaseURL)
	}

	if c.Session.DatabasePath == "" {
		return fmt.Errorf("session database path not configured (set session.database_path or LANTERN_SESSION_DB)")
	}

	validFormat := false
	for _, f := range ValidLogFormats {
		if strings.EqualFold(c.Logging.Format, f) {
			validFormat = true
			break
		}
	}
	if !validFormat {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, ValidLogFormats)
	}

	return nil
}
