// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, duration parsing, and validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"

dispatch:
  default_provider: "anthropic"
  timeout: "45s"

providers:
  anthropic:
    enabled: true
    api_key: "ak-test"
    models:
      - "claude-x"
  openai:
    enabled: true
    api_key: "sk-test"
    models:
      - "gpt-x"
      - "gpt-y"

database:
  path: "./test.db"

logging:
  level: "debug"
  format: "json"

metrics:
  enabled: true
  path: "/metrics"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:8080" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "0.0.0.0:8080")
	}
	if cfg.Dispatch.DefaultProvider != "anthropic" {
		t.Errorf("Dispatch.DefaultProvider = %q, want %q", cfg.Dispatch.DefaultProvider, "anthropic")
	}
	if cfg.Dispatch.Timeout != 45*time.Second {
		t.Errorf("Dispatch.Timeout = %v, want %v", cfg.Dispatch.Timeout, 45*time.Second)
	}
	if !cfg.Providers.Anthropic.Enabled {
		t.Error("expected anthropic provider enabled")
	}
	if len(cfg.Providers.OpenAI.Models) != 2 {
		t.Errorf("expected 2 openai models, got %d", len(cfg.Providers.OpenAI.Models))
	}
	if cfg.Database.Path != "./test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "./test.db")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("unexpected metrics config: %+v", cfg.Metrics)
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("BEACON_TEST_API_KEY", "expanded-key")

	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"

providers:
  openai:
    enabled: true
    api_key: "${BEACON_TEST_API_KEY}"
    models: ["gpt-x"]

database:
  path: "./test.db"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Providers.OpenAI.APIKey != "expanded-key" {
		t.Errorf("APIKey = %q, want %q", cfg.Providers.OpenAI.APIKey, "expanded-key")
	}
}

func TestLoad_UnsetEnvVarExpandsToEmpty(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"

auth:
  jwt_secret: "${BEACON_DEFINITELY_UNSET_VAR}"

database:
  path: "./test.db"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Auth.JWTSecret != "" {
		t.Errorf("JWTSecret = %q, want empty", cfg.Auth.JWTSecret)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, "server: [not: valid")

	_, err := Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"

dispatch:
  timeout: "not-a-duration"

database:
  path: "./test.db"
`)

	_, err := Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "parsing durations") {
		t.Errorf("expected duration error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{HTTPAddr: "0.0.0.0:8080"},
			Database: DatabaseConfig{Path: "./test.db"},
		}
	}

	t.Run("requires http_addr", func(t *testing.T) {
		cfg := base()
		cfg.Server.HTTPAddr = ""
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for missing http_addr")
		}
	})

	t.Run("requires database path", func(t *testing.T) {
		cfg := base()
		cfg.Database.Path = ""
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for missing database path")
		}
	})

	t.Run("requires jwt secret when auth required", func(t *testing.T) {
		cfg := base()
		cfg.Auth.RequireAuth = true
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for missing jwt secret")
		}
		cfg.Auth.JWTSecret = "secret"
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("default provider must be enabled", func(t *testing.T) {
		cfg := base()
		cfg.Dispatch.DefaultProvider = "openai"
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for disabled default provider")
		}
		cfg.Providers.OpenAI = ProviderConfig{Enabled: true, APIKey: "k", Models: []string{"gpt-x"}}
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("enabled provider needs models", func(t *testing.T) {
		cfg := base()
		cfg.Providers.Google = ProviderConfig{Enabled: true, APIKey: "k"}
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for enabled provider without models")
		}
	})
}
