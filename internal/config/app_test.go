package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-that-is-long-enough!")
	t.Setenv("OPENAI_API_KEY", "sk-test-key")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)
	for _, key := range []string{"PORT", "ALLOWED_ORIGINS", "DB_NAME", "JWT_TOKEN_EXPIRATION", "OPENAI_MODEL", "AI_REQUEST_TIMEOUT", "AI_SYSTEM_PROMPT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port '8080', got '%s'", cfg.Server.Port)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("Unexpected default origins: %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Database.Name != "todoapp" {
		t.Errorf("Expected default database name 'todoapp', got '%s'", cfg.Database.Name)
	}
	if cfg.Auth.TokenExpiration != 7*24*time.Hour {
		t.Errorf("Expected 7-day token expiration, got %v", cfg.Auth.TokenExpiration)
	}
	if cfg.AI.Model != "gpt-4o-mini" {
		t.Errorf("Expected default model 'gpt-4o-mini', got '%s'", cfg.AI.Model)
	}
	if cfg.AI.RequestTimeout != 30*time.Second {
		t.Errorf("Expected 30s request timeout, got %v", cfg.AI.RequestTimeout)
	}
	if cfg.AI.SystemPrompt == "" {
		t.Error("Expected a default system prompt")
	}
}

func TestLoadConfig_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected an error when JWT_SECRET is unset")
	}
}

func TestLoadConfig_ShortJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("Expected an error for a short JWT_SECRET")
	}
	if !strings.Contains(err.Error(), "at least 32 characters") {
		t.Errorf("Expected a length complaint, got: %v", err)
	}
}

func TestLoadConfig_MultipleOrigins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com ,")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := []string{"http://localhost:3000", "https://app.example.com"}
	if len(cfg.Server.AllowedOrigins) != len(want) {
		t.Fatalf("Expected %d origins, got %v", len(want), cfg.Server.AllowedOrigins)
	}
	for i := range want {
		if cfg.Server.AllowedOrigins[i] != want[i] {
			t.Errorf("Expected origin '%s', got '%s'", want[i], cfg.Server.AllowedOrigins[i])
		}
	}
}

func TestDefaultBaseURL(t *testing.T) {
	if got := defaultBaseURL("sk-or-v1-abcdef"); got != openRouterBaseURL {
		t.Errorf("Expected OpenRouter keys to route to OpenRouter, got '%s'", got)
	}
	if got := defaultBaseURL("sk-plain-key"); got != "https://api.openai.com/v1" {
		t.Errorf("Expected plain keys to route to OpenAI, got '%s'", got)
	}
}

func TestLoadConfig_BaseURLOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OPENAI_BASE_URL", "http://localhost:11434/v1")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.AI.BaseURL != "http://localhost:11434/v1" {
		t.Errorf("Expected the override to win, got '%s'", cfg.AI.BaseURL)
	}
}

func TestAIConfig_Configured(t *testing.T) {
	cfg := &AIConfig{}
	if cfg.Configured() {
		t.Error("Expected unconfigured without an API key")
	}
	cfg.APIKey = "sk-test"
	if !cfg.Configured() {
		t.Error("Expected configured with an API key")
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "secret",
		Name:     "todoapp",
		SSLMode:  "disable",
	}

	dsn := cfg.GetDSN()
	for _, part := range []string{"host=localhost", "port=5432", "user=postgres", "password=secret", "dbname=todoapp", "sslmode=disable"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("Expected DSN to contain '%s', got '%s'", part, dsn)
		}
	}
}

func TestGetEnvAsDuration_Invalid(t *testing.T) {
	t.Setenv("TEST_DURATION", "not-a-duration")

	if got := getEnvAsDuration("TEST_DURATION", time.Minute); got != time.Minute {
		t.Errorf("Expected the default on parse failure, got %v", got)
	}
}
