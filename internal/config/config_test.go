package config

import "testing"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MOOD_DB_PATH", "/tmp/mood.db")
	t.Setenv("MOOD_TOKEN", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("expected default model, got %s", cfg.OpenAIModel)
	}
	if cfg.Timezone != "Europe/London" {
		t.Errorf("expected default timezone, got %s", cfg.Timezone)
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Errorf("expected no CORS origins by default, got %v", cfg.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MOOD_PORT", "9090")
	t.Setenv("MOOD_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("expected trimmed origin list, got %v", cfg.CORSOrigins)
	}
}

func TestLoadRequiresDBPath(t *testing.T) {
	t.Setenv("MOOD_DB_PATH", "")
	t.Setenv("MOOD_TOKEN", "secret")

	if _, err := Load(); err == nil {
		t.Error("expected error without MOOD_DB_PATH")
	}
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("MOOD_DB_PATH", "/tmp/mood.db")
	t.Setenv("MOOD_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Error("expected error without MOOD_TOKEN")
	}
}

func TestValidToken(t *testing.T) {
	cfg := &Config{Token: "secret"}

	if !cfg.ValidToken("secret") {
		t.Error("expected matching token to be valid")
	}
	if cfg.ValidToken("wrong") {
		t.Error("expected mismatched token to be invalid")
	}

	empty := &Config{}
	if empty.ValidToken("") {
		t.Error("expected empty configured token to reject everything")
	}
}
