package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBPath      string
	Token       string
	OpenAIKey   string
	OpenAIBase  string
	OpenAIModel string
	Timezone    string
	CORSOrigins []string
}

func Load() (*Config, error) {
	// Missing .env is fine; real env vars win either way.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("MOOD_PORT", "8080"),
		DBPath:      getEnv("MOOD_DB_PATH", ""),
		Token:       getEnv("MOOD_TOKEN", ""),
		OpenAIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIBase:  getEnv("MOOD_OPENAI_BASE_URL", ""),
		OpenAIModel: getEnv("MOOD_OPENAI_MODEL", "gpt-4o-mini"),
		Timezone:    getEnv("MOOD_TIMEZONE", "Europe/London"),
	}

	for _, o := range strings.Split(getEnv("MOOD_CORS_ORIGINS", ""), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("MOOD_DB_PATH is required")
	}
	if c.Token == "" {
		return fmt.Errorf("MOOD_TOKEN is required")
	}
	return nil
}

// ValidToken checks a presented bearer token against the configured one.
func (c *Config) ValidToken(token string) bool {
	return c.Token != "" && token == c.Token
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
