package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	DBPath          string

	// AI rewriting collaborator. Empty provider disables it; the engine
	// runs rule-only.
	RewriterProvider string // "", "openai", or "anthropic"
	RewriteTimeout   time.Duration

	// OpenAI-compatible provider
	LLMURL   string // e.g. "http://localhost:1234"
	LLMModel string // e.g. "qwen3-8b"

	// Anthropic provider
	AnthropicAPIKey string
	AnthropicModel  string // empty selects the client default
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:    mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout:  mustGetDuration("SHUTDOWN_TIMEOUT"),
		DBPath:           getenvDefault("DB_PATH", "edulingua.db"),
		RewriterProvider: getenvDefault("REWRITER_PROVIDER", ""),
		RewriteTimeout:   getDurationDefault("REWRITE_TIMEOUT", 10*time.Second),
		LLMURL:           getenvDefault("LLM_URL", "http://localhost:1234"),
		LLMModel:         getenvDefault("LLM_MODEL", "qwen3-8b"),
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:   os.Getenv("ANTHROPIC_MODEL"),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}
