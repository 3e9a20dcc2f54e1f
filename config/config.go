package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service settings read from the environment
type Config struct {
	Port              string
	GinMode           string
	DevMode           bool
	LogLevel          string
	OpenAIAPIKey      string
	LLMEndpoint       string
	LLMModel          string
	LLMTimeout        time.Duration
	GenerationRate    float64
	GenerationBurst   int
	ScoringPolicyPath string
	DataDir           string
}

// Load reads .env.development, then .env, then the process environment.
// Missing files are not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(".env.development"); err != nil {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Port:              getEnv("PORT", "5001"),
		GinMode:           getEnv("GIN_MODE", "release"),
		DevMode:           getEnvBool("DEV_MODE", false),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		LLMEndpoint:       getEnv("LLM_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
		LLMModel:          getEnv("LLM_MODEL", "gpt-3.5-turbo"),
		LLMTimeout:        time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 30)) * time.Second,
		GenerationRate:    getEnvFloat("GENERATION_RATE_PER_SECOND", 2),
		GenerationBurst:   getEnvInt("GENERATION_BURST", 5),
		ScoringPolicyPath: getEnv("SCORING_POLICY_PATH", ""),
		DataDir:           getEnv("DATA_DIR", "data"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProviderEnabled reports whether an API key for the generation provider is set
func (c *Config) ProviderEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// Validate checks the settings that have no safe fallback
func (c *Config) Validate() error {
	var errs []error

	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("PORT must be numeric, got %q", c.Port))
	}
	if c.LLMTimeout <= 0 {
		errs = append(errs, errors.New("LLM_TIMEOUT_SECONDS must be greater than 0"))
	}
	if c.GenerationRate <= 0 {
		errs = append(errs, errors.New("GENERATION_RATE_PER_SECOND must be greater than 0"))
	}
	if c.GenerationBurst <= 0 {
		errs = append(errs, errors.New("GENERATION_BURST must be greater than 0"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	value = strings.ToLower(strings.TrimSpace(value))
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return intVal
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatVal, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return defaultValue
	}
	return floatVal
}
