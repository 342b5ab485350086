package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

type Config struct {
	HTTPAddr       string
	LogLevel       string
	RequestTimeout time.Duration
	JWKSURL        string
	JWKSRefresh    time.Duration
	OpenAI         OpenAIConfig
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

func Load() (Config, error) {
	var cfg Config

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	reqTimeout, err := parseDuration(getEnv("HTTP_CLIENT_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_CLIENT_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = reqTimeout

	cfg.JWKSURL = os.Getenv("CLERK_JWKS_URL")
	if cfg.JWKSURL == "" {
		return Config{}, errors.New("CLERK_JWKS_URL must be set")
	}

	jwksRefresh, err := parseDuration(getEnv("JWKS_REFRESH", "15m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JWKS_REFRESH: %w", err)
	}
	cfg.JWKSRefresh = jwksRefresh

	cfg.OpenAI = OpenAIConfig{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
		Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
	}

	return cfg, nil
}

func parseDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, fmt.Errorf("duration is empty")
	}
	return time.ParseDuration(value)
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}
