package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config contains all runtime settings for the task-capture bot.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string

	AllowAnyOrigin bool

	LINEChannelSecret string
	LINEChannelToken  string
	LINEAPIBaseURL    string
	AdminUserID       string

	ClassifierMode    string
	ClassifierHTTPURL string
	ClassifierAPIKey  string
	ClassifierModel   string
	ClassifierTimeout time.Duration

	PrincipalAliases []string
	DelegateAliases  []string

	DatabaseURL string
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:          envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace:  envOrDefault("APP_METRICS_NAMESPACE", "taskbot"),
		AllowAnyOrigin:    false,
		LINEChannelSecret: envTrimmed("LINE_CHANNEL_SECRET"),
		LINEChannelToken:  envTrimmed("LINE_CHANNEL_TOKEN"),
		LINEAPIBaseURL:    envOrDefault("LINE_API_BASE_URL", "https://api.line.me"),
		AdminUserID:       envTrimmed("LINE_ADMIN_USER_ID"),
		ClassifierMode:    envOrDefault("CLASSIFIER_MODE", "auto"),
		ClassifierHTTPURL: envTrimmed("CLASSIFIER_HTTP_URL"),
		ClassifierAPIKey:  envTrimmed("CLASSIFIER_API_KEY"),
		ClassifierModel:   envOrDefault("CLASSIFIER_MODEL", "gpt-4o-mini"),
		ClassifierTimeout: 60 * time.Second,
		PrincipalAliases:  listFromEnv("PRINCIPAL_ALIASES"),
		DelegateAliases:   listFromEnv("DELEGATE_ALIASES"),
		DatabaseURL:       envTrimmed("DATABASE_URL"),
		ShutdownTimeout:   15 * time.Second,
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.ClassifierTimeout, err = durationFromEnv("CLASSIFIER_TIMEOUT", cfg.ClassifierTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}

	if cfg.ShutdownTimeout < time.Second {
		return Config{}, fmt.Errorf("APP_SHUTDOWN_TIMEOUT must be at least 1s")
	}
	if cfg.ClassifierTimeout < time.Second {
		return Config{}, fmt.Errorf("CLASSIFIER_TIMEOUT must be at least 1s")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// listFromEnv splits a comma-separated env value, dropping empty entries.
func listFromEnv(key string) []string {
	raw := envTrimmed(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(envTrimmed(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
