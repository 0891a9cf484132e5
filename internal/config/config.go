package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	SheetsURL      string
	SheetsMode     string
	MaxRetries     int
	RetryDelay     time.Duration
	ResetDelay     time.Duration
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8081"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,https://dillkhus.github.io")),
		SheetsURL:      getEnv("SHEETS_URL", ""),
		SheetsMode:     getEnv("SHEETS_MODE", "opaque"),
		MaxRetries:     getEnvInt("SUBMIT_MAX_RETRIES", 3),
		RetryDelay:     time.Duration(getEnvInt("SUBMIT_RETRY_DELAY_MS", 1000)) * time.Millisecond,
		ResetDelay:     time.Duration(getEnvInt("RESET_DELAY_SECONDS", 5)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
