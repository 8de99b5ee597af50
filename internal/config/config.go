package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the environment-provided defaults. Command-line flags override
// every field.
type Config struct {
	DBPath   string
	LogPath  string // default match log for serve/export
	LogLevel string
	Port     int
}

// Load builds a Config from environment variables.
func Load() Config {
	return Config{
		DBPath:   getEnv("CSMATCH_DB", filepath.Join(userHome(), ".csmatch", "matches.db")),
		LogPath:  os.Getenv("CSMATCH_LOG"),
		LogLevel: getEnv("CSMATCH_LOG_LEVEL", "info"),
		Port:     getEnvInt("PORT", 3001),
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
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
