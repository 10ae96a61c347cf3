// Package config reads process configuration from the environment.
package config

import (
	"os"
	"strconv"
)

// Config is the full process configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// CombatTimerSec is the combat countdown length in seconds.
	CombatTimerSec int
	// RedisAddr enables the action historian when non-empty.
	RedisAddr string
	// DatabaseURL enables the match archive when non-empty.
	DatabaseURL string
}

// Load reads the environment, applying defaults for anything unset.
func Load() Config {
	return Config{
		Addr:           getenv("ADDR", ":8080"),
		CombatTimerSec: getenvInt("COMBAT_TIMER_SEC", 7),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
