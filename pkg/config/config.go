package config

import (
	"os"
	"strconv"
	"time"
)

// ServerConfig carries the refund-service settings, loaded from env.
type ServerConfig struct {
	Port                 int
	ReadTimeout          time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	CouponFile           string // JSON coupon feed; empty means built-in samples
	AdjustmentWindowDays int
	LogLevel             string
}

// LoadServerConfig reads settings from env, falling back to defaults for
// anything unset or unparseable.
func LoadServerConfig() ServerConfig {
	cfg := ServerConfig{
		Port:                 8080,
		ReadTimeout:          10 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		AdjustmentWindowDays: 30,
		LogLevel:             "info",
	}

	if v, err := strconv.Atoi(os.Getenv("PORT")); err == nil && v > 0 {
		cfg.Port = v
	}
	if v := os.Getenv("COUPON_FILE"); v != "" {
		cfg.CouponFile = v
	}
	if v, err := strconv.Atoi(os.Getenv("ADJUSTMENT_WINDOW_DAYS")); err == nil && v > 0 {
		cfg.AdjustmentWindowDays = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}
