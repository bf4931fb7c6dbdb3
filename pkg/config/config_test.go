package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"savings-finder/pkg/config"
)

func TestLoadServerConfigDefaults(t *testing.T) {
	cfg := config.LoadServerConfig()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 30, cfg.AdjustmentWindowDays)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.CouponFile)
}

func TestLoadServerConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ADJUSTMENT_WINDOW_DAYS", "45")
	t.Setenv("COUPON_FILE", "/etc/coupons.json")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := config.LoadServerConfig()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 45, cfg.AdjustmentWindowDays)
	assert.Equal(t, "/etc/coupons.json", cfg.CouponFile)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadServerConfigIgnoresGarbage(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("ADJUSTMENT_WINDOW_DAYS", "-3")

	cfg := config.LoadServerConfig()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 30, cfg.AdjustmentWindowDays)
}
