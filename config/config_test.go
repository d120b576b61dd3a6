package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("RETAIL_DATABASE_DRIVER", "sqlite")
	t.Setenv("RETAIL_DATABASE_DSN", "file:retail.db")
	t.Setenv("RETAIL_AUTH_JWT_SECRET", "jwt-secret")
	t.Setenv("RETAIL_AUTH_ENCRYPTION_KEY", "enc-key")
	t.Setenv("RETAIL_APP_DEFAULT_CURRENCY", "KES")
	t.Setenv("RETAIL_STOCK_ALLOW_NEGATIVE_STOCK", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:retail.db", cfg.Database.DSN)
	assert.Equal(t, "KES", cfg.App.DefaultCurrency)
	assert.True(t, cfg.Stock.AllowNegativeStock)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "Stores", cfg.Stock.DefaultWarehouse)
	assert.Equal(t, "Debtors", cfg.Accounts.Receivable)
	assert.Equal(t, "@daily", cfg.ErrorLog.CleanupSchedule)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL())
	assert.Equal(t, 30*24*time.Hour, cfg.ErrorLog.Retention())
	assert.Equal(t, 200*time.Millisecond, cfg.HTTP.SlowRequest)
	assert.False(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: "postgres", DSN: "host=localhost"},
			Auth:     AuthConfig{JWTSecret: "s", EncryptionKey: "k"},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, `unsupported database driver "oracle"`},
		{"no dsn", func(c *Config) { c.Database.DSN = "" }, "database.dsn is required"},
		{"no jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }, "auth.jwt_secret is required"},
		{"no encryption key", func(c *Config) { c.Auth.EncryptionKey = "" }, "auth.encryption_key is required"},
		{"sms without twilio", func(c *Config) { c.Notify.SMSReceipts = true }, "notify.twilio_account_sid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("DEBUG").String())
	assert.Equal(t, "warn", parseLevel("warning").String())
	assert.Equal(t, "info", parseLevel("").String())
}
