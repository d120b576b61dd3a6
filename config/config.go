package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Stock    StockConfig
	Accounts AccountsConfig
	ErrorLog ErrorLogConfig
	Notify   NotifyConfig
}

type AppConfig struct {
	Name            string
	Env             string
	Port            string
	DefaultCurrency string
}

// DatabaseConfig selects the gorm dialector. Driver is one of postgres,
// mysql or sqlite.
type DatabaseConfig struct {
	Driver          string
	DSN             string
	LogLevel        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret     string
	SessionHours  int
	EncryptionKey string
	CookieSecure  bool
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

type HTTPConfig struct {
	CORSAllowOrigins []string
	SlowRequest      time.Duration
}

type StockConfig struct {
	DefaultWarehouse   string
	AllowNegativeStock bool
}

// AccountsConfig names the ledger accounts posted by invoices.
type AccountsConfig struct {
	Receivable string
	Income     string
}

type ErrorLogConfig struct {
	CleanupSchedule string
	RetentionDays   int
}

type NotifyConfig struct {
	SMSReceipts      bool
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "retail-backend")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.default_currency", "UGX")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("auth.session_hours", 24)
	v.SetDefault("auth.cookie_secure", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("http.cors_allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("http.slow_request", 200*time.Millisecond)

	v.SetDefault("stock.default_warehouse", "Stores")
	v.SetDefault("stock.allow_negative_stock", false)

	v.SetDefault("accounts.receivable", "Debtors")
	v.SetDefault("accounts.income", "Sales")

	v.SetDefault("error_log.cleanup_schedule", "@daily")
	v.SetDefault("error_log.retention_days", 30)

	v.SetDefault("notify.sms_receipts", false)
}

// Load reads config.toml (if any) and RETAIL_* environment variables.
// Environment wins over the file, the file wins over built-in defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/retail")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("RETAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:            v.GetString("app.name"),
			Env:             v.GetString("app.env"),
			Port:            v.GetString("app.port"),
			DefaultCurrency: v.GetString("app.default_currency"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			DSN:             v.GetString("database.dsn"),
			LogLevel:        v.GetString("database.log_level"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
		},
		Auth: AuthConfig{
			JWTSecret:     v.GetString("auth.jwt_secret"),
			SessionHours:  v.GetInt("auth.session_hours"),
			EncryptionKey: v.GetString("auth.encryption_key"),
			CookieSecure:  v.GetBool("auth.cookie_secure"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			SlowRequest:      v.GetDuration("http.slow_request"),
		},
		Stock: StockConfig{
			DefaultWarehouse:   v.GetString("stock.default_warehouse"),
			AllowNegativeStock: v.GetBool("stock.allow_negative_stock"),
		},
		Accounts: AccountsConfig{
			Receivable: v.GetString("accounts.receivable"),
			Income:     v.GetString("accounts.income"),
		},
		ErrorLog: ErrorLogConfig{
			CleanupSchedule: v.GetString("error_log.cleanup_schedule"),
			RetentionDays:   v.GetInt("error_log.retention_days"),
		},
		Notify: NotifyConfig{
			SMSReceipts:      v.GetBool("notify.sms_receipts"),
			TwilioAccountSID: v.GetString("notify.twilio_account_sid"),
			TwilioAuthToken:  v.GetString("notify.twilio_auth_token"),
			TwilioFrom:       v.GetString("notify.twilio_from"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that have no safe default.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.Auth.EncryptionKey == "" {
		return fmt.Errorf("auth.encryption_key is required")
	}
	if c.Notify.SMSReceipts && (c.Notify.TwilioAccountSID == "" || c.Notify.TwilioFrom == "") {
		return fmt.Errorf("notify.twilio_account_sid and notify.twilio_from are required when sms receipts are enabled")
	}
	return nil
}

// IsProduction reports whether the app runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// SessionTTL is the lifetime of a login session token.
func (a AuthConfig) SessionTTL() time.Duration {
	return time.Duration(a.SessionHours) * time.Hour
}

// Retention is how long error log rows are kept.
func (e ErrorLogConfig) Retention() time.Duration {
	return time.Duration(e.RetentionDays) * 24 * time.Hour
}
