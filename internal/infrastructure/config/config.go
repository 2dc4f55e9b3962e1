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
	Log      LogConfig
	HTTP     HTTPConfig
	Shop     ShopConfig
	Locale   LocaleConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds the embedded SQLite store settings
type DatabaseConfig struct {
	Path            string // database file, or ":memory:" for ephemeral runs
	BusyTimeout     time.Duration
	MaxOpenConns    int
	ConnMaxLifetime int // in minutes
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	TrustedProxies []string
}

// ShopConfig identifies the shop instance. The code is the scope every
// document counter is keyed under; the key space supports multiple shops
// even though one deployment runs with a single fixed value.
type ShopConfig struct {
	Code string
	Name string
}

// LocaleConfig holds the calendar rules for document numbering. The UTC
// offset is configuration, not a hard-coded literal, so the numbering engine
// works outside one locale without code changes.
type LocaleConfig struct {
	UTCOffsetMinutes     int
	FiscalYearStartMonth int // 1-12
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with POS_ prefix (e.g., POS_DATABASE_PATH)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("POS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Path:            v.GetString("database.path"),
			BusyTimeout:     v.GetDuration("database.busy_timeout"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
			TrustedProxies: v.GetStringSlice("http.trusted_proxies"),
		},
		Shop: ShopConfig{
			Code: v.GetString("shop.code"),
			Name: v.GetString("shop.name"),
		},
		Locale: LocaleConfig{
			UTCOffsetMinutes:     v.GetInt("locale.utc_offset_minutes"),
			FiscalYearStartMonth: v.GetInt("locale.fiscal_year_start_month"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers built-in defaults
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "pos-backend")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("database.path", "pos.db")
	v.SetDefault("database.busy_timeout", 5*time.Second)
	v.SetDefault("database.max_open_conns", 1)
	v.SetDefault("database.conn_max_lifetime", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.max_header_bytes", 1<<20)

	v.SetDefault("shop.code", "main")
	v.SetDefault("shop.name", "Main Counter")

	// UTC+5:30, fiscal year April through March
	v.SetDefault("locale.utc_offset_minutes", 330)
	v.SetDefault("locale.fiscal_year_start_month", 4)
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path cannot be empty")
	}
	if c.Shop.Code == "" {
		return fmt.Errorf("shop.code cannot be empty")
	}
	if c.Locale.FiscalYearStartMonth < 1 || c.Locale.FiscalYearStartMonth > 12 {
		return fmt.Errorf("locale.fiscal_year_start_month must be 1-12, got %d", c.Locale.FiscalYearStartMonth)
	}
	if c.Locale.UTCOffsetMinutes < -12*60 || c.Locale.UTCOffsetMinutes > 14*60 {
		return fmt.Errorf("locale.utc_offset_minutes out of range: %d", c.Locale.UTCOffsetMinutes)
	}
	return nil
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
