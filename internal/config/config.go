package config

import (
	"time"

	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone  AuthMode = "none"  // No authentication required (default)
	AuthModeLocal AuthMode = "local" // Password gate with sessions
)

type (
	Config struct {
		HTTP
		Global
		Database
		Share
		Auth
		Audit
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Path     string
		SeedPath string // optional database file copied into place on first run
	}

	Share struct {
		BaseURL             string // public base URL the share links are built against
		DefaultValidityDays int
	}

	Auth struct {
		Mode            AuthMode
		Password        string // gate password, hashed with bcrypt on startup
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS
	}

	Audit struct {
		RetentionDays int    // Days to keep audit events
		SweepSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8501)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("seed_database_path", "")
	v.SetDefault("base_url", "http://localhost:8501")
	v.SetDefault("share_default_validity_days", DefaultShareValidityDays)
	v.SetDefault("auth_mode", string(AuthModeNone))
	v.SetDefault("auth_password", "")
	v.SetDefault("auth_session_secret", "")
	v.SetDefault("auth_session_lifetime", "168h") // 7 days
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_secure_cookies", true)
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_sweep_schedule", "0 3 * * *")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("port"),
			Host: v.GetString("host"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("shutdown_timeout_in_seconds"),
		},
		Database: Database{
			Path:     v.GetString("database_path"),
			SeedPath: v.GetString("seed_database_path"),
		},
		Share: Share{
			BaseURL:             v.GetString("base_url"),
			DefaultValidityDays: v.GetInt("share_default_validity_days"),
		},
		Auth: Auth{
			Mode:            AuthMode(v.GetString("auth_mode")),
			Password:        v.GetString("auth_password"),
			SessionSecret:   v.GetString("auth_session_secret"),
			SessionLifetime: v.GetDuration("auth_session_lifetime"),
			BcryptCost:      v.GetInt("auth_bcrypt_cost"),
			SecureCookies:   v.GetBool("auth_secure_cookies"),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("audit_retention_days"),
			SweepSchedule: v.GetString("audit_sweep_schedule"),
		},
	}
}
