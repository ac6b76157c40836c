package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration for the storefront client.
type Config struct {
	// APIBaseURL is the root of the backend REST API, e.g.
	// "http://localhost:8080/api/v1".
	APIBaseURL string

	// RequestTimeout is the fixed per-call network timeout applied by the
	// gateway to every outbound request.
	RequestTimeout time.Duration

	// SessionDBPath is the SQLite file backing the persisted session token.
	// ":memory:" keeps it process-local.
	SessionDBPath string

	// DefaultPageLimit is the catalog page size used when the caller does
	// not specify one.
	DefaultPageLimit int

	// LoginPath is the client-side login entry point the gateway redirects
	// to after a 401.
	LoginPath string

	// AppPort is the listen address of the embedded stub API, demo only.
	AppPort string
}

// Load reads configuration from environment variables with sensible
// defaults, via Viper.
func Load() Config {
	viper.SetDefault("API_BASE_URL", "http://localhost:8080/api/v1")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")
	viper.SetDefault("SESSION_DB_PATH", "storefront-session.db")
	viper.SetDefault("DEFAULT_PAGE_LIMIT", 12)
	viper.SetDefault("LOGIN_PATH", "/login")
	viper.SetDefault("APP_PORT", ":8080")
	viper.AutomaticEnv() // Load environment variables

	return Config{
		APIBaseURL:       viper.GetString("API_BASE_URL"),
		RequestTimeout:   viper.GetDuration("REQUEST_TIMEOUT"),
		SessionDBPath:    viper.GetString("SESSION_DB_PATH"),
		DefaultPageLimit: viper.GetInt("DEFAULT_PAGE_LIMIT"),
		LoginPath:        viper.GetString("LOGIN_PATH"),
		AppPort:          viper.GetString("APP_PORT"),
	}
}
