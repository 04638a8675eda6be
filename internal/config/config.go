// Package config loads runtime configuration from the environment.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings. Values come from environment
// variables, with defaults suitable for local development.
type Config struct {
	Addr        string
	WebDir      string
	Store       string // "memory" or "postgres"
	DatabaseURL string
	SessionTTL  time.Duration

	OpenAIAPIKey string
	OpenAIModel  string
	AITimeout    time.Duration

	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string
}

// Load reads configuration from the environment.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ADDR", ":8080")
	v.SetDefault("WEB_DIR", "web")
	v.SetDefault("STORE", "memory")
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("AI_TIMEOUT", "30s")

	return Config{
		Addr:        v.GetString("ADDR"),
		WebDir:      v.GetString("WEB_DIR"),
		Store:       v.GetString("STORE"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		SessionTTL:  v.GetDuration("SESSION_TTL"),

		OpenAIAPIKey: v.GetString("OPENAI_API_KEY"),
		OpenAIModel:  v.GetString("OPENAI_MODEL"),
		AITimeout:    v.GetDuration("AI_TIMEOUT"),

		OIDCIssuer:       v.GetString("OIDC_ISSUER"),
		OIDCClientID:     v.GetString("OIDC_CLIENT_ID"),
		OIDCClientSecret: v.GetString("OIDC_CLIENT_SECRET"),
		OIDCRedirectURL:  v.GetString("OIDC_REDIRECT_URL"),
	}
}

// SSOConfigured reports whether all OIDC settings are present.
func (c Config) SSOConfigured() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != "" && c.OIDCClientSecret != "" && c.OIDCRedirectURL != ""
}
