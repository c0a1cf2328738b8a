package config

import (
	"strings"
	"time"
)

// FilterConfig holds impersonation filter configuration
type FilterConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// AppealContacts are named in the warning DM sent before a ban.
	AppealContacts    []string      `mapstructure:"appeal_contacts"`
	EvaluationTimeout time.Duration `mapstructure:"evaluation_timeout"`
}

// APIConfig holds admin API configuration
type APIConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	Addr           string   `mapstructure:"addr"`
	JWTSecret      string   `mapstructure:"jwt_secret"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// RateLimit is requests per minute per caller; 0 disables limiting.
	RateLimit int `mapstructure:"rate_limit"`
}

// SettingsSource exposes key/value settings persisted outside the config file.
type SettingsSource interface {
	Get(name string) string
}

// ApplySettings overlays database settings on top of file and environment
// values. Empty settings leave the current value untouched.
func (c *Config) ApplySettings(s SettingsSource) {
	if s == nil {
		return
	}

	if v := s.Get("discord_token"); v != "" {
		c.Discord.Token = v
	}
	if v := s.Get("redis_url"); v != "" {
		c.Redis.URL = v
	}
	if v := s.Get("redis_stream"); v != "" {
		c.Redis.Stream = v
	}
	if v := s.Get("filter_enabled"); v != "" {
		c.Filter.Enabled = parseBoolDefault(v, c.Filter.Enabled)
	}
	if v := s.Get("appeal_contacts"); v != "" {
		c.Filter.AppealContacts = splitList([]string{v})
	}
	if v := s.Get("evaluation_timeout"); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil && d > 0 {
			c.Filter.EvaluationTimeout = d
		}
	}
	if v := s.Get("api_enabled"); v != "" {
		c.API.Enabled = parseBoolDefault(v, c.API.Enabled)
	}
	if v := s.Get("api_jwt_secret"); v != "" {
		c.API.JWTSecret = v
	}
}
