package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration.
type Config struct {
	Discord  DiscordConfig  `mapstructure:"discord"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Filter   FilterConfig   `mapstructure:"filter"`
	API      APIConfig      `mapstructure:"api"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DiscordConfig holds the bot credentials.
type DiscordConfig struct {
	Token string `mapstructure:"token"`
}

// DatabaseConfig selects the config-record store.
type DatabaseConfig struct {
	URL          string `mapstructure:"url"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// RedisConfig configures the optional verdict audit stream.
type RedisConfig struct {
	URL    string `mapstructure:"url"`
	Stream string `mapstructure:"stream"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

var defaults = map[string]any{
	"database.max_open_conns":   10,
	"database.max_idle_conns":   5,
	"redis.stream":              "nameguard.verdicts",
	"filter.enabled":            true,
	"filter.appeal_contacts":    []string{},
	"filter.evaluation_timeout": 30 * time.Second,
	"api.enabled":               false,
	"api.addr":                  ":8080",
	"api.allowed_origins":       []string{},
	"api.rate_limit":            120,
	"logging.level":             "info",
	"logging.format":            "json",
	"logging.output":            "stdout",
	"logging.file_path":         "nameguard.log",
}

// Load reads configuration from path (optional) and the environment. Variables
// use the NAMEGUARD_ prefix with dots replaced by underscores; DISCORD_TOKEN,
// DATABASE_URL and MYSQL_DSN are honoured as fallbacks.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix("NAMEGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("discord.token", "NAMEGUARD_DISCORD_TOKEN", "DISCORD_TOKEN")
	_ = v.BindEnv("database.url", "NAMEGUARD_DATABASE_URL", "DATABASE_URL", "MYSQL_DSN")
	_ = v.BindEnv("redis.url", "NAMEGUARD_REDIS_URL", "REDIS_URL")
	_ = v.BindEnv("api.jwt_secret", "NAMEGUARD_API_JWT_SECRET", "JWT_SECRET")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: stat %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	cfg.Filter.AppealContacts = splitList(cfg.Filter.AppealContacts)
	cfg.API.AllowedOrigins = splitList(cfg.API.AllowedOrigins)

	return &cfg, nil
}

// Validate reports missing settings required by the enabled modules.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Database.URL) == "" {
		errs = append(errs, errors.New("database.url is not set"))
	}
	if c.Filter.Enabled && strings.TrimSpace(c.Discord.Token) == "" {
		errs = append(errs, errors.New("discord.token is required when filter.enabled is set"))
	}
	if c.API.Enabled && strings.TrimSpace(c.API.JWTSecret) == "" {
		errs = append(errs, errors.New("api.jwt_secret is required when api.enabled is set"))
	}
	return errors.Join(errs...)
}

// splitList flattens comma-separated entries, which is how list values arrive
// from environment variables and the settings table.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseBoolDefault(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
