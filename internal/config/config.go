package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

const (
	BackendXLSX   = "xlsx"
	BackendSQLite = "sqlite"
)

type Config struct {
	Port                          string `mapstructure:"PORT"`
	LedgerBackend                 string `mapstructure:"LEDGER_BACKEND"`
	LedgerPath                    string `mapstructure:"LEDGER_PATH"`
	DatabasePath                  string `mapstructure:"DATABASE_PATH"`
	Currency                      string `mapstructure:"CURRENCY"`
	LogLevel                      string `mapstructure:"LOG_LEVEL"`
	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
}

// LoadConfig reads the environment. It does not validate, so callers can
// apply overrides first and then call Validate.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("LEDGER_BACKEND", BackendXLSX)
	v.SetDefault("LEDGER_PATH", "iftar_data.xlsx")
	v.SetDefault("DATABASE_PATH", "iftar.db")
	v.SetDefault("CURRENCY", "EGP")
	v.SetDefault("LOG_LEVEL", "info")

	v.BindEnv("DISCORD_BOT_TOKEN")
	v.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")

	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch c.LedgerBackend {
	case BackendXLSX, BackendSQLite:
	default:
		return fmt.Errorf("unknown ledger backend %q", c.LedgerBackend)
	}
	return nil
}

// SlogLevel maps LOG_LEVEL onto a slog level, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
