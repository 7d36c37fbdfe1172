package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/fuad-daoud/discord-gateway/logger/dlog"
)

type Neo4j struct {
	URI      string `mapstructure:"uri"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

type Config struct {
	Token             string        `mapstructure:"token"`
	GatewayURL        string        `mapstructure:"gateway_url"`
	RestURL           string        `mapstructure:"rest_url"`
	LogLevel          string        `mapstructure:"log_level"`
	LogDir            string        `mapstructure:"log_dir"`
	ArchiveCron       string        `mapstructure:"archive_cron"`
	ReconnectBackoff  time.Duration `mapstructure:"reconnect_backoff"`
	ReconnectAttempts int           `mapstructure:"reconnect_attempts"`
	Neo4j             Neo4j         `mapstructure:"neo4j"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)
	v.SetConfigFile(fileName)

	v.SetDefault("gateway_url", "wss://gateway.discord.gg/?v=5&encoding=json")
	v.SetDefault("rest_url", "https://discordapp.com/api")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "logs")
	v.SetDefault("archive_cron", "@daily")
	v.SetDefault("reconnect_backoff", "2s")
	v.SetDefault("reconnect_attempts", 5)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// env vars and defaults still apply without a file
		dlog.Warn("Config file not found, using defaults", "file", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Token == "" {
		cfg.Token = os.Getenv("TOKEN")
	}
	return &cfg, nil
}
