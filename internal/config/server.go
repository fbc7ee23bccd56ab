package config

import (
	"errors"
	"time"
)

const (
	defaultServerHost    = "0.0.0.0"
	defaultServerPort    = 8090
	defaultServerTimeout = 15 * time.Second
)

type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read-timeout"`
	WriteTimeout   time.Duration `mapstructure:"write-timeout"`
	AllowedOrigins []string      `mapstructure:"allowed-origins"`
}

func (cfg *ServerConfig) Validate() error {
	if cfg.Host == "" {
		return errors.New("host is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	if cfg.ReadTimeout <= 0 || cfg.WriteTimeout <= 0 {
		return errors.New("read-timeout and write-timeout must be positive")
	}

	return nil
}
