package config

import (
	"errors"
	"net/url"
	"time"
)

const defaultOracleTimeout = 5 * time.Second

type OracleConfig struct {
	URL           string        `mapstructure:"url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *OracleConfig) Validate() error {
	if cfg.URL == "" {
		return errors.New("url is required")
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return errors.New("url is malformed")
	}
	if cfg.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if cfg.MaxRetryTimes == 0 {
		return errors.New("max-retry-times must be positive")
	}
	if cfg.RetryInterval <= 0 {
		return errors.New("retry-interval must be positive")
	}

	return nil
}
