package config

import (
	"errors"
	"time"
)

type PollerConfig struct {
	// WarmInterval refreshes cached results of every chain in the background.
	// Zero disables the warmer.
	WarmInterval time.Duration `mapstructure:"warm-interval"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.WarmInterval < 0 {
		return errors.New("warm-interval must not be negative")
	}

	return nil
}
