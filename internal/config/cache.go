package config

import (
	"errors"
	"time"
)

const (
	defaultCacheTTL = 30 * time.Second
	defaultStaleTTL = 10 * time.Minute
)

type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
	// StaleTTL is how long a last good result may be served when a
	// recomputation fails.
	StaleTTL time.Duration `mapstructure:"stale-ttl"`
}

func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		TTL:      defaultCacheTTL,
		StaleTTL: defaultStaleTTL,
	}
}

func (cfg *CacheConfig) Validate() error {
	if cfg.TTL <= 0 {
		return errors.New("ttl must be positive")
	}
	if cfg.StaleTTL < cfg.TTL {
		return errors.New("stale-ttl must not be shorter than ttl")
	}

	return nil
}
