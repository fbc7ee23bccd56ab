package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "USPD"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Chains  []ChainConfig `mapstructure:"chains"`
	Oracle  OracleConfig  `mapstructure:"oracle"`
	Poller  PollerConfig  `mapstructure:"poller"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Server.Validate(); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}

	if err := cfg.Cache.Validate(); err != nil {
		return fmt.Errorf("invalid cache config: %w", err)
	}

	if len(cfg.Chains) == 0 {
		return fmt.Errorf("at least one chain must be configured")
	}
	seen := make(map[uint64]bool, len(cfg.Chains))
	for i := range cfg.Chains {
		chain := &cfg.Chains[i]
		if err := chain.Validate(); err != nil {
			return fmt.Errorf("invalid chain config #%d: %w", i, err)
		}
		if seen[chain.ChainID] {
			return fmt.Errorf("chain %d configured twice", chain.ChainID)
		}
		seen[chain.ChainID] = true
	}

	if err := cfg.Oracle.Validate(); err != nil {
		return fmt.Errorf("invalid oracle config: %w", err)
	}

	if err := cfg.Poller.Validate(); err != nil {
		return fmt.Errorf("invalid poller config: %w", err)
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("invalid metrics config: %w", err)
	}

	return nil
}

// Chain returns the configuration of the given chain, if any.
func (cfg *Config) Chain(chainID uint64) (*ChainConfig, bool) {
	for i := range cfg.Chains {
		if cfg.Chains[i].ChainID == chainID {
			return &cfg.Chains[i], true
		}
	}
	return nil, false
}

// New loads the config file at cfgFile. Scalar keys can be overridden with
// USPD_ prefixed environment variables, e.g. USPD_ORACLE_URL.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	for i := range cfg.Chains {
		cfg.Chains[i].applyDefaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", defaultServerHost)
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.read-timeout", defaultServerTimeout)
	v.SetDefault("server.write-timeout", defaultServerTimeout)
	v.SetDefault("cache.ttl", defaultCacheTTL)
	v.SetDefault("cache.stale-ttl", defaultStaleTTL)
	v.SetDefault("oracle.timeout", defaultOracleTimeout)
	v.SetDefault("oracle.max-retry-times", defaultMaxRetryTimes)
	v.SetDefault("oracle.retry-interval", defaultRetryInterval)
	v.SetDefault("metrics.host", defaultMetricsHost)
	v.SetDefault("metrics.port", defaultMetricsPort)
}
