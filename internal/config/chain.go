package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Morpher-io/uspd-website-sub000/pkg"
)

const (
	defaultChainTimeout  = 10 * time.Second
	defaultMaxRetryTimes = 3
	defaultRetryInterval = 500 * time.Millisecond
	defaultMaxHops       = 10
)

// ChainConfig defines how to reach one EVM chain and where the protocol
// contracts live on it.
type ChainConfig struct {
	ChainID       uint64          `mapstructure:"chain-id"`
	RPCURL        string          `mapstructure:"rpc-url"`
	Timeout       time.Duration   `mapstructure:"timeout"`
	MaxRetryTimes uint            `mapstructure:"max-retry-times"`
	RetryInterval time.Duration   `mapstructure:"retry-interval"`
	MaxHops       int             `mapstructure:"max-hops"`
	Contracts     ContractsConfig `mapstructure:"contracts"`
}

type ContractsConfig struct {
	StabilizerNFT string `mapstructure:"stabilizer-nft"`
	StETH         string `mapstructure:"steth"`
	CUSPD         string `mapstructure:"cuspd"`
	RateContract  string `mapstructure:"rate-contract"`
	Reporter      string `mapstructure:"reporter"`
}

func (cfg *ChainConfig) applyDefaults() {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultChainTimeout
	}
	if cfg.MaxRetryTimes == 0 {
		cfg.MaxRetryTimes = defaultMaxRetryTimes
	}
	if cfg.RetryInterval == 0 {
		cfg.RetryInterval = defaultRetryInterval
	}
	if cfg.MaxHops == 0 {
		cfg.MaxHops = defaultMaxHops
	}
}

func (cfg *ChainConfig) Validate() error {
	if cfg.ChainID == 0 {
		return errors.New("chain-id is required")
	}
	if cfg.RPCURL == "" {
		return errors.New("rpc-url is required")
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
	if cfg.MaxHops <= 0 {
		return errors.New("max-hops must be positive")
	}

	return cfg.Contracts.Validate()
}

func (cfg *ContractsConfig) Validate() error {
	contracts := map[string]string{
		"stabilizer-nft": cfg.StabilizerNFT,
		"steth":          cfg.StETH,
		"cuspd":          cfg.CUSPD,
		"rate-contract":  cfg.RateContract,
		"reporter":       cfg.Reporter,
	}
	for name, address := range contracts {
		if err := pkg.ValidateContractAddress(address); err != nil {
			return fmt.Errorf("invalid %s address: %w", name, err)
		}
	}

	return nil
}
