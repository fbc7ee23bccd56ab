package chainclient

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/Morpher-io/uspd-website-sub000/internal/observability/metrics"
	"github.com/Morpher-io/uspd-website-sub000/internal/types"
)

type chainClientWithMetrics struct {
	chain ChainInterface
}

func NewChainClientWithMetrics(chain ChainInterface) *chainClientWithMetrics {
	return &chainClientWithMetrics{chain: chain}
}

func (c *chainClientWithMetrics) LowestUnallocatedID(ctx context.Context, chainID uint64) (uint64, error) {
	return runChainClientMethodWithMetrics(chainID, "LowestUnallocatedID", func() (uint64, error) {
		return c.chain.LowestUnallocatedID(ctx, chainID)
	})
}

func (c *chainClientWithMetrics) Position(ctx context.Context, chainID uint64, id uint64) (*types.ProviderPosition, error) {
	return runChainClientMethodWithMetrics(chainID, "Position", func() (*types.ProviderPosition, error) {
		return c.chain.Position(ctx, chainID, id)
	})
}

func (c *chainClientWithMetrics) StabilizerEscrowAddress(ctx context.Context, chainID uint64, id uint64) (common.Address, error) {
	return runChainClientMethodWithMetrics(chainID, "StabilizerEscrowAddress", func() (common.Address, error) {
		return c.chain.StabilizerEscrowAddress(ctx, chainID, id)
	})
}

func (c *chainClientWithMetrics) UnallocatedCollateral(ctx context.Context, chainID uint64, escrow common.Address) (*uint256.Int, error) {
	return runChainClientMethodWithMetrics(chainID, "UnallocatedCollateral", func() (*uint256.Int, error) {
		return c.chain.UnallocatedCollateral(ctx, chainID, escrow)
	})
}

func (c *chainClientWithMetrics) PositionEscrowAddress(ctx context.Context, chainID uint64, id uint64) (common.Address, error) {
	return runChainClientMethodWithMetrics(chainID, "PositionEscrowAddress", func() (common.Address, error) {
		return c.chain.PositionEscrowAddress(ctx, chainID, id)
	})
}

func (c *chainClientWithMetrics) CollateralBalance(ctx context.Context, chainID uint64, address common.Address) (*uint256.Int, error) {
	return runChainClientMethodWithMetrics(chainID, "CollateralBalance", func() (*uint256.Int, error) {
		return c.chain.CollateralBalance(ctx, chainID, address)
	})
}

func (c *chainClientWithMetrics) BackedLiabilityShares(ctx context.Context, chainID uint64, positionEscrow common.Address) (*uint256.Int, error) {
	return runChainClientMethodWithMetrics(chainID, "BackedLiabilityShares", func() (*uint256.Int, error) {
		return c.chain.BackedLiabilityShares(ctx, chainID, positionEscrow)
	})
}

func (c *chainClientWithMetrics) ConversionFactor(ctx context.Context, chainID uint64) (*uint256.Int, error) {
	return runChainClientMethodWithMetrics(chainID, "ConversionFactor", func() (*uint256.Int, error) {
		return c.chain.ConversionFactor(ctx, chainID)
	})
}

func (c *chainClientWithMetrics) SystemCollateral(ctx context.Context, chainID uint64) (*uint256.Int, error) {
	return runChainClientMethodWithMetrics(chainID, "SystemCollateral", func() (*uint256.Int, error) {
		return c.chain.SystemCollateral(ctx, chainID)
	})
}

func (c *chainClientWithMetrics) TotalLiabilityShares(ctx context.Context, chainID uint64) (*uint256.Int, error) {
	return runChainClientMethodWithMetrics(chainID, "TotalLiabilityShares", func() (*uint256.Int, error) {
		return c.chain.TotalLiabilityShares(ctx, chainID)
	})
}

func (c *chainClientWithMetrics) SupportsChain(chainID uint64) bool {
	// not an rpc call, nothing to measure
	return c.chain.SupportsChain(chainID)
}

func runChainClientMethodWithMetrics[T any](chainID uint64, method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordChainClientLatency(duration, chainID, method, err != nil)
	return v, err
}
