package services

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/Morpher-io/uspd-website-sub000/internal/cache"
	"github.com/Morpher-io/uspd-website-sub000/internal/capacity"
	"github.com/Morpher-io/uspd-website-sub000/internal/fixedpoint"
	"github.com/Morpher-io/uspd-website-sub000/internal/observability/metrics"
	"github.com/Morpher-io/uspd-website-sub000/internal/types"
)

// GetMintableCapacity returns how much principal the unallocated providers of
// chainID can currently back, and its USD value at the latest oracle price.
func (s *Service) GetMintableCapacity(ctx context.Context, chainID uint64) (*types.CapacityResult, error) {
	if !s.chain.SupportsChain(chainID) {
		return nil, types.NewInvalidChainError(chainID)
	}

	fallbackKey := staleKey(chainID, opMintableCapacity)

	result, err := s.computeMintableCapacity(ctx, chainID)
	if err != nil {
		return fallbackToStale(ctx, s, fallbackKey, err, func(r *types.CapacityResult) *types.CapacityResult {
			stale := *r
			stale.Stale = true
			return &stale
		})
	}

	rememberForFallback(s, fallbackKey, result)
	return result, nil
}

func (s *Service) computeMintableCapacity(ctx context.Context, chainID uint64) (*types.CapacityResult, error) {
	scan, err := cached(ctx, s, cache.NewKey(chainID, opCapacityScan), func(ctx context.Context) (*capacity.Scan, error) {
		scan, err := s.estimator(chainID).Estimate(ctx, chainID)
		if err != nil {
			return nil, err
		}
		if scan.Truncated {
			metrics.IncTruncatedScan(chainID)
		}
		metrics.RecordMintableCapacity(chainID, wadToFloat(scan.TotalPrincipalCapacity))
		return scan, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate mintable capacity: %w", err)
	}

	// nothing to value, the oracle is not consulted
	if scan.TotalPrincipalCapacity.IsZero() {
		return &types.CapacityResult{
			TotalPrincipalCapacity: new(uint256.Int),
			PrincipalUsdEquivalent: new(uint256.Int),
			Truncated:              scan.Truncated,
			ComputedAt:             s.now(),
		}, nil
	}

	price, err := s.oracle.FetchPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price: %w", err)
	}

	key := cache.NewKey(chainID, opMintableCapacity, price.Timestamp, scan.TotalPrincipalCapacity.Dec())
	return cached(ctx, s, key, func(context.Context) (*types.CapacityResult, error) {
		usd, err := fixedpoint.ScaleByPrice(
			scan.TotalPrincipalCapacity, price.Price, price.Decimals, fixedpoint.WadDecimals,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to value mintable capacity: %w", err)
		}
		return &types.CapacityResult{
			TotalPrincipalCapacity: scan.TotalPrincipalCapacity,
			PrincipalUsdEquivalent: usd,
			Truncated:              scan.Truncated,
			ComputedAt:             s.now(),
		}, nil
	})
}
