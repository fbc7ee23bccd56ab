package services

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"golang.org/x/sync/errgroup"

	"github.com/Morpher-io/uspd-website-sub000/internal/cache"
	"github.com/Morpher-io/uspd-website-sub000/internal/fixedpoint"
	"github.com/Morpher-io/uspd-website-sub000/internal/observability/metrics"
	"github.com/Morpher-io/uspd-website-sub000/internal/ratio"
	"github.com/Morpher-io/uspd-website-sub000/internal/types"
)

// GetSystemRatio returns the collateralization ratio of the whole system on
// chainID.
func (s *Service) GetSystemRatio(ctx context.Context, chainID uint64) (types.RatioResult, error) {
	if !s.chain.SupportsChain(chainID) {
		return types.RatioResult{}, types.NewInvalidChainError(chainID)
	}

	fallbackKey := staleKey(chainID, opSystemRatio)

	result, err := s.computeSystemRatio(ctx, chainID)
	if err != nil {
		return fallbackToStale(ctx, s, fallbackKey, err, markRatioStale)
	}

	rememberForFallback(s, fallbackKey, result)
	return result, nil
}

func (s *Service) computeSystemRatio(ctx context.Context, chainID uint64) (types.RatioResult, error) {
	snapshot, err := cached(ctx, s, cache.NewKey(chainID, opSystemSnapshot), func(ctx context.Context) (*types.SystemSnapshot, error) {
		return s.readSystemSnapshot(ctx, chainID)
	})
	if err != nil {
		return types.RatioResult{}, fmt.Errorf("failed to read system snapshot: %w", err)
	}

	result, err := s.valueRatio(ctx, chainID, opSystemRatio, snapshot.Collateral, snapshot.LiabilityShares, snapshot.ConversionFactor)
	if err != nil {
		return types.RatioResult{}, err
	}

	if !result.IsInfinite() {
		metrics.RecordSystemRatio(chainID, toFloat(result.RatioBps, 0))
	}
	return result, nil
}

func (s *Service) readSystemSnapshot(ctx context.Context, chainID uint64) (*types.SystemSnapshot, error) {
	snapshot := &types.SystemSnapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.chain.SystemCollateral(gctx, chainID)
		if err != nil {
			return fmt.Errorf("failed to get system collateral: %w", err)
		}
		snapshot.Collateral = v
		return nil
	})
	g.Go(func() error {
		v, err := s.chain.TotalLiabilityShares(gctx, chainID)
		if err != nil {
			return fmt.Errorf("failed to get total liability shares: %w", err)
		}
		snapshot.LiabilityShares = v
		return nil
	})
	g.Go(func() error {
		v, err := s.chain.ConversionFactor(gctx, chainID)
		if err != nil {
			return fmt.Errorf("failed to get conversion factor: %w", err)
		}
		snapshot.ConversionFactor = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// GetPositionRatio returns the balances and the collateralization ratio of a
// single stabilizer position.
func (s *Service) GetPositionRatio(ctx context.Context, chainID, positionID uint64) (*types.PositionSummary, error) {
	if !s.chain.SupportsChain(chainID) {
		return nil, types.NewInvalidChainError(chainID)
	}

	fallbackKey := staleKey(chainID, opPositionRatio, positionID)

	summary, err := s.computePositionRatio(ctx, chainID, positionID)
	if err != nil {
		return fallbackToStale(ctx, s, fallbackKey, err, func(p *types.PositionSummary) *types.PositionSummary {
			stale := *p
			stale.Ratio = markRatioStale(p.Ratio)
			return &stale
		})
	}

	rememberForFallback(s, fallbackKey, summary)
	return summary, nil
}

func (s *Service) computePositionRatio(ctx context.Context, chainID, positionID uint64) (*types.PositionSummary, error) {
	snapshot, err := cached(ctx, s, cache.NewKey(chainID, opPositionSnapshot, positionID), func(ctx context.Context) (*types.PositionSnapshot, error) {
		return s.readPositionSnapshot(ctx, chainID, positionID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read position %d: %w", positionID, err)
	}

	result, err := s.valueRatio(
		ctx, chainID, opPositionRatio,
		snapshot.Balances.AllocatedCollateral, snapshot.Balances.BackedLiabilityShares, snapshot.ConversionFactor,
		positionID,
	)
	if err != nil {
		return nil, err
	}

	return &types.PositionSummary{
		PositionID:    snapshot.PositionID,
		EscrowAddress: snapshot.EscrowAddress,
		Balances:      snapshot.Balances,
		Ratio:         result,
	}, nil
}

func (s *Service) readPositionSnapshot(ctx context.Context, chainID, positionID uint64) (*types.PositionSnapshot, error) {
	escrow, err := s.chain.PositionEscrowAddress(ctx, chainID, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get position escrow: %w", err)
	}
	if escrow == (common.Address{}) {
		return nil, types.NewPositionNotFoundError(chainID, positionID)
	}

	snapshot := &types.PositionSnapshot{
		PositionID:    positionID,
		EscrowAddress: escrow,
		Balances:      types.EscrowBalances{UnallocatedCollateral: new(uint256.Int)},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.chain.CollateralBalance(gctx, chainID, escrow)
		if err != nil {
			return fmt.Errorf("failed to get allocated collateral: %w", err)
		}
		snapshot.Balances.AllocatedCollateral = v
		return nil
	})
	g.Go(func() error {
		v, err := s.chain.BackedLiabilityShares(gctx, chainID, escrow)
		if err != nil {
			return fmt.Errorf("failed to get backed liability shares: %w", err)
		}
		snapshot.Balances.BackedLiabilityShares = v
		return nil
	})
	g.Go(func() error {
		v, err := s.chain.ConversionFactor(gctx, chainID)
		if err != nil {
			return fmt.Errorf("failed to get conversion factor: %w", err)
		}
		snapshot.ConversionFactor = v
		return nil
	})
	g.Go(func() error {
		// the stabilizer escrow of the same token holds its spare collateral
		stabilizerEscrow, err := s.chain.StabilizerEscrowAddress(gctx, chainID, positionID)
		if err != nil {
			return fmt.Errorf("failed to get stabilizer escrow: %w", err)
		}
		if stabilizerEscrow == (common.Address{}) {
			return nil
		}
		v, err := s.chain.UnallocatedCollateral(gctx, chainID, stabilizerEscrow)
		if err != nil {
			return fmt.Errorf("failed to get unallocated collateral: %w", err)
		}
		snapshot.Balances.UnallocatedCollateral = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// valueRatio values collateral against liability. Shares are converted once
// here, and the oracle is only consulted when the converted liability is
// non-zero.
func (s *Service) valueRatio(
	ctx context.Context, chainID uint64, operation string,
	collateral, liabilityShares, conversionFactor *uint256.Int, params ...any,
) (types.RatioResult, error) {
	liability, err := fixedpoint.ApplyConversionFactor(liabilityShares, conversionFactor)
	if err != nil {
		return types.RatioResult{}, fmt.Errorf("failed to apply conversion factor: %w", err)
	}

	if liability.IsZero() {
		return ratio.CalculateFromValue(collateral, liability, nil)
	}

	price, err := s.oracle.FetchPrice(ctx)
	if err != nil {
		return types.RatioResult{}, fmt.Errorf("failed to fetch price: %w", err)
	}

	params = append(params, price.Timestamp, collateral.Dec(), liability.Dec())
	return cached(ctx, s, cache.NewKey(chainID, operation, params...), func(context.Context) (types.RatioResult, error) {
		return ratio.CalculateFromValue(collateral, liability, price)
	})
}

func markRatioStale(r types.RatioResult) types.RatioResult {
	r.Stale = true
	return r
}
