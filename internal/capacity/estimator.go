package capacity

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"

	"github.com/Morpher-io/uspd-website-sub000/internal/fixedpoint"
	"github.com/Morpher-io/uspd-website-sub000/internal/types"
)

// DefaultMaxHops bounds the unallocated-list walk. Capacity beyond the window
// is reported through Scan.Truncated rather than summed.
const DefaultMaxHops = 10

// Gateway is the subset of the chain data gateway the estimator reads.
type Gateway interface {
	LowestUnallocatedID(ctx context.Context, chainID uint64) (uint64, error)
	Position(ctx context.Context, chainID uint64, id uint64) (*types.ProviderPosition, error)
	StabilizerEscrowAddress(ctx context.Context, chainID uint64, id uint64) (common.Address, error)
	UnallocatedCollateral(ctx context.Context, chainID uint64, escrow common.Address) (*uint256.Int, error)
}

// Contribution is the principal a single provider can back.
type Contribution struct {
	ProviderID uint64
	Available  *uint256.Int
	Principal  *uint256.Int
}

// Scan is the price-independent outcome of one walk of the unallocated list.
type Scan struct {
	TotalPrincipalCapacity *uint256.Int
	Truncated              bool
	HopsVisited            int
	Contributions          []Contribution
}

type Estimator struct {
	gateway Gateway
	maxHops int
}

func NewEstimator(gateway Gateway, maxHops int) *Estimator {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	return &Estimator{gateway: gateway, maxHops: maxHops}
}

// Estimate walks the unallocated provider list and sums how much principal the
// providers' spare collateral can absorb. Any failed read aborts the walk; no
// partial sums are returned.
func (e *Estimator) Estimate(ctx context.Context, chainID uint64) (*Scan, error) {
	log := log.Ctx(ctx)

	currentID, err := e.gateway.LowestUnallocatedID(ctx, chainID)
	if err != nil {
		return nil, gatewayError(fmt.Errorf("failed to get lowest unallocated id: %w", err))
	}

	scan := &Scan{TotalPrincipalCapacity: new(uint256.Int)}

	for currentID != 0 && scan.HopsVisited < e.maxHops {
		scan.HopsVisited++

		position, err := e.gateway.Position(ctx, chainID, currentID)
		if err != nil {
			return nil, gatewayError(fmt.Errorf("failed to get position %d: %w", currentID, err))
		}
		if position == nil {
			return nil, types.NewGatewayUnavailableError(fmt.Errorf("empty position record for %d", currentID))
		}

		contribution, err := e.contribution(ctx, chainID, currentID, position)
		if err != nil {
			return nil, err
		}
		if contribution != nil {
			total, err := fixedpoint.CheckedAdd(scan.TotalPrincipalCapacity, contribution.Principal)
			if err != nil {
				return nil, fmt.Errorf("failed to accumulate capacity: %w", err)
			}
			scan.TotalPrincipalCapacity = total
			scan.Contributions = append(scan.Contributions, *contribution)
		}

		currentID = position.NextUnallocatedID
	}

	scan.Truncated = currentID != 0
	if scan.Truncated {
		log.Warn().
			Uint64("chain_id", chainID).
			Int("max_hops", e.maxHops).
			Uint64("next_id", currentID).
			Msg("unallocated list longer than scan window, capacity is a lower bound")
	}

	return scan, nil
}

// contribution returns nil when the provider is not eligible.
func (e *Estimator) contribution(
	ctx context.Context, chainID, id uint64, position *types.ProviderPosition,
) (*Contribution, error) {
	if position.MinCollateralRatioBps <= fixedpoint.BpsDenominator {
		return nil, nil
	}

	escrow, err := e.gateway.StabilizerEscrowAddress(ctx, chainID, id)
	if err != nil {
		return nil, gatewayError(fmt.Errorf("failed to get stabilizer escrow of %d: %w", id, err))
	}
	if escrow == (common.Address{}) {
		return nil, nil
	}

	available, err := e.gateway.UnallocatedCollateral(ctx, chainID, escrow)
	if err != nil {
		return nil, gatewayError(fmt.Errorf("failed to get unallocated collateral of %s: %w", escrow.Hex(), err))
	}
	if available == nil || available.IsZero() {
		return nil, nil
	}

	denominator := position.MinCollateralRatioBps - fixedpoint.BpsDenominator
	if denominator == 0 {
		return nil, nil
	}

	principal, err := fixedpoint.MulDiv(available, uint256.NewInt(fixedpoint.BpsDenominator), uint256.NewInt(denominator))
	if err != nil {
		return nil, fmt.Errorf("failed to compute contribution of %d: %w", id, err)
	}

	return &Contribution{ProviderID: id, Available: available, Principal: principal}, nil
}

// gatewayError keeps already-classified errors (e.g. InvalidChain) intact and
// classifies everything else as GatewayUnavailable.
func gatewayError(err error) error {
	var typed *types.Error
	if errors.As(err, &typed) {
		return err
	}
	return types.NewGatewayUnavailableError(err)
}
