package types

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// PriceAttestation is a signed spot price as delivered by the price oracle.
// Freshness is the oracle client's concern.
type PriceAttestation struct {
	Price       *uint256.Int
	Decimals    uint8
	Timestamp   uint64
	AssetPairID common.Hash
	Signature   []byte
}

// ProviderPosition is the on-chain stabilizer record relevant to the
// unallocated list. NextUnallocatedID == 0 terminates the list.
type ProviderPosition struct {
	MinCollateralRatioBps uint64
	NextUnallocatedID     uint64
}

type EscrowBalances struct {
	UnallocatedCollateral *uint256.Int
	AllocatedCollateral   *uint256.Int
	BackedLiabilityShares *uint256.Int
}

// CapacityResult is replaced as a whole on recompute, never patched.
type CapacityResult struct {
	TotalPrincipalCapacity *uint256.Int
	PrincipalUsdEquivalent *uint256.Int
	Truncated              bool
	ComputedAt             time.Time
	Stale                  bool
}

// SystemSnapshot holds the price-independent inputs of the system ratio.
type SystemSnapshot struct {
	Collateral       *uint256.Int
	LiabilityShares  *uint256.Int
	ConversionFactor *uint256.Int
}

// PositionSnapshot holds the price-independent inputs of a single position ratio.
type PositionSnapshot struct {
	PositionID       uint64
	EscrowAddress    common.Address
	Balances         EscrowBalances
	ConversionFactor *uint256.Int
}

type PositionSummary struct {
	PositionID    uint64
	EscrowAddress common.Address
	Balances      EscrowBalances
	Ratio         RatioResult
}
