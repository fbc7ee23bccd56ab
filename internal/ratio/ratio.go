package ratio

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/Morpher-io/uspd-website-sub000/internal/fixedpoint"
	"github.com/Morpher-io/uspd-website-sub000/internal/types"
)

const (
	SafeThresholdBps    = 15_000
	CautionThresholdBps = 13_000
)

// Calculate returns the collateralization ratio in basis points of collateral
// (wad native units) against the liability represented by shares, valued at
// the attested price.
func Calculate(
	collateral, liabilityShares, conversionFactor *uint256.Int, price *types.PriceAttestation,
) (types.RatioResult, error) {
	liabilityValue, err := fixedpoint.ApplyConversionFactor(liabilityShares, conversionFactor)
	if err != nil {
		return types.RatioResult{}, fmt.Errorf("failed to apply conversion factor: %w", err)
	}
	return CalculateFromValue(collateral, liabilityValue, price)
}

// CalculateFromValue is Calculate for a liability already converted from
// shares. price may be nil when the liability is zero.
func CalculateFromValue(
	collateral, liabilityValue *uint256.Int, price *types.PriceAttestation,
) (types.RatioResult, error) {
	if liabilityValue.IsZero() {
		if collateral.IsZero() {
			return types.RatioResult{RatioBps: new(uint256.Int), Tier: types.TierUnknown}, nil
		}
		return types.RatioResult{RatioBps: new(uint256.Int).Set(types.InfiniteRatio), Tier: types.TierUnknown}, nil
	}

	if price == nil || price.Price == nil {
		return types.RatioResult{}, types.NewPriceUnavailableError(fmt.Errorf("missing price attestation"))
	}

	collateralValue, err := fixedpoint.ScaleByPrice(collateral, price.Price, price.Decimals, fixedpoint.WadDecimals)
	if err != nil {
		return types.RatioResult{}, fmt.Errorf("failed to value collateral: %w", err)
	}

	ratioBps, err := fixedpoint.MulDiv(collateralValue, uint256.NewInt(fixedpoint.BpsDenominator), liabilityValue)
	if err != nil {
		return types.RatioResult{}, fmt.Errorf("failed to compute ratio: %w", err)
	}

	return types.RatioResult{RatioBps: ratioBps, Tier: Classify(ratioBps)}, nil
}

// Classify maps a ratio to its risk tier. The infinite sentinel and zero carry
// no signal.
func Classify(ratioBps *uint256.Int) types.RiskTier {
	switch {
	case ratioBps == nil, ratioBps.IsZero(), ratioBps.Eq(types.InfiniteRatio):
		return types.TierUnknown
	case ratioBps.CmpUint64(SafeThresholdBps) >= 0:
		return types.TierSafe
	case ratioBps.CmpUint64(CautionThresholdBps) >= 0:
		return types.TierCaution
	default:
		return types.TierDanger
	}
}
