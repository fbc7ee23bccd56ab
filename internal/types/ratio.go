package types

import (
	"github.com/holiman/uint256"
)

type RiskTier string

const (
	TierDanger  RiskTier = "danger"
	TierCaution RiskTier = "caution"
	TierSafe    RiskTier = "safe"
	TierUnknown RiskTier = "unknown"
)

func (t RiskTier) String() string {
	return string(t)
}

const InfiniteRatioLabel = "infinite"

// InfiniteRatio is the reserved maximum value meaning "no liability".
var InfiniteRatio = new(uint256.Int).SetAllOne()

type RatioResult struct {
	RatioBps *uint256.Int
	Tier     RiskTier
	Stale    bool
}

func (r RatioResult) IsInfinite() bool {
	return r.RatioBps != nil && r.RatioBps.Eq(InfiniteRatio)
}

// RatioString renders the ratio for consumers that cannot hold 256-bit numbers.
func (r RatioResult) RatioString() string {
	if r.RatioBps == nil {
		return "0"
	}
	if r.IsInfinite() {
		return InfiniteRatioLabel
	}
	return r.RatioBps.Dec()
}
