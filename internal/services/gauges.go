package services

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/Morpher-io/uspd-website-sub000/internal/fixedpoint"
)

// toFloat renders a fixed-point quantity for gauges. Precision loss is fine
// there and nowhere else.
func toFloat(x *uint256.Int, decimals uint) float64 {
	f := new(big.Float).SetInt(x.ToBig())
	if scale, err := fixedpoint.Pow10(decimals); err == nil && decimals > 0 {
		f.Quo(f, new(big.Float).SetInt(scale.ToBig()))
	}
	v, _ := f.Float64()
	return v
}

func wadToFloat(x *uint256.Int) float64 {
	return toFloat(x, fixedpoint.WadDecimals)
}
