// Package fixedpoint holds the exact integer arithmetic used for every
// money-like quantity. Nothing here touches floating point; products are
// formed with a 512-bit intermediate and any result that does not fit in 256
// bits is reported as an ArithmeticOverflow error.
package fixedpoint

import (
	"errors"
	"net/http"

	"github.com/holiman/uint256"

	"github.com/Morpher-io/uspd-website-sub000/internal/types"
)

const (
	// BpsDenominator is 100% expressed in basis points.
	BpsDenominator = 10_000
	// WadDecimals is the precision of native amounts and the conversion factor.
	WadDecimals = 18
	// maxPow10 is the largest power of ten that fits in 256 bits.
	maxPow10 = 77
)

var (
	errDivisionByZero = errors.New("division by zero")

	bpsDenominator = uint256.NewInt(BpsDenominator)
	wad            = mustPow10(WadDecimals)
)

// Pow10 returns 10^exp or an overflow error when exp > 77.
func Pow10(exp uint) (*uint256.Int, error) {
	if exp > maxPow10 {
		return nil, types.NewArithmeticOverflowError("10^exp")
	}
	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(exp))), nil
}

func mustPow10(exp uint) *uint256.Int {
	v, err := Pow10(exp)
	if err != nil {
		panic(err)
	}
	return v
}

// Wad returns 10^18 as a fresh value.
func Wad() *uint256.Int {
	return new(uint256.Int).Set(wad)
}

// MulDiv computes floor(x * y / d) with a 512-bit intermediate product.
// d must be non-zero.
func MulDiv(x, y, d *uint256.Int) (*uint256.Int, error) {
	if d.IsZero() {
		return nil, types.NewError(http.StatusInternalServerError, types.ArithmeticOverflow, errDivisionByZero)
	}
	z, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	if overflow {
		return nil, types.NewArithmeticOverflowError("mul-div")
	}
	return z, nil
}

// CheckedAdd returns x + y or an overflow error.
func CheckedAdd(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, types.NewArithmeticOverflowError("add")
	}
	return z, nil
}

// ScaleByBasisPoints returns floor(amount * bps / 10000). It never rounds up.
func ScaleByBasisPoints(amount *uint256.Int, bps uint64) (*uint256.Int, error) {
	return MulDiv(amount, uint256.NewInt(bps), bpsDenominator)
}

// ScaleByPrice converts a wad-denominated amount into outputDecimals units of
// the price's quote currency:
//
//	amount * price * 10^outputDecimals / (10^priceDecimals * 10^18)
//
// The whole expression is one multiply followed by one divide.
func ScaleByPrice(amount, price *uint256.Int, priceDecimals, outputDecimals uint8) (*uint256.Int, error) {
	outScale, err := Pow10(uint(outputDecimals))
	if err != nil {
		return nil, err
	}
	denominator, err := Pow10(uint(priceDecimals) + WadDecimals)
	if err != nil {
		return nil, err
	}

	factor, overflow := new(uint256.Int).MulOverflow(price, outScale)
	if overflow {
		return nil, types.NewArithmeticOverflowError("price scale")
	}

	return MulDiv(amount, factor, denominator)
}

// ApplyConversionFactor turns liability shares into liability value:
// floor(shares * factor / 10^18).
func ApplyConversionFactor(shares, factor *uint256.Int) (*uint256.Int, error) {
	return MulDiv(shares, factor, wad)
}
