package fixedpoint

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Morpher-io/uspd-website-sub000/internal/types"
)

func wadUnits(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), Wad())
}

func TestScaleByBasisPoints(t *testing.T) {
	t.Run("floors", func(t *testing.T) {
		v, err := ScaleByBasisPoints(uint256.NewInt(19_999), 5_000)
		require.NoError(t, err)
		assert.Equal(t, uint64(9_999), v.Uint64())
	})
	t.Run("zero bps", func(t *testing.T) {
		v, err := ScaleByBasisPoints(wadUnits(5), 0)
		require.NoError(t, err)
		assert.True(t, v.IsZero())
	})
	t.Run("intermediate wider than 256 bits", func(t *testing.T) {
		max := new(uint256.Int).SetAllOne()
		v, err := ScaleByBasisPoints(max, 10_000)
		require.NoError(t, err)
		assert.True(t, v.Eq(max))
	})
	t.Run("result overflow", func(t *testing.T) {
		max := new(uint256.Int).SetAllOne()
		_, err := ScaleByBasisPoints(max, 20_000)
		require.ErrorIs(t, err, types.ErrArithmeticOverflow)
	})
}

func TestScaleByBasisPoints_RoundTrip(t *testing.T) {
	faker := gofakeit.New(7)
	// divisors of 10000 keep 10000*10000/bps exact
	divisors := []uint64{1, 2, 4, 5, 8, 10, 16, 20, 25, 40, 50, 80, 100, 125, 200, 250, 400, 500, 625, 1000, 1250, 2000, 2500, 5000, 10_000}

	for range 500 {
		bps := divisors[faker.Number(0, len(divisors)-1)]
		x := new(uint256.Int).Mul(uint256.NewInt(faker.Uint64()), uint256.NewInt(BpsDenominator))

		scaled, err := ScaleByBasisPoints(x, bps)
		require.NoError(t, err)
		back, err := ScaleByBasisPoints(scaled, BpsDenominator*BpsDenominator/bps)
		require.NoError(t, err)

		diff := new(uint256.Int)
		if back.Gt(x) {
			diff.Sub(back, x)
		} else {
			diff.Sub(x, back)
		}
		assert.True(t, diff.CmpUint64(1) <= 0, "x=%s bps=%d back=%s", x.Dec(), bps, back.Dec())
	}
}

func TestScaleByBasisPoints_NeverRoundsUp(t *testing.T) {
	faker := gofakeit.New(11)
	for range 500 {
		x := uint256.NewInt(faker.Uint64())
		bps := uint64(faker.Number(1, BpsDenominator))

		v, err := ScaleByBasisPoints(x, bps)
		require.NoError(t, err)

		// v * 10000 <= x * bps
		lhs := new(uint256.Int).Mul(v, uint256.NewInt(BpsDenominator))
		rhs := new(uint256.Int).Mul(x, uint256.NewInt(bps))
		assert.True(t, lhs.Cmp(rhs) <= 0)
	}
}

func TestScaleByPrice(t *testing.T) {
	t.Run("two units at 2000 usd", func(t *testing.T) {
		v, err := ScaleByPrice(wadUnits(2), uint256.NewInt(200_000_000_000), 8, 18)
		require.NoError(t, err)
		assert.Equal(t, "4000000000000000000000", v.Dec())
	})
	t.Run("output with fewer decimals", func(t *testing.T) {
		v, err := ScaleByPrice(wadUnits(2), uint256.NewInt(200_000_000_000), 8, 6)
		require.NoError(t, err)
		assert.Equal(t, "4000000000", v.Dec())
	})
	t.Run("multiply before divide keeps sub-unit precision", func(t *testing.T) {
		// 1 wei at $2000 is 2000 * 1e-18 usd, i.e. 2000 in 18 decimals
		v, err := ScaleByPrice(uint256.NewInt(1), uint256.NewInt(200_000_000_000), 8, 18)
		require.NoError(t, err)
		assert.Equal(t, uint64(2000), v.Uint64())
	})
	t.Run("decimals out of range", func(t *testing.T) {
		_, err := ScaleByPrice(wadUnits(1), uint256.NewInt(1), 70, 18)
		require.ErrorIs(t, err, types.ErrArithmeticOverflow)
	})
	t.Run("product overflow", func(t *testing.T) {
		max := new(uint256.Int).SetAllOne()
		_, err := ScaleByPrice(max, max, 8, 18)
		require.ErrorIs(t, err, types.ErrArithmeticOverflow)
	})
}

func TestApplyConversionFactor(t *testing.T) {
	factor, err := uint256.FromDecimal("1050000000000000000") // 1.05
	require.NoError(t, err)

	v, err := ApplyConversionFactor(wadUnits(100), factor)
	require.NoError(t, err)
	assert.Equal(t, "105000000000000000000", v.Dec())

	v, err = ApplyConversionFactor(uint256.NewInt(0), factor)
	require.NoError(t, err)
	assert.True(t, v.IsZero())
}

func TestCheckedAdd(t *testing.T) {
	v, err := CheckedAdd(uint256.NewInt(2), uint256.NewInt(3))
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v.Uint64())

	_, err = CheckedAdd(new(uint256.Int).SetAllOne(), uint256.NewInt(1))
	require.ErrorIs(t, err, types.ErrArithmeticOverflow)
}

func TestMulDiv_DivisionByZero(t *testing.T) {
	_, err := MulDiv(uint256.NewInt(1), uint256.NewInt(1), uint256.NewInt(0))
	require.ErrorIs(t, err, types.ErrArithmeticOverflow)
}

func TestPow10(t *testing.T) {
	v, err := Pow10(77)
	require.NoError(t, err)
	assert.Len(t, v.Dec(), 78)

	_, err = Pow10(78)
	require.ErrorIs(t, err, types.ErrArithmeticOverflow)
}
