package capacity

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Morpher-io/uspd-website-sub000/internal/fixedpoint"
	"github.com/Morpher-io/uspd-website-sub000/internal/types"
	"github.com/Morpher-io/uspd-website-sub000/tests/mocks"
)

const chainID = 1

func wadUnits(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), fixedpoint.Wad())
}

func escrowOf(id uint64) common.Address {
	return common.BigToAddress(new(uint256.Int).SetUint64(0xE5C0<<16 | id).ToBig())
}

// provider registers the reads the estimator makes for one eligible provider.
func provider(gw *mocks.ChainInterface, id, ratioBps, next uint64, available *uint256.Int) {
	gw.On("Position", mock.Anything, uint64(chainID), id).
		Return(&types.ProviderPosition{MinCollateralRatioBps: ratioBps, NextUnallocatedID: next}, nil).Once()
	gw.On("StabilizerEscrowAddress", mock.Anything, uint64(chainID), id).Return(escrowOf(id), nil).Once()
	gw.On("UnallocatedCollateral", mock.Anything, uint64(chainID), escrowOf(id)).Return(available, nil).Once()
}

func TestEstimate_SingleProvider(t *testing.T) {
	gw := mocks.NewChainInterface(t)
	gw.On("LowestUnallocatedID", mock.Anything, uint64(chainID)).Return(uint64(1), nil).Once()
	provider(gw, 1, 15_000, 0, wadUnits(1))

	scan, err := NewEstimator(gw, DefaultMaxHops).Estimate(t.Context(), chainID)
	require.NoError(t, err)
	assert.Equal(t, "2000000000000000000", scan.TotalPrincipalCapacity.Dec())
	assert.False(t, scan.Truncated)
	assert.Equal(t, 1, scan.HopsVisited)
	require.Len(t, scan.Contributions, 1)
	assert.Equal(t, uint64(1), scan.Contributions[0].ProviderID)
}

func TestEstimate_SumsProviders(t *testing.T) {
	gw := mocks.NewChainInterface(t)
	gw.On("LowestUnallocatedID", mock.Anything, uint64(chainID)).Return(uint64(4), nil).Once()
	provider(gw, 4, 15_000, 9, wadUnits(1))        // 2 units
	provider(gw, 9, 20_000, 12, wadUnits(3))       // 3 units
	provider(gw, 12, 11_000, 0, uint256.NewInt(7)) // 70 wei

	scan, err := NewEstimator(gw, DefaultMaxHops).Estimate(t.Context(), chainID)
	require.NoError(t, err)
	assert.Equal(t, "5000000000000000070", scan.TotalPrincipalCapacity.Dec())
	assert.Equal(t, 3, scan.HopsVisited)
	assert.False(t, scan.Truncated)
}

func TestEstimate_EmptyList(t *testing.T) {
	gw := mocks.NewChainInterface(t)
	gw.On("LowestUnallocatedID", mock.Anything, uint64(chainID)).Return(uint64(0), nil).Once()

	scan, err := NewEstimator(gw, DefaultMaxHops).Estimate(t.Context(), chainID)
	require.NoError(t, err)
	assert.True(t, scan.TotalPrincipalCapacity.IsZero())
	assert.False(t, scan.Truncated)
	assert.Zero(t, scan.HopsVisited)
}

func TestEstimate_IneligibleProviders(t *testing.T) {
	t.Run("ratio of exactly 100% contributes nothing", func(t *testing.T) {
		gw := mocks.NewChainInterface(t)
		gw.On("LowestUnallocatedID", mock.Anything, uint64(chainID)).Return(uint64(1), nil).Once()
		gw.On("Position", mock.Anything, uint64(chainID), uint64(1)).
			Return(&types.ProviderPosition{MinCollateralRatioBps: 10_000, NextUnallocatedID: 0}, nil).Once()

		scan, err := NewEstimator(gw, DefaultMaxHops).Estimate(t.Context(), chainID)
		require.NoError(t, err)
		assert.True(t, scan.TotalPrincipalCapacity.IsZero())
		assert.Empty(t, scan.Contributions)
		gw.AssertNotCalled(t, "StabilizerEscrowAddress", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero escrow address is skipped", func(t *testing.T) {
		gw := mocks.NewChainInterface(t)
		gw.On("LowestUnallocatedID", mock.Anything, uint64(chainID)).Return(uint64(1), nil).Once()
		gw.On("Position", mock.Anything, uint64(chainID), uint64(1)).
			Return(&types.ProviderPosition{MinCollateralRatioBps: 15_000, NextUnallocatedID: 2}, nil).Once()
		gw.On("StabilizerEscrowAddress", mock.Anything, uint64(chainID), uint64(1)).Return(common.Address{}, nil).Once()
		provider(gw, 2, 15_000, 0, wadUnits(1))

		scan, err := NewEstimator(gw, DefaultMaxHops).Estimate(t.Context(), chainID)
		require.NoError(t, err)
		assert.Equal(t, "2000000000000000000", scan.TotalPrincipalCapacity.Dec())
		assert.Equal(t, 2, scan.HopsVisited)
	})

	t.Run("zero available collateral is skipped", func(t *testing.T) {
		gw := mocks.NewChainInterface(t)
		gw.On("LowestUnallocatedID", mock.Anything, uint64(chainID)).Return(uint64(1), nil).Once()
		provider(gw, 1, 15_000, 0, uint256.NewInt(0))

		scan, err := NewEstimator(gw, DefaultMaxHops).Estimate(t.Context(), chainID)
		require.NoError(t, err)
		assert.True(t, scan.TotalPrincipalCapacity.IsZero())
		assert.Empty(t, scan.Contributions)
	})
}

func TestEstimate_CycleStopsAtMaxHops(t *testing.T) {
	gw := mocks.NewChainInterface(t)
	gw.On("LowestUnallocatedID", mock.Anything, uint64(chainID)).Return(uint64(1), nil).Once()
	gw.On("Position", mock.Anything, uint64(chainID), uint64(1)).
		Return(&types.ProviderPosition{MinCollateralRatioBps: 15_000, NextUnallocatedID: 2}, nil).Times(5)
	gw.On("Position", mock.Anything, uint64(chainID), uint64(2)).
		Return(&types.ProviderPosition{MinCollateralRatioBps: 15_000, NextUnallocatedID: 1}, nil).Times(5)
	gw.On("StabilizerEscrowAddress", mock.Anything, uint64(chainID), mock.Anything).Return(escrowOf(1), nil).Times(10)
	gw.On("UnallocatedCollateral", mock.Anything, uint64(chainID), escrowOf(1)).Return(wadUnits(1), nil).Times(10)

	scan, err := NewEstimator(gw, DefaultMaxHops).Estimate(t.Context(), chainID)
	require.NoError(t, err)
	assert.True(t, scan.Truncated)
	assert.Equal(t, DefaultMaxHops, scan.HopsVisited)
	gw.AssertNumberOfCalls(t, "Position", DefaultMaxHops)
	// the cycle is counted once per visit, the estimate is only a bounded window
	assert.Equal(t, "20000000000000000000", scan.TotalPrincipalCapacity.Dec())
}

func TestEstimate_ListEndingOnLastHopIsNotTruncated(t *testing.T) {
	const maxHops = 3
	gw := mocks.NewChainInterface(t)
	gw.On("LowestUnallocatedID", mock.Anything, uint64(chainID)).Return(uint64(1), nil).Once()
	provider(gw, 1, 15_000, 2, wadUnits(1))
	provider(gw, 2, 15_000, 3, wadUnits(1))
	provider(gw, 3, 15_000, 0, wadUnits(1))

	scan, err := NewEstimator(gw, maxHops).Estimate(t.Context(), chainID)
	require.NoError(t, err)
	assert.False(t, scan.Truncated)
	assert.Equal(t, maxHops, scan.HopsVisited)
}

func TestEstimate_Failures(t *testing.T) {
	t.Run("failure mid walk returns no partial sum", func(t *testing.T) {
		gw := mocks.NewChainInterface(t)
		gw.On("LowestUnallocatedID", mock.Anything, uint64(chainID)).Return(uint64(1), nil).Once()
		provider(gw, 1, 15_000, 2, wadUnits(1))
		gw.On("Position", mock.Anything, uint64(chainID), uint64(2)).Return(nil, errors.New("i/o timeout")).Once()

		scan, err := NewEstimator(gw, DefaultMaxHops).Estimate(t.Context(), chainID)
		require.ErrorIs(t, err, types.ErrGatewayUnavailable)
		assert.Nil(t, scan)
		assert.Contains(t, err.Error(), "position 2")
	})

	t.Run("balance read failure", func(t *testing.T) {
		gw := mocks.NewChainInterface(t)
		gw.On("LowestUnallocatedID", mock.Anything, uint64(chainID)).Return(uint64(1), nil).Once()
		gw.On("Position", mock.Anything, uint64(chainID), uint64(1)).
			Return(&types.ProviderPosition{MinCollateralRatioBps: 15_000}, nil).Once()
		gw.On("StabilizerEscrowAddress", mock.Anything, uint64(chainID), uint64(1)).Return(escrowOf(1), nil).Once()
		gw.On("UnallocatedCollateral", mock.Anything, uint64(chainID), escrowOf(1)).
			Return(nil, errors.New("execution reverted")).Once()

		_, err := NewEstimator(gw, DefaultMaxHops).Estimate(t.Context(), chainID)
		require.ErrorIs(t, err, types.ErrGatewayUnavailable)
	})

	t.Run("invalid chain is passed through", func(t *testing.T) {
		gw := mocks.NewChainInterface(t)
		gw.On("LowestUnallocatedID", mock.Anything, uint64(chainID)).Return(uint64(0), types.NewInvalidChainError(chainID)).Once()

		_, err := NewEstimator(gw, DefaultMaxHops).Estimate(t.Context(), chainID)
		require.ErrorIs(t, err, types.ErrInvalidChain)
		assert.NotErrorIs(t, err, types.ErrGatewayUnavailable)
	})

	t.Run("accumulation overflow", func(t *testing.T) {
		gw := mocks.NewChainInterface(t)
		huge := new(uint256.Int).SetAllOne()
		gw.On("LowestUnallocatedID", mock.Anything, uint64(chainID)).Return(uint64(1), nil).Once()
		// 200% ratio: contribution equals available
		provider(gw, 1, 20_000, 2, huge)
		provider(gw, 2, 20_000, 0, huge)

		_, err := NewEstimator(gw, DefaultMaxHops).Estimate(t.Context(), chainID)
		require.ErrorIs(t, err, types.ErrArithmeticOverflow)
	})
}

func TestNewEstimator_DefaultsMaxHops(t *testing.T) {
	e := NewEstimator(nil, 0)
	assert.Equal(t, DefaultMaxHops, e.maxHops)
}
