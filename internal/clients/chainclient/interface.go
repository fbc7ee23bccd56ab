package chainclient

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/Morpher-io/uspd-website-sub000/internal/types"
)

// ChainInterface is the read-only view of on-chain protocol state. Every
// method fails with types.ErrInvalidChain for unconfigured chains and with
// types.ErrGatewayUnavailable for transport, timeout or decoding failures.
//
//go:generate mockery --name=ChainInterface --output=../../../tests/mocks --outpkg=mocks --filename=mock_chain_client.go
type ChainInterface interface {
	LowestUnallocatedID(ctx context.Context, chainID uint64) (uint64, error)
	Position(ctx context.Context, chainID uint64, id uint64) (*types.ProviderPosition, error)
	StabilizerEscrowAddress(ctx context.Context, chainID uint64, id uint64) (common.Address, error)
	UnallocatedCollateral(ctx context.Context, chainID uint64, escrow common.Address) (*uint256.Int, error)
	PositionEscrowAddress(ctx context.Context, chainID uint64, id uint64) (common.Address, error)
	CollateralBalance(ctx context.Context, chainID uint64, address common.Address) (*uint256.Int, error)
	BackedLiabilityShares(ctx context.Context, chainID uint64, positionEscrow common.Address) (*uint256.Int, error)
	ConversionFactor(ctx context.Context, chainID uint64) (*uint256.Int, error)
	SystemCollateral(ctx context.Context, chainID uint64) (*uint256.Int, error)
	TotalLiabilityShares(ctx context.Context, chainID uint64) (*uint256.Int, error)
	SupportsChain(chainID uint64) bool
}
