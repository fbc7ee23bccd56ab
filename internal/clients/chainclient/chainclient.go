package chainclient

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"

	"github.com/Morpher-io/uspd-website-sub000/internal/config"
	"github.com/Morpher-io/uspd-website-sub000/internal/types"
)

// ContractCaller is the part of the Ethereum RPC the gateway needs.
// *ethclient.Client satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

type contracts struct {
	stabilizerNFT common.Address
	stETH         common.Address
	cUSPD         common.Address
	rateContract  common.Address
	reporter      common.Address
}

type chainBackend struct {
	caller    ContractCaller
	cfg       *config.ChainConfig
	contracts contracts
}

// ChainClient reads protocol state from every configured EVM chain.
type ChainClient struct {
	chains map[uint64]*chainBackend
}

// NewChainClient dials every configured chain.
func NewChainClient(cfgs []config.ChainConfig) (*ChainClient, error) {
	callers := make(map[uint64]ContractCaller, len(cfgs))
	for i := range cfgs {
		client, err := ethclient.Dial(cfgs[i].RPCURL)
		if err != nil {
			return nil, fmt.Errorf("failed to dial chain %d: %w", cfgs[i].ChainID, err)
		}
		callers[cfgs[i].ChainID] = client
	}

	return NewChainClientWithCallers(cfgs, callers)
}

// NewChainClientWithCallers builds a client over already established callers,
// one per configured chain.
func NewChainClientWithCallers(cfgs []config.ChainConfig, callers map[uint64]ContractCaller) (*ChainClient, error) {
	chains := make(map[uint64]*chainBackend, len(cfgs))
	for i := range cfgs {
		cfg := &cfgs[i]
		caller, ok := callers[cfg.ChainID]
		if !ok {
			return nil, fmt.Errorf("no rpc caller for chain %d", cfg.ChainID)
		}
		chains[cfg.ChainID] = &chainBackend{
			caller: caller,
			cfg:    cfg,
			contracts: contracts{
				stabilizerNFT: common.HexToAddress(cfg.Contracts.StabilizerNFT),
				stETH:         common.HexToAddress(cfg.Contracts.StETH),
				cUSPD:         common.HexToAddress(cfg.Contracts.CUSPD),
				rateContract:  common.HexToAddress(cfg.Contracts.RateContract),
				reporter:      common.HexToAddress(cfg.Contracts.Reporter),
			},
		}
	}

	return &ChainClient{chains: chains}, nil
}

func (c *ChainClient) SupportsChain(chainID uint64) bool {
	_, ok := c.chains[chainID]
	return ok
}

func (c *ChainClient) backend(chainID uint64) (*chainBackend, error) {
	b, ok := c.chains[chainID]
	if !ok {
		return nil, types.NewInvalidChainError(chainID)
	}
	return b, nil
}

func (c *ChainClient) LowestUnallocatedID(ctx context.Context, chainID uint64) (uint64, error) {
	b, err := c.backend(chainID)
	if err != nil {
		return 0, err
	}

	out, err := b.call(ctx, &stabilizerNFTABI, b.contracts.stabilizerNFT, "lowestUnallocatedId")
	if err != nil {
		return 0, err
	}
	return uint64Result(out, 0, "lowestUnallocatedId")
}

func (c *ChainClient) Position(ctx context.Context, chainID uint64, id uint64) (*types.ProviderPosition, error) {
	b, err := c.backend(chainID)
	if err != nil {
		return nil, err
	}

	out, err := b.call(ctx, &stabilizerNFTABI, b.contracts.stabilizerNFT, "positions", new(big.Int).SetUint64(id))
	if err != nil {
		return nil, err
	}
	if len(out) != 5 {
		return nil, malformed("positions", fmt.Errorf("expected 5 values, got %d", len(out)))
	}

	minRatio, err := uint64Result(out, 0, "positions.minCollateralRatio")
	if err != nil {
		return nil, err
	}
	next, err := uint64Result(out, 2, "positions.nextUnallocated")
	if err != nil {
		return nil, err
	}

	return &types.ProviderPosition{
		MinCollateralRatioBps: minRatio,
		NextUnallocatedID:     next,
	}, nil
}

func (c *ChainClient) StabilizerEscrowAddress(ctx context.Context, chainID uint64, id uint64) (common.Address, error) {
	b, err := c.backend(chainID)
	if err != nil {
		return common.Address{}, err
	}

	out, err := b.call(ctx, &stabilizerNFTABI, b.contracts.stabilizerNFT, "stabilizerEscrows", new(big.Int).SetUint64(id))
	if err != nil {
		return common.Address{}, err
	}
	return addressResult(out, 0, "stabilizerEscrows")
}

func (c *ChainClient) UnallocatedCollateral(ctx context.Context, chainID uint64, escrow common.Address) (*uint256.Int, error) {
	b, err := c.backend(chainID)
	if err != nil {
		return nil, err
	}

	out, err := b.call(ctx, &stabilizerEscrowABI, escrow, "unallocatedStETH")
	if err != nil {
		return nil, err
	}
	return uintResult(out, 0, "unallocatedStETH")
}

func (c *ChainClient) PositionEscrowAddress(ctx context.Context, chainID uint64, id uint64) (common.Address, error) {
	b, err := c.backend(chainID)
	if err != nil {
		return common.Address{}, err
	}

	out, err := b.call(ctx, &stabilizerNFTABI, b.contracts.stabilizerNFT, "positionEscrows", new(big.Int).SetUint64(id))
	if err != nil {
		return common.Address{}, err
	}
	return addressResult(out, 0, "positionEscrows")
}

// CollateralBalance returns the stETH balance held by address.
func (c *ChainClient) CollateralBalance(ctx context.Context, chainID uint64, address common.Address) (*uint256.Int, error) {
	b, err := c.backend(chainID)
	if err != nil {
		return nil, err
	}

	out, err := b.call(ctx, &erc20ABI, b.contracts.stETH, "balanceOf", address)
	if err != nil {
		return nil, err
	}
	return uintResult(out, 0, "balanceOf")
}

func (c *ChainClient) BackedLiabilityShares(ctx context.Context, chainID uint64, positionEscrow common.Address) (*uint256.Int, error) {
	b, err := c.backend(chainID)
	if err != nil {
		return nil, err
	}

	out, err := b.call(ctx, &positionEscrowABI, positionEscrow, "backedPoolShares")
	if err != nil {
		return nil, err
	}
	return uintResult(out, 0, "backedPoolShares")
}

func (c *ChainClient) ConversionFactor(ctx context.Context, chainID uint64) (*uint256.Int, error) {
	b, err := c.backend(chainID)
	if err != nil {
		return nil, err
	}

	out, err := b.call(ctx, &rateContractABI, b.contracts.rateContract, "getYieldFactor")
	if err != nil {
		return nil, err
	}
	return uintResult(out, 0, "getYieldFactor")
}

// SystemCollateral returns the ETH-equivalent collateral recorded at the
// reporter's last snapshot.
func (c *ChainClient) SystemCollateral(ctx context.Context, chainID uint64) (*uint256.Int, error) {
	b, err := c.backend(chainID)
	if err != nil {
		return nil, err
	}

	out, err := b.call(ctx, &reporterABI, b.contracts.reporter, "totalEthEquivalentAtLastSnapshot")
	if err != nil {
		return nil, err
	}
	return uintResult(out, 0, "totalEthEquivalentAtLastSnapshot")
}

// TotalLiabilityShares returns the total supply of pool shares (cUSPD).
func (c *ChainClient) TotalLiabilityShares(ctx context.Context, chainID uint64) (*uint256.Int, error) {
	b, err := c.backend(chainID)
	if err != nil {
		return nil, err
	}

	out, err := b.call(ctx, &erc20ABI, b.contracts.cUSPD, "totalSupply")
	if err != nil {
		return nil, err
	}
	return uintResult(out, 0, "totalSupply")
}

// call performs a read-only contract call against the latest block. Each
// attempt is bounded by the chain timeout.
func (b *chainBackend) call(ctx context.Context, contract *abi.ABI, to common.Address, method string, args ...any) ([]any, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	msg := ethereum.CallMsg{To: &to, Data: data}
	callContract := func() ([]byte, error) {
		callCtx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
		defer cancel()

		return b.caller.CallContract(callCtx, msg, nil)
	}

	raw, err := clientCallWithRetry(ctx, callContract, b.cfg)
	if err != nil {
		return nil, types.NewGatewayUnavailableError(
			fmt.Errorf("failed to call %s on %s (chain %d): %w", method, to.Hex(), b.cfg.ChainID, err),
		)
	}
	if len(raw) == 0 {
		return nil, malformed(method, fmt.Errorf("empty response from %s", to.Hex()))
	}

	out, err := contract.Unpack(method, raw)
	if err != nil {
		return nil, malformed(method, err)
	}
	return out, nil
}

func clientCallWithRetry[T any](
	ctx context.Context, call retry.RetryableFuncWithData[T], cfg *config.ChainConfig,
) (T, error) {
	return retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, context.Canceled)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint64("chain_id", cfg.ChainID).
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("failed to call the RPC client")
		}))
}

func malformed(method string, err error) error {
	return types.NewGatewayUnavailableError(fmt.Errorf("malformed %s response: %w", method, err))
}

func uintResult(out []any, idx int, field string) (*uint256.Int, error) {
	if idx >= len(out) {
		return nil, malformed(field, fmt.Errorf("missing value #%d", idx))
	}
	v, ok := out[idx].(*big.Int)
	if !ok || v == nil {
		return nil, malformed(field, fmt.Errorf("unexpected type %T", out[idx]))
	}
	if v.Sign() < 0 {
		return nil, malformed(field, fmt.Errorf("negative value %s", v))
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil, malformed(field, fmt.Errorf("value %s exceeds 256 bits", v))
	}
	return u, nil
}

func uint64Result(out []any, idx int, field string) (uint64, error) {
	u, err := uintResult(out, idx, field)
	if err != nil {
		return 0, err
	}
	if !u.IsUint64() {
		return 0, malformed(field, fmt.Errorf("value %s exceeds 64 bits", u.Dec()))
	}
	return u.Uint64(), nil
}

func addressResult(out []any, idx int, field string) (common.Address, error) {
	if idx >= len(out) {
		return common.Address{}, malformed(field, fmt.Errorf("missing value #%d", idx))
	}
	addr, ok := out[idx].(common.Address)
	if !ok {
		return common.Address{}, malformed(field, fmt.Errorf("unexpected type %T", out[idx]))
	}
	return addr, nil
}
