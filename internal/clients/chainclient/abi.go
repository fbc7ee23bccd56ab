package chainclient

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const stabilizerNFTABIJSON = `[
	{"type":"function","name":"lowestUnallocatedId","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"positions","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[
		{"name":"minCollateralRatio","type":"uint256"},
		{"name":"prevUnallocated","type":"uint256"},
		{"name":"nextUnallocated","type":"uint256"},
		{"name":"prevAllocated","type":"uint256"},
		{"name":"nextAllocated","type":"uint256"}
	]},
	{"type":"function","name":"stabilizerEscrows","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"positionEscrows","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"address"}]}
]`

const stabilizerEscrowABIJSON = `[
	{"type":"function","name":"unallocatedStETH","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

const positionEscrowABIJSON = `[
	{"type":"function","name":"backedPoolShares","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

const erc20ABIJSON = `[
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

const rateContractABIJSON = `[
	{"type":"function","name":"getYieldFactor","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

const reporterABIJSON = `[
	{"type":"function","name":"totalEthEquivalentAtLastSnapshot","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

var (
	stabilizerNFTABI    = mustParseABI(stabilizerNFTABIJSON)
	stabilizerEscrowABI = mustParseABI(stabilizerEscrowABIJSON)
	positionEscrowABI   = mustParseABI(positionEscrowABIJSON)
	erc20ABI            = mustParseABI(erc20ABIJSON)
	rateContractABI     = mustParseABI(rateContractABIJSON)
	reporterABI         = mustParseABI(reporterABIJSON)
)

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(err)
	}
	return parsed
}
