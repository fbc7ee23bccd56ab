package pkg

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ValidateContractAddress checks that address is a 0x-prefixed, 20 byte hex
// address other than the zero address.
func ValidateContractAddress(address string) error {
	if address == "" {
		return errors.New("address is required")
	}
	if !has0xPrefix(address) || !common.IsHexAddress(address) {
		return fmt.Errorf("%q is not a hex address", address)
	}
	if common.HexToAddress(address) == (common.Address{}) {
		return errors.New("zero address is not allowed")
	}

	return nil
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
