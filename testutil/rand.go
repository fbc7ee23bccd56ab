package testutil

import (
	"crypto/rand"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// RandomAddress returns a random non-zero address.
func RandomAddress() common.Address {
	var addr common.Address
	for addr == (common.Address{}) {
		_, _ = rand.Read(addr[:])
	}
	return addr
}

// RandomWad returns a random 18-decimal amount of at least one wei and at
// most maxUnits whole units.
func RandomWad(faker *gofakeit.Faker, maxUnits uint64) *uint256.Int {
	units := uint256.NewInt(faker.Uint64() % (maxUnits + 1))
	wad := uint256.NewInt(1_000_000_000_000_000_000)
	v := new(uint256.Int).Mul(units, wad)
	return v.AddUint64(v, faker.Uint64()%1_000_000_000_000_000_000+1)
}
