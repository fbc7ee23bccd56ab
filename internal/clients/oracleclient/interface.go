package oracleclient

import (
	"context"

	"github.com/Morpher-io/uspd-website-sub000/internal/types"
)

//go:generate mockery --name=OracleInterface --output=../../../tests/mocks --outpkg=mocks --filename=mock_oracle_client.go
type OracleInterface interface {
	// FetchPrice returns the latest signed ETH/USD attestation. Non-success
	// responses fail with types.ErrPriceUnavailable.
	FetchPrice(ctx context.Context) (*types.PriceAttestation, error)
}
