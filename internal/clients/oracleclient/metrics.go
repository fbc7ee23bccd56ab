package oracleclient

import (
	"context"
	"time"

	"github.com/Morpher-io/uspd-website-sub000/internal/observability/metrics"
	"github.com/Morpher-io/uspd-website-sub000/internal/types"
)

type oracleClientWithMetrics struct {
	oracle OracleInterface
}

func NewOracleClientWithMetrics(oracle OracleInterface) *oracleClientWithMetrics {
	return &oracleClientWithMetrics{oracle: oracle}
}

func (o *oracleClientWithMetrics) FetchPrice(ctx context.Context) (*types.PriceAttestation, error) {
	startTime := time.Now()
	v, err := o.oracle.FetchPrice(ctx)
	metrics.RecordOracleClientLatency(time.Since(startTime), "FetchPrice", err != nil)
	return v, err
}
