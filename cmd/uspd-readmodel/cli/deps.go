package cli

import (
	"fmt"

	"github.com/Morpher-io/uspd-website-sub000/internal/cache"
	"github.com/Morpher-io/uspd-website-sub000/internal/clients/chainclient"
	"github.com/Morpher-io/uspd-website-sub000/internal/clients/oracleclient"
	"github.com/Morpher-io/uspd-website-sub000/internal/config"
	"github.com/Morpher-io/uspd-website-sub000/internal/services"
)

// newService wires the gateway and oracle clients, both decorated with
// latency metrics, into a fresh aggregation service.
func newService(cfg *config.Config) (*services.Service, error) {
	var chainClient chainclient.ChainInterface
	chainClient, err := chainclient.NewChainClient(cfg.Chains)
	if err != nil {
		return nil, fmt.Errorf("error while creating chain client: %w", err)
	}
	chainClient = chainclient.NewChainClientWithMetrics(chainClient)

	var oracleClient oracleclient.OracleInterface
	oracleClient, err = oracleclient.NewOracleClient(&cfg.Oracle)
	if err != nil {
		return nil, fmt.Errorf("error while creating oracle client: %w", err)
	}
	oracleClient = oracleclient.NewOracleClientWithMetrics(oracleClient)

	resultCache := cache.New(cfg.Cache.TTL)

	return services.NewService(cfg, chainClient, oracleClient, resultCache), nil
}
