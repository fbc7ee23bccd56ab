package services

import (
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Morpher-io/uspd-website-sub000/internal/cache"
	"github.com/Morpher-io/uspd-website-sub000/internal/capacity"
	"github.com/Morpher-io/uspd-website-sub000/internal/clients/chainclient"
	"github.com/Morpher-io/uspd-website-sub000/internal/clients/oracleclient"
	"github.com/Morpher-io/uspd-website-sub000/internal/config"
)

// Cache operation names. Snapshot operations hold price independent chain
// data, the others hold results derived from a price attestation.
const (
	opCapacityScan     = "capacityScan"
	opMintableCapacity = "mintableCapacity"
	opSystemSnapshot   = "systemSnapshot"
	opSystemRatio      = "systemRatio"
	opPositionSnapshot = "positionSnapshot"
	opPositionRatio    = "positionRatio"
)

// Service is the single entry point for every read-model computation. Handlers
// and pollers depend on it instead of talking to the gateway directly.
type Service struct {
	cfg        *config.Config
	chain      chainclient.ChainInterface
	oracle     oracleclient.OracleInterface
	cache      *cache.Cache
	estimators map[uint64]*capacity.Estimator
	flights    singleflight.Group
	now        func() time.Time
}

func NewService(
	cfg *config.Config,
	chain chainclient.ChainInterface,
	oracle oracleclient.OracleInterface,
	resultCache *cache.Cache,
) *Service {
	estimators := make(map[uint64]*capacity.Estimator, len(cfg.Chains))
	for _, chainCfg := range cfg.Chains {
		estimators[chainCfg.ChainID] = capacity.NewEstimator(chain, chainCfg.MaxHops)
	}

	return &Service{
		cfg:        cfg,
		chain:      chain,
		oracle:     oracle,
		cache:      resultCache,
		estimators: estimators,
		now:        time.Now,
	}
}

// ChainIDs lists the configured chains in configuration order.
func (s *Service) ChainIDs() []uint64 {
	ids := make([]uint64, 0, len(s.cfg.Chains))
	for _, chainCfg := range s.cfg.Chains {
		ids = append(ids, chainCfg.ChainID)
	}
	return ids
}

func (s *Service) estimator(chainID uint64) *capacity.Estimator {
	if e, ok := s.estimators[chainID]; ok {
		return e
	}
	return capacity.NewEstimator(s.chain, capacity.DefaultMaxHops)
}
