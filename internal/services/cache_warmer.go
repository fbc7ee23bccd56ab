package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Morpher-io/uspd-website-sub000/internal/observability/metrics"
	"github.com/Morpher-io/uspd-website-sub000/internal/utils/poller"
)

// StartCacheWarmer keeps capacity and system ratio results of every
// configured chain fresh so that handlers rarely pay for a full scan. A zero
// warm interval disables it.
func (s *Service) StartCacheWarmer(ctx context.Context) {
	if s.cfg.Poller.WarmInterval <= 0 {
		log.Ctx(ctx).Info().Msg("cache warmer disabled")
		return
	}

	warmer := poller.NewPoller(
		s.cfg.Poller.WarmInterval,
		metrics.RecordPollerDuration("warm_cache", s.warmCache),
	)
	go warmer.Start(ctx)
}

func (s *Service) warmCache(ctx context.Context) error {
	log := log.Ctx(ctx)

	var errs []error
	for _, chainID := range s.ChainIDs() {
		capacity, err := s.GetMintableCapacity(ctx, chainID)
		if err != nil {
			errs = append(errs, fmt.Errorf("chain %d: failed to warm mintable capacity: %w", chainID, err))
		} else {
			log.Debug().
				Uint64("chain_id", chainID).
				Str("total_principal_capacity", capacity.TotalPrincipalCapacity.Dec()).
				Bool("truncated", capacity.Truncated).
				Bool("stale", capacity.Stale).
				Msg("warmed mintable capacity")
		}

		ratio, err := s.GetSystemRatio(ctx, chainID)
		if err != nil {
			errs = append(errs, fmt.Errorf("chain %d: failed to warm system ratio: %w", chainID, err))
		} else {
			log.Debug().
				Uint64("chain_id", chainID).
				Str("ratio_bps", ratio.RatioString()).
				Str("tier", ratio.Tier.String()).
				Bool("stale", ratio.Stale).
				Msg("warmed system ratio")
		}
	}

	return errors.Join(errs...)
}
