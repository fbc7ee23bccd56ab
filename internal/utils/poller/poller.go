package poller

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Morpher-io/uspd-website-sub000/internal/observability/tracing"
)

type Poller struct {
	interval   time.Duration
	quit       chan struct{}
	pollMethod func(ctx context.Context) error
}

func NewPoller(interval time.Duration, pollMethod func(ctx context.Context) error) *Poller {
	return &Poller{
		interval:   interval,
		quit:       make(chan struct{}),
		pollMethod: pollMethod,
	}
}

// Start runs pollMethod every interval until ctx is cancelled or Stop is
// called. Each run gets its own trace id.
func (p *Poller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.Info().Msgf("Starting poller with interval %s", p.interval)

	for {
		select {
		case <-ticker.C:
			pollCtx := tracing.InjectTraceID(ctx)
			log := log.Ctx(pollCtx)
			log.Debug().Msg("Executing poll method")
			if err := p.pollMethod(pollCtx); err != nil {
				log.Error().Err(err).Msg("Error polling")
			} else {
				log.Debug().Msg("Poll method executed successfully")
			}
		case <-ctx.Done():
			log.Info().Msg("Poller stopped due to context cancellation")
			return
		case <-p.quit:
			log.Info().Msg("Poller stopped")
			return
		}
	}
}

func (p *Poller) Stop() {
	close(p.quit)
}
