package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Morpher-io/uspd-website-sub000/internal/cache"
	"github.com/Morpher-io/uspd-website-sub000/internal/observability/metrics"
	"github.com/Morpher-io/uspd-website-sub000/internal/types"
)

const stalePrefix = "stale:"

// cached returns the value stored under key or computes and stores it.
// Concurrent misses on the same key share one computation. Errors are never
// stored.
//
// The shared computation runs detached from the caller that started it, so
// one cancelled request does not fail the others waiting on the same key.
// Gateway calls stay bounded by their own per-call timeouts.
func cached[T any](
	ctx context.Context, s *Service, key cache.Key, compute func(ctx context.Context) (T, error),
) (T, error) {
	var zero T
	if v, ok := cache.Get[T](s.cache, key); ok {
		metrics.RecordCacheLookup(key.Operation, metrics.CacheHit)
		return v, nil
	}
	metrics.RecordCacheLookup(key.Operation, metrics.CacheMiss)

	flightCtx := context.WithoutCancel(ctx)
	ch := s.flights.DoChan(key.String(), func() (any, error) {
		// another flight may have filled the entry while we waited on the lock
		if v, ok := cache.Get[T](s.cache, key); ok {
			return v, nil
		}
		v, err := compute(flightCtx)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, v, s.cfg.Cache.TTL)
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func staleKey(chainID uint64, operation string, params ...any) cache.Key {
	return cache.NewKey(chainID, stalePrefix+operation, params...)
}

// rememberForFallback keeps the last good value of an operation around for
// longer than the regular TTL.
func rememberForFallback[T any](s *Service, key cache.Key, v T) {
	s.cache.Set(key, v, s.cfg.Cache.StaleTTL)
}

// fallbackToStale serves the last good value after a failed computation.
// The failure is returned unchanged when there is nothing to fall back to or
// when it is a caller error.
func fallbackToStale[T any](
	ctx context.Context, s *Service, key cache.Key, cause error, markStale func(T) T,
) (T, error) {
	var zero T
	if !canServeStale(cause) {
		return zero, cause
	}

	v, ok := cache.Get[T](s.cache, key)
	if !ok {
		return zero, cause
	}

	log.Ctx(ctx).Warn().
		Err(cause).
		Uint64("chain_id", key.ChainID).
		Str("operation", key.Operation).
		Msg("computation failed, serving stale result")
	metrics.IncStaleServed(key.ChainID, key.Operation)

	return markStale(v), nil
}

func canServeStale(err error) bool {
	return !errors.Is(err, types.ErrInvalidChain) && !errors.Is(err, types.ErrPositionNotFound)
}
