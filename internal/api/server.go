package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/Morpher-io/uspd-website-sub000/internal/config"
	"github.com/Morpher-io/uspd-website-sub000/internal/observability/tracing"
	"github.com/Morpher-io/uspd-website-sub000/internal/types"
)

// ReadModel is what the handlers need from the aggregation service.
type ReadModel interface {
	GetMintableCapacity(ctx context.Context, chainID uint64) (*types.CapacityResult, error)
	GetSystemRatio(ctx context.Context, chainID uint64) (types.RatioResult, error)
	GetPositionRatio(ctx context.Context, chainID, positionID uint64) (*types.PositionSummary, error)
}

type Server struct {
	cfg        *config.ServerConfig
	readModel  ReadModel
	httpServer *http.Server
}

func New(cfg *config.ServerConfig, readModel ReadModel) *Server {
	s := &Server{cfg: cfg, readModel: readModel}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler builds the router with every middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(tracing.Middleware)

	r.Get("/healthcheck", s.healthcheck)
	r.Route("/v1/chains/{chainId}", func(r chi.Router) {
		r.Get("/capacity", s.getMintableCapacity)
		r.Get("/ratio", s.getSystemRatio)
		r.Get("/positions/{positionId}/ratio", s.getPositionRatio)
	})

	return cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}).Handler(r)
}

// Start blocks serving requests until the server is shut down.
func (s *Server) Start() error {
	log.Info().Msgf("Starting api server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server stopped: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
