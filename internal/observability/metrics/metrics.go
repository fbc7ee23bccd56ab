package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

type CacheResult string

const (
	CacheHit  CacheResult = "hit"
	CacheMiss CacheResult = "miss"
)

var defaultHistogramBucketsSeconds = []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

var (
	once          sync.Once
	metricsRouter *chi.Mux

	// collectors exist before Init so recording never needs a nil check;
	// Init only registers and exposes them
	clientRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)

	chainClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chain_client_latency_seconds",
			Help:    "Histogram of chain gateway call durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"chain_id", "method", "status"},
	)

	oracleClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oracle_client_latency_seconds",
			Help:    "Histogram of price oracle call durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	cacheLookupCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_cache_lookups_total",
			Help: "Result cache lookups split by operation and hit/miss.",
		},
		[]string{"operation", "result"},
	)

	staleServedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stale_results_served_total",
			Help: "Number of times a stale cached result was served because recomputation failed.",
		},
		[]string{"chain_id", "operation"},
	)

	truncatedScanCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capacity_scan_truncated_total",
			Help: "Number of capacity scans that hit the hop limit before the end of the unallocated list.",
		},
		[]string{"chain_id"},
	)

	mintableCapacityGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mintable_capacity_principal",
			Help: "Last computed mintable principal capacity in whole units.",
		},
		[]string{"chain_id"},
	)

	systemRatioGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "system_collateral_ratio_bps",
			Help: "Last computed finite system collateralization ratio in basis points.",
		},
		[]string{"chain_id"},
	)
)

// Init registers the collectors and serves them on host:port.
func Init(host string, metricsPort int) {
	once.Do(func() {
		registerMetrics()
		initMetricsRouter(host, metricsPort)
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(host string, metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	metricsAddr := fmt.Sprintf("%s:%d", host, metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	go func() {
		log.Info().Msgf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

func registerMetrics() {
	prometheus.MustRegister(
		clientRequestDurationHistogram,
		chainClientLatency,
		oracleClientLatency,
		pollerDurationHistogram,
		cacheLookupCounter,
		staleServedCounter,
		truncatedScanCounter,
		mintableCapacityGauge,
		systemRatioGauge,
	)
}

func outcome(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

func chainLabel(chainID uint64) string {
	return strconv.FormatUint(chainID, 10)
}

func RecordChainClientLatency(d time.Duration, chainID uint64, method string, failure bool) {
	chainClientLatency.WithLabelValues(chainLabel(chainID), method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordOracleClientLatency(d time.Duration, method string, failure bool) {
	oracleClientLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordCacheLookup(operation string, result CacheResult) {
	cacheLookupCounter.WithLabelValues(operation, string(result)).Inc()
}

func IncStaleServed(chainID uint64, operation string) {
	staleServedCounter.WithLabelValues(chainLabel(chainID), operation).Inc()
}

func IncTruncatedScan(chainID uint64) {
	truncatedScanCounter.WithLabelValues(chainLabel(chainID)).Inc()
}

func RecordMintableCapacity(chainID uint64, wholeUnits float64) {
	mintableCapacityGauge.WithLabelValues(chainLabel(chainID)).Set(wholeUnits)
}

func RecordSystemRatio(chainID uint64, ratioBps float64) {
	systemRatioGauge.WithLabelValues(chainLabel(chainID)).Set(ratioBps)
}

// StartClientRequestDurationTimer starts a timer to measure outgoing client request duration.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		clientRequestDurationHistogram.WithLabelValues(
			baseUrl,
			method,
			path,
			fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}
