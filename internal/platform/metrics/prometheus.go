package metrics

import (
	"net/http"
	"time"

	"github.com/odilboooy10/nestar/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Manager holds the engagement-core Prometheus metrics.
type Manager struct {
	Registry *prometheus.Registry

	// LikesToggledTotal counts like toggles by group and direction ("like"/"unlike").
	LikesToggledTotal *prometheus.CounterVec
	// ViewsRecordedTotal counts first-time views by group; repeat views never count.
	ViewsRecordedTotal *prometheus.CounterVec
	// SearchesTotal counts faceted listing/member queries by surface.
	SearchesTotal *prometheus.CounterVec
	// StatsPropagationFailuresTotal counts counter updates whose target entity was
	// missing. A non-zero rate means join records and counters have diverged and
	// the reconciliation job has work to do.
	StatsPropagationFailuresTotal *prometheus.CounterVec
}

// NewManager initializes and registers the engagement metrics on a dedicated registry.
func NewManager(serviceName string) *Manager {
	registry := prometheus.NewRegistry()

	likesToggledTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "likes_toggled_total",
		Help:      "Total number of like toggles by group and direction.",
	}, []string{"group", "direction"})

	viewsRecordedTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "views_recorded_total",
		Help:      "Total number of first-time views recorded by group.",
	}, []string{"group"})

	searchesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "searches_total",
		Help:      "Total number of faceted search queries by surface.",
	}, []string{"surface"})

	statsPropagationFailuresTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "stats_propagation_failures_total",
		Help:      "Total number of counter deltas whose target entity was missing.",
	}, []string{"counter"})

	registry.MustRegister(
		likesToggledTotal,
		viewsRecordedTotal,
		searchesTotal,
		statsPropagationFailuresTotal,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:                      registry,
		LikesToggledTotal:             likesToggledTotal,
		ViewsRecordedTotal:            viewsRecordedTotal,
		SearchesTotal:                 searchesTotal,
		StatsPropagationFailuresTotal: statsPropagationFailuresTotal,
	}
}

// StartMetricsServer exposes the registry on /metrics. Blocks until the server stops.
func StartMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	appLogger.Info("Prometheus metrics server listening", zap.String("port", port))
	return srv.ListenAndServe()
}
