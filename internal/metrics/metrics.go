package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "prismtrack_console"
)

var (
	backendDurationBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

	// Backend API metrics
	BackendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Time taken for a PrismTrack API request to complete.",
		Buckets:   backendDurationBuckets,
	}, []string{"operation"})

	BackendRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Count of PrismTrack API requests by outcome.",
	}, []string{"operation", "status"})

	TokenRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Count of access token refresh attempts.",
	}, []string{"status"})

	// Download metrics
	AgentDownloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "agent_downloads_total",
		Help:      "Count of agent package downloads proxied to browsers.",
	}, []string{"status"})

	AgentDownloadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "agent_download_bytes_total",
		Help:      "Bytes of agent installer payload streamed to browsers.",
	})
)
