package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysesTotal tracks wallet analyses by outcome discriminant
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletroast_analyses_total",
			Help: "The total number of wallet analyses by outcome",
		},
		[]string{"outcome"}, // ok, mock, no_transactions, invalid_address, api_key_missing, error
	)

	// RPCRequestsTotal tracks upstream chain-data requests by status
	RPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletroast_rpc_requests_total",
			Help: "The total number of upstream RPC/REST requests",
		},
		[]string{"status"}, // success, rate_limited, server_error, failed, error, cancelled
	)

	// RoastFallbacksTotal counts roasts served from the canned set
	RoastFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "walletroast_roast_fallbacks_total",
		Help: "The number of roasts served from the canned fallback set",
	})

	// DatabaseOperations tracks leaderboard store operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletroast_database_operations_total",
			Help: "The total number of database operations",
		},
		[]string{"operation", "status"}, // upsert/read, success/failed
	)

	// AnalysisSeconds tracks end-to-end analysis duration
	AnalysisSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "walletroast_analysis_duration_seconds",
		Help:    "Time taken to analyze a wallet in seconds",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~51s
	})
)

// RecordAnalysis records a completed analysis with the given outcome
func RecordAnalysis(outcome string) {
	AnalysesTotal.WithLabelValues(outcome).Inc()
}

// RecordRPCRequest records an upstream request with the given status
func RecordRPCRequest(status string) {
	RPCRequestsTotal.WithLabelValues(status).Inc()
}

// RecordRoastFallback records a canned roast being served
func RecordRoastFallback() {
	RoastFallbacksTotal.Inc()
}

// RecordDatabaseOperation records a database operation
func RecordDatabaseOperation(operation, status string) {
	DatabaseOperations.WithLabelValues(operation, status).Inc()
}

// RecordAnalysisDuration records the time taken to analyze a wallet
func RecordAnalysisDuration(seconds float64) {
	AnalysisSeconds.Observe(seconds)
}
