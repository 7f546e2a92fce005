// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "healthcare"

// Login outcomes used as the "outcome" label of LoginAttemptsTotal.
const (
	LoginSuccess            = "success"
	LoginInvalidCredentials = "invalid_credentials"
	LoginInactive           = "inactive"
	LoginInvalidInput       = "invalid_input"
	LoginError              = "error"
)

// HTTPRequestsTotal counts handled requests.
// Labels: method, route (gin route template), status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures handler latency.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// LoginAttemptsTotal counts login attempts by outcome.
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// BlockchainConnected is 1 while a blockchain connection is recorded as active.
var BlockchainConnected = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "blockchain_connected",
		Help:      "Whether a blockchain connection is currently active (1) or not (0).",
	},
)

// AccountsTotal is the number of accounts, by status (active/inactive).
var AccountsTotal = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "accounts",
		Help:      "Number of accounts, by status.",
	},
	[]string{"status"},
)

// HospitalsTotal is the number of hospitals, by status (active/inactive).
var HospitalsTotal = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "hospitals",
		Help:      "Number of hospitals, by status.",
	},
	[]string{"status"},
)
