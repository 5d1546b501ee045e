package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "towerclimb"

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Business Metrics
var (
	PackagesOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packages_opened_total",
			Help:      "Packages resolved into rewards",
		},
		[]string{"package"},
	)

	RewardsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rewards_granted_total",
			Help:      "Reward units granted, by kind and rarity",
		},
		[]string{"kind", "rarity"},
	)

	GoldSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gold_spent_total",
			Help:      "Gold debited by package purchases",
		},
	)

	ScrollsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrolls_applied_total",
			Help:      "Scrolls consumed",
		},
		[]string{"scroll"},
	)

	EffectsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "effects_expired_total",
			Help:      "Active effects removed by expiry sweeps",
		},
	)

	ContentReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_reloads_total",
			Help:      "Content reload attempts by result",
		},
		[]string{"result"},
	)
)
