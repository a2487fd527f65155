package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Application counters. promauto registers them with the default registry at
// package load, so handlers and services can increment them directly.
var (
	TokensIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_tokens_issued_total",
		Help: "Total number of access/refresh token pairs issued.",
	})
	TokensRefreshedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_tokens_refreshed_total",
		Help: "Total number of successful refresh-token rotations.",
	})
	LoginSuccessTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_logins_success_total",
		Help: "Total number of successful logins.",
	})
	LoginFailureTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_logins_failure_total",
		Help: "Total number of failed logins.",
	})
	UsersRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_users_registered_total",
		Help: "Total number of users registered.",
	})
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_placed_total",
		Help: "Total number of orders placed.",
	})
	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_rate_limited_total",
		Help: "Total number of requests rejected by rate limiting.",
	})
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cache_hits_total",
		Help: "Total number of catalog cache hits.",
	})
	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cache_misses_total",
		Help: "Total number of catalog cache misses.",
	})
)
