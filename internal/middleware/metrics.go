package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialmedia_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// CacheHits counts page cache hits by route.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialmedia_cache_hits_total",
		Help: "Total number of page cache hits",
	}, []string{"route"})

	// CacheMisses counts page cache misses by route.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialmedia_cache_misses_total",
		Help: "Total number of page cache misses",
	}, []string{"route"})

	// FollowEdgeRepairs counts half-edges detected and repaired during
	// follow/unfollow. A non-zero value indicates a past partial update.
	FollowEdgeRepairs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "socialmedia_follow_edge_repairs_total",
		Help: "Total number of follow-edge inconsistencies repaired",
	})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-instrumentation handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
