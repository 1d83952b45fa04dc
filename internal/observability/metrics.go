package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodgram_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "foodgram_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RecipesCreatedTotal counts successfully created recipes.
	RecipesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodgram_recipes_created_total",
		Help: "Total number of recipes created",
	})

	// MembershipMutationsTotal counts favorite/cart/follow mutations by kind and action.
	MembershipMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodgram_membership_mutations_total",
		Help: "Total favorite, shopping cart and follow mutations",
	}, []string{"kind", "action"})

	// ShoppingListDownloadsTotal counts shopping list downloads.
	ShoppingListDownloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodgram_shopping_list_downloads_total",
		Help: "Total number of shopping list downloads",
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
