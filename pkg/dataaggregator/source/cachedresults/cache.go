package cachedresults

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/metrics"
	"github.com/travigo/transitmerge/pkg/redis_client"
	"github.com/travigo/transitmerge/pkg/util"
)

const defaultExpiryMinutes = 90

// Cache keeps finished itinerary plans in Redis as JSON
type Cache struct {
	Cache cache.CacheInterface[string]
}

func (c *Cache) Setup() {
	env := util.GetEnvironmentVariables()
	expiry := time.Duration(util.GetEnvironmentInt(env, "TRAVIGO_RESULT_CACHE_MINUTES", defaultExpiryMinutes)) * time.Minute

	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(expiry))

	c.Cache = cache.New[string](redisStore)
}

func (c *Cache) Get(ctx context.Context, key string) ([]*ctdf.AggregatedItinerary, bool) {
	value, err := c.Cache.Get(ctx, key)
	if err != nil || value == "" {
		metrics.CacheMisses.WithLabelValues("itinerary_plan").Inc()
		return nil, false
	}

	var itineraries []*ctdf.AggregatedItinerary
	if err := json.Unmarshal([]byte(value), &itineraries); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Discarding unreadable cached plan")
		metrics.CacheMisses.WithLabelValues("itinerary_plan").Inc()
		return nil, false
	}

	metrics.CacheHits.WithLabelValues("itinerary_plan").Inc()

	return itineraries, true
}

func (c *Cache) Set(ctx context.Context, key string, itineraries []*ctdf.AggregatedItinerary) error {
	value, err := json.Marshal(itineraries)
	if err != nil {
		return err
	}

	return c.Cache.Set(ctx, key, string(value))
}
