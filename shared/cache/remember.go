package cache

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Remember returns the value cached under key or, on a miss, the result of load. A loaded
// value is written back for ttl seconds in the background; load errors are never cached.
func Remember[T any](ctx context.Context, c RedisCache, key string, ttl int, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if err := c.Get(ctx, key, &cached); err == nil {
		log.Debug().Str("cacheKey", key).Msg("cache hit")

		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	go func(ctx context.Context) {
		if err := c.Save(ctx, key, value, ttl); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save cache")
		}
	}(context.WithoutCancel(ctx))

	return value, nil
}
