package redis

import (
	"context"
	"time"

	"github.com/hos6/urlshortener/domain"
	redisKit "github.com/hos6/urlshortener/kit/redis"
	"github.com/pkg/errors"
)

const cacheKeyPrefix = "short-url:"

// shortURLCache keeps the shortURL -> longURL projection in redis with a
// bounded TTL. Callers own the fail-open policy; errors are returned as-is.
type shortURLCache struct {
	cache *redisKit.Cache
	ttl   time.Duration
}

func CreateShortURLCache(cache *redisKit.Cache, ttl time.Duration) domain.ShortURLCache {
	return &shortURLCache{
		cache: cache,
		ttl:   ttl,
	}
}

func (c *shortURLCache) Get(ctx context.Context, shortURL string) (string, bool, error) {
	longURL, exists, err := c.cache.Get(ctx, cacheKeyPrefix+shortURL)
	if err != nil {
		return "", false, errors.Wrap(err, "get cache failed")
	}
	return longURL, exists, nil
}

func (c *shortURLCache) Put(ctx context.Context, shortURL, longURL string) error {
	if err := c.cache.Set(ctx, cacheKeyPrefix+shortURL, longURL, c.ttl); err != nil {
		return errors.Wrap(err, "set cache failed")
	}
	return nil
}

func (c *shortURLCache) Evict(ctx context.Context, shortURL string) error {
	if err := c.cache.Del(ctx, cacheKeyPrefix+shortURL); err != nil {
		return errors.Wrap(err, "del cache failed")
	}
	return nil
}
