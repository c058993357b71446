package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hos6/urlshortener/domain"
)

type cacheEntry struct {
	longURL  string
	expireAt time.Time
}

type memoryShortURLCache struct {
	lock    sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func CreateShortURLCache(ttl time.Duration) domain.ShortURLCache {
	return &memoryShortURLCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *memoryShortURLCache) Get(ctx context.Context, shortURL string) (string, bool, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	entry, ok := c.entries[shortURL]
	if !ok || time.Now().After(entry.expireAt) {
		return "", false, nil
	}
	return entry.longURL, true, nil
}

func (c *memoryShortURLCache) Put(ctx context.Context, shortURL, longURL string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.entries[shortURL] = cacheEntry{
		longURL:  longURL,
		expireAt: time.Now().Add(c.ttl),
	}
	return nil
}

func (c *memoryShortURLCache) Evict(ctx context.Context, shortURL string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	delete(c.entries, shortURL)
	return nil
}
