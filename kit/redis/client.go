package redis

import (
	"context"
	"time"

	"github.com/pkg/errors"
	goRedis "github.com/redis/go-redis/v9"
)

type Cache struct {
	redisClient *goRedis.Client
}

type Cmd struct {
	*goRedis.Cmd
}

func CreateCache(address, password string, dbSelect int) (*Cache, error) {
	redisClient := goRedis.NewClient(&goRedis.Options{
		Addr:     address,
		Password: password,
		DB:       dbSelect,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, errors.Wrap(err, "redis connect failed")
	}
	return &Cache{redisClient: redisClient}, nil
}

func (cache *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return cache.redisClient.Set(ctx, key, value, expiration).Err()
}

func (cache *Cache) Get(ctx context.Context, key string) (val string, exists bool, err error) {
	val, err = cache.redisClient.Get(ctx, key).Result()
	if err == goRedis.Nil {
		return "", false, nil
	} else if err != nil {
		return "", false, errors.Wrap(err, "get redis failed")
	}
	return val, true, nil
}

func (cache *Cache) Del(ctx context.Context, keys ...string) error {
	return cache.redisClient.Del(ctx, keys...).Err()
}

func (cache *Cache) RunLua(ctx context.Context, script string, keys []string, args ...interface{}) *Cmd {
	luaScript := goRedis.NewScript(script)
	cmd := Cmd{luaScript.Run(ctx, cache.redisClient, keys, args...)}
	return &cmd
}
