package redis

import (
	"time"

	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/service/cache/provider"
	"github.com/x-xyz/oev-searcher/service/redis"
)

type impl struct {
	redis redis.Service
}

// NewRedis shares cache entries between searcher instances
func NewRedis(redis redis.Service) provider.Provider {
	return &impl{redis}
}

// remaining ttl, keys without expire report 0
func (im *impl) ttl(c ctx.Ctx, key string) (time.Duration, error) {
	ttl, err := im.redis.TTL(c, key)
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.TTL failed")
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return time.Duration(ttl) * time.Second, nil
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, err := im.redis.Get(c, key)
	if err == redis.ErrNotFound {
		return nil, time.Duration(0), provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Get failed")
		return nil, time.Duration(0), err
	}
	ttl, err := im.ttl(c, key)
	if err != nil {
		return nil, time.Duration(0), err
	}
	return val, ttl, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = redis.Forever
	}
	if err := im.redis.Set(c, key, value, ttl); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	if _, err := im.redis.Del(c, key); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Del failed")
		return err
	}
	return nil
}
