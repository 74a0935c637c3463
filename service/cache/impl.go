package cache

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/base/metrics"
	"github.com/x-xyz/oev-searcher/domain/keys"
	"github.com/x-xyz/oev-searcher/service/cache/provider"
)

type impl struct {
	ttl   time.Duration
	pfx   string
	cache provider.Provider
	met   metrics.Service
}

func New(config ServiceConfig) Service {
	return &impl{
		ttl:   config.Ttl,
		pfx:   config.Pfx,
		cache: config.Cache,
		met:   config.Metrics,
	}
}

func (im *impl) bump(key string) {
	if im.met != nil {
		im.met.BumpSum(key, 1, "prefix", im.pfx)
	}
}

func (im *impl) GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error {
	err := im.Get(c, key, container)
	if err != nil && err != ErrNotFound {
		c.WithField("err", err).WithField("key", key).Error("Get failed")
		return err
	} else if err == nil {
		im.bump("cache.hit")
		return nil
	}
	im.bump("cache.miss")

	val, err := getter()
	if err != nil {
		c.WithField("err", err).WithField("key", key).Warn("GetByFunc getter failed")
		return err
	}

	if err := im.Set(c, key, val); err != nil {
		// a failed fill still serves the fresh value
		c.WithField("err", err).WithField("key", key).Error("Set failed")
	}

	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	reflect.ValueOf(container).Elem().Set(rv)

	return nil
}

func (im *impl) Get(c ctx.Ctx, key string, container interface{}) error {
	key = keys.RedisKey(im.pfx, key)

	if val, _, err := im.cache.Get(c, key); err == provider.ErrNotFound {
		return ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Get failed")
		return err
	} else if err := json.Unmarshal(val, container); err != nil {
		c.WithField("err", err).WithField("key", key).Error("json.Unmarshal failed")
		return err
	}

	return nil
}

func (im *impl) Set(c ctx.Ctx, key string, value interface{}) error {
	key = keys.RedisKey(im.pfx, key)

	if val, err := json.Marshal(value); err != nil {
		c.WithField("err", err).WithField("key", key).Error("json.Marshal failed")
		return err
	} else if err := im.cache.Set(c, key, val, im.ttl); err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Set failed")
		return err
	}

	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	key = keys.RedisKey(im.pfx, key)

	if err := im.cache.Del(c, key); err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Del failed")
		return err
	}

	return nil
}
