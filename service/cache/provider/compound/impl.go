package compound

import (
	"time"

	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/service/cache/provider"
)

type impl struct {
	layers []provider.Provider
}

// NewCompound stacks layers from nearest to farthest. A hit in a far layer
// is copied into every nearer layer that missed it.
func NewCompound(layers []provider.Provider) provider.Provider {
	return &impl{layers}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	for idx, lyr := range im.layers {
		val, ttl, err := lyr.Get(c, key)
		if err == provider.ErrNotFound {
			continue
		} else if err != nil {
			c.WithField("err", err).WithField("key", key).WithField("layer", idx).Error("layer.Get failed")
			return nil, time.Duration(0), err
		}
		im.fill(c, idx, key, val, ttl)
		return val, ttl, nil
	}
	return nil, time.Duration(0), provider.ErrNotFound
}

// fill writes into layers [0, upto). failures only cost a later miss
func (im *impl) fill(c ctx.Ctx, upto int, key string, val []byte, ttl time.Duration) {
	for idx := 0; idx < upto; idx++ {
		if err := im.layers[idx].Set(c, key, val, ttl); err != nil {
			c.WithField("err", err).WithField("key", key).WithField("layer", idx).Warn("layer.Set failed")
		}
	}
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	for idx, lyr := range im.layers {
		if err := lyr.Set(c, key, value, ttl); err != nil {
			c.WithField("err", err).WithField("key", key).WithField("layer", idx).Error("layer.Set failed")
			return err
		}
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	for idx, lyr := range im.layers {
		if err := lyr.Del(c, key); err != nil {
			c.WithField("err", err).WithField("key", key).WithField("layer", idx).Error("layer.Del failed")
			return err
		}
	}
	return nil
}
