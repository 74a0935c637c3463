package cache

import (
	"errors"
	"time"

	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/base/metrics"
	"github.com/x-xyz/oev-searcher/service/cache/provider"
)

var (
	ErrNotFound = errors.New("Cache not found")
)

// OneTimeGetter loads the value on a miss
type OneTimeGetter func() (interface{}, error)

// Service stores JSON values under Pfx on top of a raw provider
type Service interface {
	// GetByFunc fills container from the cache, or from getter and then the cache
	GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
}

type ServiceConfig struct {
	Ttl   time.Duration
	Pfx   string
	Cache provider.Provider
	// optional, hit and miss counters are bumped when set
	Metrics metrics.Service
}
