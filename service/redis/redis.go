package redis

import (
	"errors"
	"time"

	"github.com/x-xyz/oev-searcher/base/ctx"
)

// Forever means the key never expires
const Forever = time.Duration(-1)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis: key not found")
	// ErrNoPool is returned when no pool serves the command
	ErrNoPool = errors.New("redis: no pool")
)

// Service is the subset of redis commands the searcher relies on
type Service interface {
	Name() string
	Ping(context ctx.Ctx) error
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, keys ...string) (int, error)
	// TTL returns the remaining seconds, -1 for no expire and -2 for no key
	TTL(context ctx.Ctx, key string) (int, error)
	SAdd(context ctx.Ctx, key string, member ...string) error
	SMembers(context ctx.Ctx, key string) ([]string, error)
}
