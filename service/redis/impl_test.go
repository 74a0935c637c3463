package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/base/metrics"
)

func TestNoPool(t *testing.T) {
	req := require.New(t)
	r := New("test", metrics.New("redis"), &Pools{})
	c := ctx.Background()

	req.Equal("test", r.Name())
	req.Equal(ErrNoPool, r.Ping(c))
	_, err := r.Get(c, "bid:0x01")
	req.Equal(ErrNoPool, err)
	req.Equal(ErrNoPool, r.Set(c, "bid:0x01", []byte("v"), time.Second))
	req.NoError(r.SAdd(c, "bidIndex"))

	_, err = r.Del(c)
	req.Error(err)
}
