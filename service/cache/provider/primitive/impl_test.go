package primitive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/service/cache/provider"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	im *impl
}

func (ts *testsuite) SetupTest() {
	ts.im = NewPrimitive("test", 1).(*impl)
}

func (ts *testsuite) TearDownTest() {
	ts.im.cache.Clear()
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSetGet() {
	k := "feed:ETH/USD"
	v := []byte("value")

	ts.NoError(ts.im.Set(mockCtx, k, v, time.Minute))
	r, ttl, e := ts.im.Get(mockCtx, k)
	ts.NoError(e)
	ts.Equal(v, r)
	ts.True(ttl > 0 && ttl <= time.Minute, ttl)

	_, _, e = ts.im.Get(mockCtx, "feed:missing")
	ts.Equal(provider.ErrNotFound, e)
}

func (ts *testsuite) TestDel() {
	ts.NoError(ts.im.Set(mockCtx, "k", []byte("v"), time.Minute))
	ts.NoError(ts.im.Del(mockCtx, "k"))
	_, _, e := ts.im.Get(mockCtx, "k")
	ts.Equal(provider.ErrNotFound, e)
}
