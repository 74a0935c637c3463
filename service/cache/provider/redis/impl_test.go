package redis

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/service/cache/provider"
	"github.com/x-xyz/oev-searcher/service/redis"
	mockRedis "github.com/x-xyz/oev-searcher/service/redis/mocks"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	im    *impl
	redis *mockRedis.Service
}

func (ts *testsuite) SetupTest() {
	ts.redis = &mockRedis.Service{}
	ts.im = NewRedis(ts.redis).(*impl)
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSet() {
	k := "feed:ETH/USD"
	v := []byte("value")

	ts.redis.On("Set", mockCtx, k, v, time.Minute).Return(nil).Once()
	ts.NoError(ts.im.Set(mockCtx, k, v, time.Minute))

	ts.redis.On("Set", mockCtx, k, v, redis.Forever).Return(nil).Once()
	ts.NoError(ts.im.Set(mockCtx, k, v, 0))
	ts.redis.AssertExpectations(ts.T())
}

func (ts *testsuite) TestGet() {
	k := "feed:ETH/USD"
	v := []byte("value")

	ts.redis.On("Get", mockCtx, k).Return(nil, redis.ErrNotFound).Once()
	res, _, err := ts.im.Get(mockCtx, k)
	ts.Nil(res)
	ts.Equal(provider.ErrNotFound, err)

	ts.redis.On("Get", mockCtx, k).Return(v, nil).Once()
	ts.redis.On("TTL", mockCtx, k).Return(60, nil).Once()
	res, ttl, err := ts.im.Get(mockCtx, k)
	ts.NoError(err)
	ts.Equal(v, res)
	ts.Equal(time.Minute, ttl)

	ts.redis.On("Get", mockCtx, k).Return(v, nil).Once()
	ts.redis.On("TTL", mockCtx, k).Return(-1, nil).Once()
	_, ttl, err = ts.im.Get(mockCtx, k)
	ts.NoError(err)
	ts.Equal(time.Duration(0), ttl)

	boom := errors.New("boom")
	ts.redis.On("Get", mockCtx, k).Return(nil, boom).Once()
	_, _, err = ts.im.Get(mockCtx, k)
	ts.Equal(boom, err)
}

func (ts *testsuite) TestDel() {
	ts.redis.On("Del", mockCtx, "k").Return(1, nil).Once()
	ts.NoError(ts.im.Del(mockCtx, "k"))
}
