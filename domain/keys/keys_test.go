package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "bid:0x01", RedisKey(PfxBid, "0x01"))
	assert.Equal(t, "searcher:bidTopic:0xaa", RedisKey("searcher", PfxBidTopic, "0xaa"))
}

func TestGetPrefix(t *testing.T) {
	assert.Equal(t, "", GetPrefix("bid"))
	assert.Equal(t, "bid", GetPrefix("bid:0x01"))
	assert.Equal(t, "searcher:bidTopic", GetPrefix("searcher:bidTopic:0xaa"))
}
