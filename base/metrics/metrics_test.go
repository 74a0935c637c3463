package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTag(t *testing.T) {
	require.Nil(t, parseTag(nil))
	require.Equal(t, []string{"outcome:confirmed", "kind:feedUpdate"}, parseTag([]string{"outcome", "confirmed", "kind", "feedUpdate"}))
	require.Panics(t, func() { parseTag([]string{"odd"}) })
}

func TestBumpWithoutAgent(t *testing.T) {
	m := New("test", WithoutPodName())
	require.NotPanics(t, func() {
		m.BumpSum("cycle.count", 1, "outcome", "confirmed")
		m.BumpAvg("aggregate.sources", 3)
		m.BumpHistogram("bytes", 10)
		m.BumpTime("award.time").End()
	})
	_, ok := ddClients[0].(*LogClient)
	require.True(t, ok)
}
