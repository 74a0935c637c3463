package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/x-xyz/oev-searcher/domain/auction"
)

var params = auction.Parameters{
	MajorVersion:              1,
	DappId:                    1,
	WindowLengthSeconds:       30,
	BiddingPhaseLengthSeconds: 25,
	BiddingPhaseBufferSeconds: 3,
}

// with dapp 1 windows start at 18 mod 30
const (
	windowStart = uint64(1700000028)
	biddingEnd  = windowStart + 25
)

func TestWindowOffset(t *testing.T) {
	require.Equal(t, uint64(18), WindowOffset(1, 30))
	require.Equal(t, uint64(26), WindowOffset(7, 30))
}

func TestComputeCutoffBuffer(t *testing.T) {
	req := require.New(t)

	req.Equal(biddingEnd, ComputeCutoff(windowStart, params))
	req.Equal(biddingEnd, ComputeCutoff(biddingEnd-3, params), "3s before the bidding phase ends")
	req.Equal(biddingEnd+30, ComputeCutoff(biddingEnd-2, params), "2s before the bidding phase ends")
	req.Equal(biddingEnd+30, ComputeCutoff(biddingEnd, params))
	req.Equal(biddingEnd+30, ComputeCutoff(windowStart+29, params))
	req.Equal(biddingEnd+30, ComputeCutoff(windowStart+30, params))
}

func TestComputeCutoffBounds(t *testing.T) {
	req := require.New(t)
	offset := WindowOffset(params.DappId, params.WindowLengthSeconds)
	aligned := (offset + uint64(params.BiddingPhaseLengthSeconds)) % uint64(params.WindowLengthSeconds)

	prev := uint64(0)
	for now := windowStart - 100; now < windowStart+200; now++ {
		cutoff := ComputeCutoff(now, params)
		req.Greater(cutoff, now)
		req.Equal(aligned, cutoff%uint64(params.WindowLengthSeconds))
		req.GreaterOrEqual(cutoff, prev, "non decreasing")
		req.LessOrEqual(cutoff-now, uint64(params.WindowLengthSeconds+params.BiddingPhaseLengthSeconds))
		prev = cutoff
	}
}

func TestComputeCutoffStable(t *testing.T) {
	req := require.New(t)
	// every second from 2s before the previous cutoff up to 3s before this one maps to it
	for now := biddingEnd - 32; now <= biddingEnd-3; now++ {
		req.Equal(biddingEnd, ComputeCutoff(now, params), now)
	}
}

func TestComputeWindow(t *testing.T) {
	w := ComputeWindow(windowStart, params)
	require.Equal(t, biddingEnd, w.CutoffTimestamp)
	require.Equal(t, uint32(30), w.WindowLengthSeconds)
	require.Equal(t, biddingEnd+30, w.ExpirationTimestamp())
}
