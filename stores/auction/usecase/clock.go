package usecase

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/x-xyz/oev-searcher/domain/auction"
)

// WindowOffset shifts the window grid of a dapp: keccak256(uint256 dappId) mod windowLength
func WindowOffset(dappId uint64, windowLength uint32) uint64 {
	h := crypto.Keccak256(math.U256Bytes(new(big.Int).SetUint64(dappId)))
	return new(big.Int).Mod(new(big.Int).SetBytes(h), big.NewInt(int64(windowLength))).Uint64()
}

// ComputeWindow returns the window a bid placed at unix second now belongs to.
// When less than the buffer is left before the bidding phase ends, the next
// window is chosen, so the cutoff is always later than now.
func ComputeWindow(now uint64, p auction.Parameters) auction.Window {
	window := uint64(p.WindowLengthSeconds)
	offset := WindowOffset(p.DappId, p.WindowLengthSeconds)

	elapsed := (now%window + window - offset) % window
	start := now - elapsed
	biddingEnd := start + uint64(p.BiddingPhaseLengthSeconds)

	cutoff := biddingEnd
	if biddingEnd < now+uint64(p.BiddingPhaseBufferSeconds) {
		cutoff += window
	}
	return auction.Window{
		CutoffTimestamp:     cutoff,
		WindowLengthSeconds: p.WindowLengthSeconds,
	}
}

func ComputeCutoff(now uint64, p auction.Parameters) uint64 {
	return ComputeWindow(now, p).CutoffTimestamp
}
