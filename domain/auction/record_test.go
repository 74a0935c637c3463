package auction

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/oev-searcher/domain"
)

func TestParametersValidate(t *testing.T) {
	req := require.New(t)
	req.NoError(Parameters{DappId: 1, WindowLengthSeconds: 30, BiddingPhaseLengthSeconds: 25, BiddingPhaseBufferSeconds: 3}.Validate())

	for _, p := range []Parameters{
		{DappId: 1, WindowLengthSeconds: 0, BiddingPhaseLengthSeconds: 25},
		{DappId: 1, WindowLengthSeconds: 30, BiddingPhaseLengthSeconds: 31},
		{DappId: 1, WindowLengthSeconds: 30, BiddingPhaseLengthSeconds: 25, BiddingPhaseBufferSeconds: 25},
	} {
		req.True(errors.Is(p.Validate(), domain.ErrConfig), "%+v", p)
	}
}

func TestTransition(t *testing.T) {
	req := require.New(t)
	now := time.Unix(1700000000, 0)
	r := NewBidRecord(common.HexToHash("0x1"), common.HexToHash("0x2"), []byte{1}, big.NewInt(10), Window{CutoffTimestamp: 100, WindowLengthSeconds: 30}, now)
	req.Equal(StatusUnplaced, r.Status)
	req.Equal(uint64(130), r.ExpirationTimestamp)

	for _, s := range []Status{StatusPlaced, StatusAwarded, StatusFulfilled, StatusConfirmed} {
		req.NoError(r.Transition(s, now))
	}
	req.True(r.Status.IsTerminal())

	err := r.Transition(StatusExpired, now)
	req.True(errors.Is(err, domain.ErrInvalidTransition))
	req.Equal(StatusConfirmed, r.Status)
}

func TestTransitionSkippingIsRejected(t *testing.T) {
	req := require.New(t)
	r := &BidRecord{Status: StatusPlaced}
	req.Error(r.Transition(StatusFulfilled, time.Now()))
	req.NoError(r.Transition(StatusExpired, time.Now()))
	req.Error(r.Transition(StatusPlaced, time.Now()))

	r = &BidRecord{Status: StatusAwarded}
	req.NoError(r.Transition(StatusUnconfirmed, time.Now()))
	req.Error((&BidRecord{Status: StatusPlaced}).Transition(StatusUnconfirmed, time.Now()))
}

func TestStatus(t *testing.T) {
	req := require.New(t)
	for _, s := range NonTerminalStatuses() {
		req.False(s.IsTerminal(), s)
	}
	for _, s := range []Status{StatusConfirmed, StatusExpired, StatusUnconfirmed, StatusContradicted} {
		req.True(s.IsTerminal(), s)
	}
	req.False(Status("bogus").IsValid())
	req.False(Status("bogus").IsTerminal())
}

func TestFindAllOptions(t *testing.T) {
	req := require.New(t)
	_, err := GetFindAllOptions(WithStatus("bogus"))
	req.Equal(domain.ErrBadParamInput, err)

	opts, err := GetFindAllOptions(WithStatus(StatusPlaced, StatusAwarded), WithLimit(5))
	req.NoError(err)
	req.Equal(5, opts.Limit)
	req.True(opts.Match(&BidRecord{Status: StatusAwarded}))
	req.False(opts.Match(&BidRecord{Status: StatusConfirmed}))
}
