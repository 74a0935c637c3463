package abi

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestParsedABIs(t *testing.T) {
	req := require.New(t)
	for _, name := range []string{PlaceBidWithExpiration, Bids, ReportFulfillment} {
		_, ok := OevAuctionHouseABI.Methods[name]
		req.True(ok, name)
	}
	for _, name := range []string{AwardedBidEvent, ConfirmedFulfillmentEvent, ContradictedFulfillmentEvent} {
		_, ok := OevAuctionHouseABI.Events[name]
		req.True(ok, name)
	}
	for _, a := range []struct {
		name string
		n    int
	}{
		{"feed", len(FeedUpdaterABI.Methods[PayBidAndUpdateFeed].Inputs[0].Type.TupleElems[3].TupleElems)},
		{"direct", len(LiquidatorABI.Methods[PayBidAndUpdateFeed].Inputs[0].Type.TupleElems[3].TupleElems)},
		{"flash", len(FlashLiquidatorABI.Methods[PayBidAndUpdateFeed].Inputs[0].Type.TupleElems[3].TupleElems)},
	} {
		switch a.name {
		case "feed":
			req.Equal(1, a.n)
		case "direct":
			req.Equal(5, a.n)
		case "flash":
			req.Equal(2, a.n)
		}
	}
	req.True(FeedUpdaterABI.Methods[PayBidAndUpdateFeed].IsPayable())
}

func TestBidDetailsRoundTrip(t *testing.T) {
	req := require.New(t)
	beneficiary := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	nonce := common.HexToHash("0x01")
	packed, err := BidDetailsArgs.Pack(beneficiary, nonce)
	req.NoError(err)
	req.Len(packed, 64)

	out, err := BidDetailsArgs.Unpack(packed)
	req.NoError(err)
	req.Equal(beneficiary, out[0].(common.Address))
	req.Equal([32]byte(nonce), out[1].([32]byte))
}

func TestSignedDataArgs(t *testing.T) {
	packed, err := SignedDataArgs.Pack(
		common.HexToAddress("0x01"),
		[32]byte(common.HexToHash("0x02")),
		big.NewInt(1700000000),
		[]byte{1, 2},
		[]byte{3},
	)
	require.NoError(t, err)
	// five head words plus two dynamic tails
	require.Equal(t, 32*5+64+64, len(packed))
}
