package auctionhouse

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/oev-searcher/base/abi"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/auction"
	chainMocks "github.com/x-xyz/oev-searcher/service/chain/mocks"
)

var (
	mockCtx = ctx.Background()

	oevChain = domain.ChainId(4913)
	house    = common.HexToAddress("0x34f13A5C0AD750d212267bcBc230c87AEFD35CC5")
	bidder   = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	topic    = common.HexToHash("0x7010")
	bidId    = common.HexToHash("0xb1d")
)

type testsuite struct {
	suite.Suite
	chain *chainMocks.Client
	im    auction.Authority
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) SetupTest() {
	ts.chain = &chainMocks.Client{}
	ts.chain.On("Sender").Return(bidder).Maybe()
	ts.im = New(&Config{ChainClient: ts.chain, ChainId: oevChain, Address: house})
}

func (ts *testsuite) TearDownTest() {
	ts.chain.AssertExpectations(ts.T())
}

func decodeCall(data []byte) (string, []interface{}) {
	method, err := abi.OevAuctionHouseABI.MethodById(data[:4])
	if err != nil {
		return "", nil
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return "", nil
	}
	return method.Name, args
}

func (ts *testsuite) TestPlaceBid() {
	txHash := common.HexToHash("0xaa")
	details := []byte{1, 2, 3}
	ts.chain.On("Transact", mock.Anything, oevChain, house, big.NewInt(0), mock.MatchedBy(func(data []byte) bool {
		name, args := decodeCall(data)
		return name == abi.PlaceBidWithExpiration &&
			args[0].([32]byte) == [32]byte(topic) &&
			args[1].(*big.Int).Int64() == 137 &&
			args[2].(*big.Int).Int64() == 1000 &&
			string(args[3].([]byte)) == string(details) &&
			args[4].(*big.Int).Cmp(domain.MaxUint256) == 0 &&
			args[5].(*big.Int).Cmp(domain.MaxUint256) == 0 &&
			args[6].(uint32) == 1700000030
	})).Return(&types.Receipt{TxHash: txHash, Status: types.ReceiptStatusSuccessful}, nil).Once()

	res, err := ts.im.PlaceBid(mockCtx, auction.PlaceBidRequest{
		Topic:               topic,
		ChainId:             big.NewInt(137),
		Amount:              big.NewInt(1000),
		Details:             details,
		MaxCollateralAmount: domain.MaxUint256,
		MaxProtocolFee:      domain.MaxUint256,
		ExpirationTimestamp: 1700000030,
	})
	ts.NoError(err)
	ts.Equal(txHash, res)
}

func (ts *testsuite) TestPlaceBidFailed() {
	ts.chain.On("Transact", mock.Anything, oevChain, house, big.NewInt(0), mock.Anything).
		Return(nil, domain.ErrOnChainRevert).Once()

	_, err := ts.im.PlaceBid(mockCtx, auction.PlaceBidRequest{
		Topic:               topic,
		ChainId:             big.NewInt(137),
		Amount:              big.NewInt(1000),
		MaxCollateralAmount: domain.MaxUint256,
		MaxProtocolFee:      domain.MaxUint256,
		ExpirationTimestamp: 1700000030,
	})
	ts.True(errors.Is(err, domain.ErrOnChainRevert))
}

func (ts *testsuite) TestReportFulfillment() {
	detailsHash := common.HexToHash("0xde")
	fulfillment := common.HexToHash("0xf0")
	ts.chain.On("Transact", mock.Anything, oevChain, house, big.NewInt(0), mock.MatchedBy(func(data []byte) bool {
		name, args := decodeCall(data)
		return name == abi.ReportFulfillment &&
			args[0].([32]byte) == [32]byte(topic) &&
			args[1].([32]byte) == [32]byte(detailsHash) &&
			common.BytesToHash(args[2].([]byte)) == fulfillment
	})).Return(&types.Receipt{TxHash: common.HexToHash("0xbb")}, nil).Once()

	res, err := ts.im.ReportFulfillment(mockCtx, topic, detailsHash, fulfillment)
	ts.NoError(err)
	ts.Equal(common.HexToHash("0xbb"), res)
}

func (ts *testsuite) TestGetBidStatus() {
	ts.chain.On("Call", mock.Anything, oevChain, house, mock.Anything, abi.Bids, [32]byte(bidId)).
		Return([]interface{}{uint8(2), uint32(1700000030), big.NewInt(5), big.NewInt(6)}, nil).Once()

	res, err := ts.im.GetBidStatus(mockCtx, bidId)
	ts.Require().NoError(err)
	ts.Equal(auction.OnChainStatusAwarded, res.Status)
	ts.Equal(uint32(1700000030), res.ExpirationTimestamp)
	ts.Equal(int64(5), res.CollateralAmount.Int64())
}

func awardedLog(t, id common.Hash, sig []byte) types.Log {
	event := abi.OevAuctionHouseABI.Events[abi.AwardedBidEvent]
	data, err := event.Inputs.NonIndexed().Pack(sig, big.NewInt(42))
	if err != nil {
		panic(err)
	}
	return types.Log{
		Address:     house,
		Topics:      []common.Hash{event.ID, common.BytesToHash(bidder.Bytes()), t, id},
		Data:        data,
		BlockNumber: 12,
		TxHash:      common.HexToHash("0xe0"),
	}
}

func (ts *testsuite) TestQueryAwardEvents() {
	sig := []byte{9, 9, 9}
	var query ethereum.FilterQuery
	ts.chain.On("FilterTrailingLogs", mock.Anything, oevChain, mock.Anything, uint64(10)).
		Run(func(args mock.Arguments) {
			query = args.Get(2).(ethereum.FilterQuery)
		}).
		Return([]types.Log{
			awardedLog(topic, bidId, sig),
			// other bid in the same topic
			awardedLog(topic, common.HexToHash("0xdead"), sig),
		}, nil).Once()

	res, err := ts.im.QueryAwardEvents(mockCtx, topic, bidId, 10)
	ts.Require().NoError(err)
	ts.Require().Len(res, 1)
	ts.Equal(sig, res[0].Signature)
	ts.Equal(bidder, res[0].Bidder)
	ts.Equal(bidId, res[0].Id)
	ts.Equal(int64(42), res[0].BidderBalance.Int64())
	ts.Equal(uint64(12), res[0].BlockNumber)

	ts.Equal([]common.Address{house}, query.Addresses)
	ts.Require().Len(query.Topics, 4)
	ts.Equal(abi.OevAuctionHouseABI.Events[abi.AwardedBidEvent].ID, query.Topics[0][0])
	ts.Equal(topic, query.Topics[2][0])
	ts.Equal(bidId, query.Topics[3][0])
}

func (ts *testsuite) TestQueryFulfillmentEvents() {
	contradicted := abi.OevAuctionHouseABI.Events[abi.ContradictedFulfillmentEvent]
	data, err := contradicted.Inputs.NonIndexed().Pack(big.NewInt(1), big.NewInt(2))
	ts.Require().NoError(err)

	isEvent := func(name string) interface{} {
		return mock.MatchedBy(func(q ethereum.FilterQuery) bool {
			return q.Topics[0][0] == abi.OevAuctionHouseABI.Events[name].ID
		})
	}
	ts.chain.On("FilterTrailingLogs", mock.Anything, oevChain, isEvent(abi.ConfirmedFulfillmentEvent), uint64(10)).
		Return([]types.Log{}, nil).Once()
	ts.chain.On("FilterTrailingLogs", mock.Anything, oevChain, isEvent(abi.ContradictedFulfillmentEvent), uint64(10)).
		Return([]types.Log{{
			Topics: []common.Hash{contradicted.ID, common.BytesToHash(bidder.Bytes()), topic, bidId},
			Data:   data,
		}}, nil).Once()

	res, err := ts.im.QueryFulfillmentEvents(mockCtx, topic, bidId, 10)
	ts.Require().NoError(err)
	ts.Require().Len(res, 1)
	ts.Equal(auction.FulfillmentContradicted, res[0].Outcome)
	ts.Equal(int64(1), res[0].BidderBalance.Int64())
}

func (ts *testsuite) TestQueryFailed() {
	ts.chain.On("FilterTrailingLogs", mock.Anything, oevChain, mock.Anything, uint64(10)).
		Return(nil, errors.New("rpc down")).Once()

	_, err := ts.im.QueryAwardEvents(mockCtx, topic, bidId, 10)
	ts.Error(err)
}
