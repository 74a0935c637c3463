package auctionhouse

import (
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/x-xyz/oev-searcher/base/abi"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/base/log"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/auction"
	"github.com/x-xyz/oev-searcher/service/chain"
	"golang.org/x/xerrors"
)

type impl struct {
	chainClient chain.Client
	chainId     domain.ChainId
	address     common.Address
}

func New(cfg *Config) auction.Authority {
	return &impl{
		chainClient: cfg.ChainClient,
		chainId:     cfg.ChainId,
		address:     cfg.Address,
	}
}

func (im *impl) Bidder() common.Address {
	return im.chainClient.Sender()
}

func (im *impl) PlaceBid(c ctx.Ctx, req auction.PlaceBidRequest) (common.Hash, error) {
	if req.ExpirationTimestamp > math.MaxUint32 {
		return common.Hash{}, xerrors.Errorf("%w: expiration %d overflows uint32", domain.ErrBadParamInput, req.ExpirationTimestamp)
	}
	data, err := abi.OevAuctionHouseABI.Pack(
		abi.PlaceBidWithExpiration,
		[32]byte(req.Topic),
		req.ChainId,
		req.Amount,
		req.Details,
		req.MaxCollateralAmount,
		req.MaxProtocolFee,
		uint32(req.ExpirationTimestamp),
	)
	if err != nil {
		c.WithField("err", err).Error("abi.Pack placeBidWithExpiration failed")
		return common.Hash{}, err
	}
	return im.transact(c, data)
}

func (im *impl) ReportFulfillment(c ctx.Ctx, topic, detailsHash, fulfillmentTx common.Hash) (common.Hash, error) {
	data, err := abi.OevAuctionHouseABI.Pack(
		abi.ReportFulfillment,
		[32]byte(topic),
		[32]byte(detailsHash),
		fulfillmentTx.Bytes(),
	)
	if err != nil {
		c.WithField("err", err).Error("abi.Pack reportFulfillment failed")
		return common.Hash{}, err
	}
	return im.transact(c, data)
}

func (im *impl) transact(c ctx.Ctx, data []byte) (common.Hash, error) {
	receipt, err := im.chainClient.Transact(c, im.chainId, im.address, big.NewInt(0), data)
	if err != nil {
		c.WithField("err", err).Error("chainClient.Transact failed")
		return common.Hash{}, err
	}
	return receipt.TxHash, nil
}

func (im *impl) GetBidStatus(c ctx.Ctx, id common.Hash) (*auction.BidState, error) {
	res, err := im.chainClient.Call(c, im.chainId, im.address, abi.OevAuctionHouseABI, abi.Bids, [32]byte(id))
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"bidId": id,
		}).Error("chainClient.Call bids failed")
		return nil, err
	}
	if len(res) != 4 {
		return nil, xerrors.Errorf("bids returned %d values", len(res))
	}
	return &auction.BidState{
		Status:              auction.OnChainStatus(res[0].(uint8)),
		ExpirationTimestamp: res[1].(uint32),
		CollateralAmount:    res[2].(*big.Int),
		ProtocolFeeAmount:   res[3].(*big.Int),
	}, nil
}

// query filters logs of event by every indexed argument
func (im *impl) query(c ctx.Ctx, event string, topic, id common.Hash, blocks uint64) ([]types.Log, error) {
	q := ethereum.FilterQuery{
		Addresses: []common.Address{im.address},
		Topics: [][]common.Hash{
			{abi.OevAuctionHouseABI.Events[event].ID},
			{common.BytesToHash(im.Bidder().Bytes())},
			{topic},
			{id},
		},
	}
	logs, err := im.chainClient.FilterTrailingLogs(c, im.chainId, q, blocks)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"event": event,
		}).Error("chainClient.FilterTrailingLogs failed")
		return nil, err
	}

	res := make([]types.Log, 0, len(logs))
	for _, lg := range logs {
		// nodes may ignore topic filters, keep exact (topic, id) matches only
		if lg.Removed || len(lg.Topics) != 4 || lg.Topics[2] != topic || lg.Topics[3] != id {
			continue
		}
		res = append(res, lg)
	}
	return res, nil
}

func (im *impl) QueryAwardEvents(c ctx.Ctx, topic, id common.Hash, blocks uint64) ([]auction.AwardEvent, error) {
	logs, err := im.query(c, abi.AwardedBidEvent, topic, id, blocks)
	if err != nil {
		return nil, err
	}

	res := []auction.AwardEvent{}
	for _, lg := range logs {
		out, err := abi.OevAuctionHouseABI.Unpack(abi.AwardedBidEvent, lg.Data)
		if err != nil {
			c.WithFields(log.Fields{
				"err":    err,
				"txHash": lg.TxHash,
			}).Error("abi.Unpack AwardedBid failed")
			return nil, err
		}
		res = append(res, auction.AwardEvent{
			Bidder:        common.BytesToAddress(lg.Topics[1].Bytes()),
			Topic:         lg.Topics[2],
			Id:            lg.Topics[3],
			Signature:     out[0].([]byte),
			BidderBalance: out[1].(*big.Int),
			BlockNumber:   lg.BlockNumber,
			TxHash:        lg.TxHash,
		})
	}
	return res, nil
}

func (im *impl) QueryFulfillmentEvents(c ctx.Ctx, topic, id common.Hash, blocks uint64) ([]auction.FulfillmentEvent, error) {
	res := []auction.FulfillmentEvent{}
	for _, e := range []struct {
		name    string
		outcome auction.FulfillmentOutcome
	}{
		{abi.ConfirmedFulfillmentEvent, auction.FulfillmentConfirmed},
		{abi.ContradictedFulfillmentEvent, auction.FulfillmentContradicted},
	} {
		logs, err := im.query(c, e.name, topic, id, blocks)
		if err != nil {
			return nil, err
		}
		for _, lg := range logs {
			out, err := abi.OevAuctionHouseABI.Unpack(e.name, lg.Data)
			if err != nil {
				c.WithFields(log.Fields{
					"err":    err,
					"event":  e.name,
					"txHash": lg.TxHash,
				}).Error("abi.Unpack failed")
				return nil, err
			}
			res = append(res, auction.FulfillmentEvent{
				Outcome:       e.outcome,
				Bidder:        common.BytesToAddress(lg.Topics[1].Bytes()),
				Topic:         lg.Topics[2],
				Id:            lg.Topics[3],
				BidderBalance: out[0].(*big.Int),
				BlockNumber:   lg.BlockNumber,
				TxHash:        lg.TxHash,
			})
		}
	}
	return res, nil
}
