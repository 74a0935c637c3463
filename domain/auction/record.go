package auction

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/x-xyz/oev-searcher/domain"
	"golang.org/x/xerrors"
)

type Status string

const (
	StatusUnplaced     Status = "unplaced"
	StatusPlaced       Status = "placed"
	StatusAwarded      Status = "awarded"
	StatusFulfilled    Status = "fulfilled"
	StatusConfirmed    Status = "confirmed"
	StatusExpired      Status = "expired"
	StatusUnconfirmed  Status = "unconfirmed"
	StatusContradicted Status = "contradicted"
)

var transitions = map[Status][]Status{
	StatusUnplaced:  {StatusPlaced, StatusExpired},
	StatusPlaced:    {StatusAwarded, StatusExpired},
	StatusAwarded:   {StatusFulfilled, StatusUnconfirmed, StatusExpired},
	StatusFulfilled: {StatusConfirmed, StatusUnconfirmed, StatusContradicted, StatusExpired},
}

func (s Status) IsValid() bool {
	switch s {
	case StatusUnplaced, StatusPlaced, StatusAwarded, StatusFulfilled,
		StatusConfirmed, StatusExpired, StatusUnconfirmed, StatusContradicted:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	_, ok := transitions[s]
	return s.IsValid() && !ok
}

func (s Status) CanTransitTo(to Status) bool {
	for _, t := range transitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// NonTerminalStatuses lists statuses that still expect a transition
func NonTerminalStatuses() []Status {
	return []Status{StatusUnplaced, StatusPlaced, StatusAwarded, StatusFulfilled}
}

// BidRecord is the local view of one bid. The auction house stays authoritative.
type BidRecord struct {
	Id                  common.Hash    `json:"id"`
	Topic               common.Hash    `json:"topic"`
	Status              Status         `json:"status"`
	Kind                string         `json:"kind"`
	CycleId             string         `json:"cycleId"`
	Bidder              common.Address `json:"bidder"`
	ChainId             domain.ChainId `json:"chainId"`
	Details             hexutil.Bytes  `json:"details"`
	Amount              *hexutil.Big   `json:"amount"`
	CutoffTimestamp     uint64         `json:"cutoffTimestamp"`
	ExpirationTimestamp uint64         `json:"expirationTimestamp"`
	PlaceTxHash         common.Hash    `json:"placeTxHash,omitempty"`
	AwardSignature      hexutil.Bytes  `json:"awardSignature,omitempty"`
	FulfillmentTxHash   common.Hash    `json:"fulfillmentTxHash,omitempty"`
	ReportTxHash        common.Hash    `json:"reportTxHash,omitempty"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

func NewBidRecord(id, topic common.Hash, details []byte, amount *big.Int, w Window, at time.Time) *BidRecord {
	return &BidRecord{
		Id:                  id,
		Topic:               topic,
		Status:              StatusUnplaced,
		Details:             details,
		Amount:              (*hexutil.Big)(new(big.Int).Set(amount)),
		CutoffTimestamp:     w.CutoffTimestamp,
		ExpirationTimestamp: w.ExpirationTimestamp(),
		CreatedAt:           at,
		UpdatedAt:           at,
	}
}

// Transition is the only way a record changes status
func (r *BidRecord) Transition(to Status, at time.Time) error {
	if !r.Status.CanTransitTo(to) {
		return xerrors.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, r.Status, to)
	}
	r.Status = to
	r.UpdatedAt = at
	return nil
}

// ExpiredAt reports whether the absolute expiration has passed at unix second now
func (r *BidRecord) ExpiredAt(now uint64) bool {
	return now >= r.ExpirationTimestamp
}

func (r *BidRecord) AmountInt() *big.Int {
	if r.Amount == nil {
		return new(big.Int)
	}
	return r.Amount.ToInt()
}
