package auction

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/liquidation"
	"golang.org/x/xerrors"
)

// Parameters identify one auction deployment and its recurring clock
type Parameters struct {
	MajorVersion              uint64 `mapstructure:"majorVersion"`
	DappId                    uint64 `mapstructure:"dappId" validate:"required"`
	WindowLengthSeconds       uint32 `mapstructure:"windowLengthSeconds" validate:"gt=0"`
	BiddingPhaseLengthSeconds uint32 `mapstructure:"biddingPhaseLengthSeconds" validate:"gt=0"`
	BiddingPhaseBufferSeconds uint32 `mapstructure:"biddingPhaseBufferSeconds"`
}

func (p Parameters) Validate() error {
	if p.WindowLengthSeconds == 0 {
		return xerrors.Errorf("%w: windowLengthSeconds must be positive", domain.ErrConfig)
	}
	if p.BiddingPhaseLengthSeconds == 0 || p.BiddingPhaseLengthSeconds > p.WindowLengthSeconds {
		return xerrors.Errorf("%w: biddingPhaseLengthSeconds must be within (0, %d]", domain.ErrConfig, p.WindowLengthSeconds)
	}
	if p.BiddingPhaseBufferSeconds >= p.BiddingPhaseLengthSeconds {
		return xerrors.Errorf("%w: biddingPhaseBufferSeconds must be below biddingPhaseLengthSeconds", domain.ErrConfig)
	}
	return nil
}

// Window is one instance of the recurring auction
type Window struct {
	CutoffTimestamp     uint64
	WindowLengthSeconds uint32
}

// ExpirationTimestamp is the absolute deadline of a bid placed into the window
func (w Window) ExpirationTimestamp() uint64 {
	return w.CutoffTimestamp + uint64(w.WindowLengthSeconds)
}

// OnChainStatus mirrors the auction house BidStatus enum
type OnChainStatus uint8

const (
	OnChainStatusNone OnChainStatus = iota
	OnChainStatusPlaced
	OnChainStatusAwarded
	OnChainStatusFulfillmentReported
	OnChainStatusFulfillmentConfirmed
	OnChainStatusFulfillmentContradicted
)

type PlaceBidRequest struct {
	Topic               common.Hash
	ChainId             *big.Int
	Amount              *big.Int
	Details             []byte
	MaxCollateralAmount *big.Int
	MaxProtocolFee      *big.Int
	ExpirationTimestamp uint64
}

type BidState struct {
	Status              OnChainStatus
	ExpirationTimestamp uint32
	CollateralAmount    *big.Int
	ProtocolFeeAmount   *big.Int
}

type AwardEvent struct {
	Bidder        common.Address
	Topic         common.Hash
	Id            common.Hash
	Signature     []byte
	BidderBalance *big.Int
	BlockNumber   uint64
	TxHash        common.Hash
}

type FulfillmentOutcome int

const (
	FulfillmentConfirmed FulfillmentOutcome = iota + 1
	FulfillmentContradicted
)

type FulfillmentEvent struct {
	Outcome       FulfillmentOutcome
	Bidder        common.Address
	Topic         common.Hash
	Id            common.Hash
	BidderBalance *big.Int
	BlockNumber   uint64
	TxHash        common.Hash
}

// Authority is the auction house as seen by a bidder
type Authority interface {
	Bidder() common.Address
	PlaceBid(c ctx.Ctx, req PlaceBidRequest) (common.Hash, error)
	GetBidStatus(c ctx.Ctx, id common.Hash) (*BidState, error)
	QueryAwardEvents(c ctx.Ctx, topic, id common.Hash, blocks uint64) ([]AwardEvent, error)
	ReportFulfillment(c ctx.Ctx, topic, detailsHash, fulfillmentTx common.Hash) (common.Hash, error)
	QueryFulfillmentEvents(c ctx.Ctx, topic, id common.Hash, blocks uint64) ([]FulfillmentEvent, error)
}

type BidRepo interface {
	Store(c ctx.Ctx, r *BidRecord) error
	FindOne(c ctx.Ctx, id common.Hash) (*BidRecord, error)
	FindByTopic(c ctx.Ctx, topic common.Hash) ([]*BidRecord, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*BidRecord, error)
}

type FindAllOptions struct {
	Statuses []Status
	Limit    int
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, o := range opts {
		if err := o(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithStatus(statuses ...Status) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		for _, s := range statuses {
			if !s.IsValid() {
				return domain.ErrBadParamInput
			}
		}
		o.Statuses = statuses
		return nil
	}
}

func WithLimit(limit int) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		if limit < 0 {
			return domain.ErrBadParamInput
		}
		o.Limit = limit
		return nil
	}
}

// Match reports whether r passes the status filter
func (o FindAllOptions) Match(r *BidRecord) bool {
	if len(o.Statuses) == 0 {
		return true
	}
	for _, s := range o.Statuses {
		if r.Status == s {
			return true
		}
	}
	return false
}

// CycleRequest describes what one bid cycle is after
type CycleRequest struct {
	Amount      *big.Int
	FeedName    string
	Beneficiary common.Address
	// nil for plain feed updates
	Liquidation *liquidation.Target
}

type Usecase interface {
	// Run executes one full bid cycle
	Run(c ctx.Ctx, req CycleRequest) (*BidRecord, error)
	// Serve runs cycles back to back until c is done or an unexpected error occurs
	Serve(c ctx.Ctx, req CycleRequest) error
	// Reconcile settles persisted non-terminal records against the auction house
	Reconcile(c ctx.Ctx) error

	FindOne(c ctx.Ctx, id common.Hash) (*BidRecord, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*BidRecord, error)
}
