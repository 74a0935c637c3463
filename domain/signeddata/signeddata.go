package signeddata

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/x-xyz/oev-searcher/base/ctx"
)

// Source is one airnode contributing to a feed
type Source struct {
	Airnode    common.Address `json:"airnode"`
	TemplateId common.Hash    `json:"templateId"`
}

// OevTemplateId is the template id the airnode signs OEV observations with
func (s Source) OevTemplateId() common.Hash {
	return crypto.Keccak256Hash(s.TemplateId.Bytes())
}

type Feed struct {
	Name       string      `json:"name"`
	DataFeedId common.Hash `json:"dataFeedId"`
	Sources    []Source    `json:"sources"`
}

type Observation struct {
	Airnode      common.Address
	TemplateId   common.Hash
	Timestamp    uint64
	EncodedValue []byte
	Signature    []byte
}

// SourcePayload is the winning observation of one source, ready for submission
type SourcePayload struct {
	Source      Source
	Observation Observation
	Value       decimal.Decimal
	Payload     []byte
}

type Aggregate struct {
	Feed     Feed
	Payloads []SourcePayload
	Value    decimal.Decimal
}

// SignedData returns the payloads in registry order
func (a *Aggregate) SignedData() [][]byte {
	res := make([][]byte, 0, len(a.Payloads))
	for _, p := range a.Payloads {
		res = append(res, p.Payload)
	}
	return res
}

type FeedRegistry interface {
	Resolve(c ctx.Ctx, feedName string) (*Feed, error)
}

// SourceClient returns observations in the order the source published them
type SourceClient interface {
	GetObservations(c ctx.Ctx, airnode common.Address) ([]Observation, error)
}

type Aggregator interface {
	Fetch(c ctx.Ctx, feedName string) (*Aggregate, error)
	// FetchBefore ignores observations newer than cutoff
	FetchBefore(c ctx.Ctx, feedName string, cutoff uint64) (*Aggregate, error)
}
