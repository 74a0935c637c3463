package executor

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/liquidation"
	"golang.org/x/xerrors"
)

type Kind int

const (
	KindFeedUpdate Kind = iota + 1
	KindDirectLiquidation
	KindFlashLoanLiquidation
)

var kindNames = map[Kind]string{
	KindFeedUpdate:           "feedUpdate",
	KindDirectLiquidation:    "directLiquidation",
	KindFlashLoanLiquidation: "flashLoanLiquidation",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

func (k Kind) IsLiquidation() bool {
	return k == KindDirectLiquidation || k == KindFlashLoanLiquidation
}

func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return 0, xerrors.Errorf("%w: unknown executor kind %q", domain.ErrConfig, s)
}

// Authorization is what the auction house releases to the award winner
type Authorization struct {
	SignedDataTimestampCutoff uint32
	Signature                 []byte
}

type Request struct {
	Authorization Authorization
	BidAmount     *big.Int
	SignedData    [][]byte
	// required by the liquidation kinds
	Liquidation *liquidation.Parameters
}

type Receipt struct {
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
}

// Executor performs the awarded action on the target network
type Executor interface {
	Kind() Kind
	Execute(c ctx.Ctx, req Request) (*Receipt, error)
}
