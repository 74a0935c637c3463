package chain

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	bCtx "github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/domain"
)

var ErrUnsupportedChain = errors.New("unsupported chain")

// Client reaches every configured network with one signing account
type Client interface {
	Sender() common.Address
	Call(c bCtx.Ctx, chainId domain.ChainId, addr common.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error)
	BlockNumber(c bCtx.Ctx, chainId domain.ChainId) (uint64, error)
	// FilterTrailingLogs scans the last blocks blocks of chainId
	FilterTrailingLogs(c bCtx.Ctx, chainId domain.ChainId, q ethereum.FilterQuery, blocks uint64) ([]types.Log, error)
	// Transact signs one transaction to to and waits for its receipt. A reverted
	// estimation or receipt yields domain.ErrOnChainRevert. domain.ErrSubmission
	// means nothing reached the network and the call may be repeated. Once signed,
	// failures carry a *domain.TxError, and domain.ErrTxInFlight means the
	// transaction may still be mined.
	Transact(c bCtx.Ctx, chainId domain.ChainId, to common.Address, value *big.Int, data []byte, opts ...TxOption) (*types.Receipt, error)
	// Ping checks every network answers
	Ping(c bCtx.Ctx) error
}

type txOptions struct {
	nonce *uint64
}

type TxOption func(*txOptions)

// WithNonce reuses nonce instead of reading the pending one, so a repeated call
// replaces rather than adds a transaction
func WithNonce(nonce uint64) TxOption {
	return func(o *txOptions) {
		o.nonce = &nonce
	}
}
