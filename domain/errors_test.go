package domain

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestErrorClassification(t *testing.T) {
	req := require.New(t)

	wrapped := xerrors.Errorf("await award: %w", ErrWindowExpired)
	req.True(IsRaceLoss(wrapped))
	req.False(IsProtocolError(wrapped))

	rejected := xerrors.Errorf("submit: %w", xerrors.Errorf("%w: insufficient collateral", ErrBidRejected))
	req.True(IsProtocolError(rejected))
	req.False(IsRaceLoss(rejected))

	execFailed := xerrors.Errorf("%w: %v", ErrActionExecution, ErrOnChainRevert)
	req.True(IsProtocolError(execFailed))

	req.False(IsRaceLoss(errors.New("dial tcp: connection refused")))
	req.False(IsProtocolError(errors.New("dial tcp: connection refused")))
	req.False(IsTransient(errors.New("dial tcp: connection refused")))

	transient := xerrors.Errorf("%w: position: dial tcp: i/o timeout", ErrTransient)
	req.True(IsTransient(transient))
	req.False(IsProtocolError(transient))
	req.False(IsRaceLoss(transient))
}

func TestTxError(t *testing.T) {
	req := require.New(t)
	hash := common.HexToHash("0xabc")
	err := xerrors.Errorf("execute: %w", &TxError{Hash: hash, Nonce: 7, Err: xerrors.Errorf("%w: wait mined: timeout", ErrTxInFlight)})

	req.True(errors.Is(err, ErrTxInFlight))
	req.True(IsProtocolError(err))
	txErr, ok := AsTxError(err)
	req.True(ok)
	req.Equal(hash, txErr.Hash)
	req.Equal(uint64(7), txErr.Nonce)

	_, ok = AsTxError(ErrSubmission)
	req.False(ok)
}
