package domain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput  = errors.New("Given Param is not valid")
	ErrInvalidAddress = errors.New("Invalid address")
	ErrInvalidChainId = errors.New("invalid chain id")

	// startup
	ErrConfig = errors.New("invalid configuration")

	// auction protocol
	ErrBidRejected             = errors.New("bid rejected")
	ErrWindowExpired           = errors.New("auction window expired")
	ErrWindowBusy              = errors.New("auction window already has a live bid")
	ErrActionExecution         = errors.New("action execution failed")
	ErrUnconfirmed             = errors.New("fulfillment unconfirmed")
	ErrFulfillmentContradicted = errors.New("fulfillment contradicted")
	ErrInvalidTransition       = errors.New("invalid bid status transition")

	// execution
	ErrOnChainRevert = errors.New("on-chain revert")
	ErrSubmission    = errors.New("transaction submission failed")
	// ErrTxInFlight means a signed transaction may have reached the network and must not be replaced
	ErrTxInFlight = errors.New("transaction outcome unknown")

	// signed data
	ErrFeedResolution    = errors.New("feed resolution failed")
	ErrSourceUnavailable = errors.New("signed data source unavailable")
	ErrNoQuorum          = errors.New("no signed data source returned a matching observation")

	// liquidation
	ErrNotLiquidatable = errors.New("position is not liquidatable")

	// ErrTransient is an rpc or store failure that outlived its retries
	ErrTransient = errors.New("transient failure")
)

// TxError ties a failure to the signed transaction it happened to
type TxError struct {
	Hash  common.Hash
	Nonce uint64
	Err   error
}

func (e *TxError) Error() string {
	return fmt.Sprintf("tx %s nonce %d: %v", e.Hash.Hex(), e.Nonce, e.Err)
}

func (e *TxError) Unwrap() error {
	return e.Err
}

// AsTxError returns the signed transaction err happened to, if any
func AsTxError(err error) (*TxError, bool) {
	var txErr *TxError
	if errors.As(err, &txErr) {
		return txErr, true
	}
	return nil, false
}

// IsRaceLoss reports errors that are an expected outcome of racing the auction clock
func IsRaceLoss(err error) bool {
	return errors.Is(err, ErrWindowExpired) || errors.Is(err, ErrWindowBusy)
}

// IsProtocolError reports errors that abort the cycle cleanly and are not retried in the same window
func IsProtocolError(err error) bool {
	for _, e := range []error{
		ErrBidRejected,
		ErrOnChainRevert,
		ErrNoQuorum,
		ErrFeedResolution,
		ErrActionExecution,
		ErrNotLiquidatable,
		ErrUnconfirmed,
		ErrFulfillmentContradicted,
		ErrTxInFlight,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// IsTransient reports infrastructure failures that cost the current window only
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
