package chain

import (
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/x-xyz/oev-searcher/base/backoff"
	bCtx "github.com/x-xyz/oev-searcher/base/ctx"
	bEth "github.com/x-xyz/oev-searcher/base/ethereum"
	"github.com/x-xyz/oev-searcher/base/eventlog"
	"github.com/x-xyz/oev-searcher/base/log"
	"github.com/x-xyz/oev-searcher/domain"
	"golang.org/x/xerrors"
)

const (
	bpsBase = 10000

	sendAttempts          = 3
	defaultResendInterval = 300 * time.Millisecond
)

type NetworkCfg struct {
	ChainId  domain.ChainId
	RpcUrl   string
	Throttle int
}

type ClientCfg struct {
	Networks []NetworkCfg
	Signer   bEth.Signer
	// applied to estimated gas, 10000 keeps the estimate as is
	GasLimitMultiplierBps uint64
}

type clientImpl struct {
	clients               map[domain.ChainId]domain.EthClientRepo
	signer                bEth.Signer
	gasLimitMultiplierBps uint64
	resendInterval        time.Duration
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	clients := make(map[domain.ChainId]domain.EthClientRepo)
	for _, n := range cfg.Networks {
		client, err := bEth.Dial(ctx, n.ChainId.String(), n.RpcUrl, n.Throttle)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": n.ChainId,
			}).Error("failed to dial rpc")
			return nil, err
		}
		id, err := client.ChainID(ctx)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": n.ChainId,
			}).Error("client.ChainID failed")
			return nil, err
		}
		if id.Cmp(n.ChainId.Big()) != 0 {
			return nil, xerrors.Errorf("%w: rpc reports chain %s, want %d", domain.ErrConfig, id, n.ChainId)
		}
		clients[n.ChainId] = client
	}
	return NewClientWithBackends(clients, cfg.Signer, cfg.GasLimitMultiplierBps), nil
}

// NewClientWithBackends skips dialing, clients are used as is
func NewClientWithBackends(clients map[domain.ChainId]domain.EthClientRepo, signer bEth.Signer, gasLimitMultiplierBps uint64) Client {
	if gasLimitMultiplierBps == 0 {
		gasLimitMultiplierBps = bpsBase
	}
	return &clientImpl{
		clients:               clients,
		signer:                signer,
		gasLimitMultiplierBps: gasLimitMultiplierBps,
		resendInterval:        defaultResendInterval,
	}
}

func (c *clientImpl) Sender() common.Address {
	return c.signer.Address()
}

func (c *clientImpl) client(chainId domain.ChainId) (domain.EthClientRepo, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, xerrors.Errorf("%w: %d", ErrUnsupportedChain, chainId)
	}
	return client, nil
}

func (c *clientImpl) Call(ctx bCtx.Ctx, chainId domain.ChainId, addr common.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	client, err := c.client(chainId)
	if err != nil {
		return nil, err
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := client.CallContract(ctx, msg, nil)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"err":    err,
		}).Error("client.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (c *clientImpl) BlockNumber(ctx bCtx.Ctx, chainId domain.ChainId) (uint64, error) {
	client, err := c.client(chainId)
	if err != nil {
		return 0, err
	}
	return client.BlockNumber(ctx)
}

func (c *clientImpl) FilterTrailingLogs(ctx bCtx.Ctx, chainId domain.ChainId, q ethereum.FilterQuery, blocks uint64) ([]types.Log, error) {
	client, err := c.client(chainId)
	if err != nil {
		return nil, err
	}
	return eventlog.FetchTrailing(ctx, client, q, blocks)
}

func (c *clientImpl) Transact(ctx bCtx.Ctx, chainId domain.ChainId, to common.Address, value *big.Int, data []byte, opts ...TxOption) (*types.Receipt, error) {
	client, err := c.client(chainId)
	if err != nil {
		return nil, err
	}
	if value == nil {
		value = new(big.Int)
	}
	o := txOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	from := c.signer.Address()

	var nonce uint64
	if o.nonce != nil {
		nonce = *o.nonce
	} else {
		nonce, err = client.PendingNonceAt(ctx, from)
		if err != nil {
			ctx.WithField("err", err).Error("client.PendingNonceAt failed")
			return nil, xerrors.Errorf("%w: pending nonce: %v", domain.ErrSubmission, err)
		}
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.SuggestGasPrice failed")
		return nil, xerrors.Errorf("%w: gas price: %v", domain.ErrSubmission, err)
	}
	gas, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From:     from,
		To:       &to,
		GasPrice: gasPrice,
		Value:    value,
		Data:     data,
	})
	if err != nil {
		ctx.WithField("err", err).Warn("client.EstimateGas failed")
		return nil, classify(err)
	}
	gas = gas * c.gasLimitMultiplierBps / bpsBase

	tx := types.NewTransaction(nonce, to, value, gas, gasPrice, data)
	signedTx, err := c.signer.SignTx(tx, chainId.Big())
	if err != nil {
		ctx.WithField("err", err).Error("signer.SignTx failed")
		return nil, err
	}
	txErr := func(err error) error {
		return &domain.TxError{Hash: signedTx.Hash(), Nonce: nonce, Err: err}
	}
	if err := c.broadcast(ctx, client, from, signedTx); err != nil {
		return nil, txErr(err)
	}

	ctx.WithFields(log.Fields{
		"chainId": chainId,
		"hash":    signedTx.Hash().Hex(),
		"nonce":   nonce,
		"gas":     gas,
	}).Info("transaction sent")

	receipt, err := bind.WaitMined(ctx, client, signedTx)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":  err,
			"hash": signedTx.Hash().Hex(),
		}).Error("bind.WaitMined failed")
		return nil, txErr(xerrors.Errorf("%w: wait mined: %v", domain.ErrTxInFlight, err))
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return receipt, txErr(domain.ErrOnChainRevert)
	}
	return receipt, nil
}

// broadcast only ever resends the same signed bytes. A nil error means a node
// holds the transaction, domain.ErrSubmission means its nonce is provably unused.
func (c *clientImpl) broadcast(ctx bCtx.Ctx, client domain.EthClientRepo, from common.Address, signedTx *types.Transaction) error {
	attempt := 0
	sendErr := backoff.Retry(ctx, backoff.NewLinear(c.resendInterval, c.resendInterval), sendAttempts, func() error {
		attempt++
		err := client.SendTransaction(ctx, signedTx)
		if err == nil || isKnownTx(err) {
			return nil
		}
		ctx.WithFields(log.Fields{
			"err":     err,
			"hash":    signedTx.Hash().Hex(),
			"attempt": attempt,
		}).Warn("client.SendTransaction failed")
		if IsRevert(err) {
			return backoff.Permanent(err)
		}
		return err
	})
	if sendErr == nil {
		return nil
	}
	if IsRevert(sendErr) {
		return classify(sendErr)
	}

	pending, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		ctx.WithField("err", err).Error("client.PendingNonceAt failed")
		return xerrors.Errorf("%w: send: %v, nonce check: %v", domain.ErrTxInFlight, sendErr, err)
	}
	if pending > signedTx.Nonce() {
		// the nonce is taken, most likely by this transaction
		ctx.WithFields(log.Fields{
			"hash":    signedTx.Hash().Hex(),
			"pending": pending,
		}).Warn("send failed but nonce advanced")
		return nil
	}
	return xerrors.Errorf("%w: %v", domain.ErrSubmission, sendErr)
}

func (c *clientImpl) Ping(ctx bCtx.Ctx) error {
	for chainId, client := range c.clients {
		if _, err := client.BlockNumber(ctx); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
			}).Error("client.BlockNumber failed")
			return err
		}
	}
	return nil
}

// classify maps a pre-mining error onto revert or submission
func classify(err error) error {
	if IsRevert(err) {
		return xerrors.Errorf("%w: %v", domain.ErrOnChainRevert, err)
	}
	return xerrors.Errorf("%w: %v", domain.ErrSubmission, err)
}

// IsRevert matches errors carrying revert data or a revert reason
func IsRevert(err error) bool {
	var dataErr rpc.DataError
	return errors.As(err, &dataErr) || strings.Contains(strings.ToLower(err.Error()), "revert")
}

// isKnownTx matches node replies to a transaction already in its pool
func isKnownTx(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already known") || strings.Contains(msg, "known transaction")
}
