package usecase

import (
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/x-xyz/oev-searcher/base/backoff"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/base/log"
	"github.com/x-xyz/oev-searcher/base/metrics"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/executor"
	"github.com/x-xyz/oev-searcher/service/chain"
	"golang.org/x/xerrors"
)

const defaultRetryInterval = 500 * time.Millisecond

type Config struct {
	ChainClient chain.Client
	// target network the executor contract lives on
	ChainId domain.ChainId
	Address common.Address
	Kind    executor.Kind
	// SubmitRetries is how many more times a failed submission is sent
	SubmitRetries int
	RetryInterval time.Duration
}

type impl struct {
	chainClient   chain.Client
	chainId       domain.ChainId
	address       common.Address
	kind          executor.Kind
	submitRetries int
	retryInterval time.Duration
	met           metrics.Service
}

func New(cfg *Config) (executor.Executor, error) {
	if cfg.ChainClient == nil {
		return nil, xerrors.Errorf("%w: executor needs a chain client", domain.ErrConfig)
	}
	if cfg.Address == (common.Address{}) {
		return nil, xerrors.Errorf("%w: executor address is empty", domain.ErrConfig)
	}
	if _, err := contractABI(cfg.Kind); err != nil {
		return nil, err
	}
	if cfg.SubmitRetries < 0 {
		return nil, xerrors.Errorf("%w: submitRetries must not be negative", domain.ErrConfig)
	}
	im := &impl{
		chainClient:   cfg.ChainClient,
		chainId:       cfg.ChainId,
		address:       cfg.Address,
		kind:          cfg.Kind,
		submitRetries: cfg.SubmitRetries,
		retryInterval: cfg.RetryInterval,
		met:           metrics.New("executor"),
	}
	if im.retryInterval <= 0 {
		im.retryInterval = defaultRetryInterval
	}
	return im, nil
}

func (im *impl) Kind() executor.Kind {
	return im.kind
}

func (im *impl) Execute(c ctx.Ctx, req executor.Request) (*executor.Receipt, error) {
	defer im.met.BumpTime("execute.time", "kind", im.kind.String()).End()

	data, err := PackCall(im.kind, req)
	if err != nil {
		c.WithField("err", err).Error("PackCall failed")
		return nil, err
	}
	value := new(big.Int).Set(req.BidAmount)

	var receipt *executor.Receipt
	var opts []chain.TxOption
	attempt := 0
	err = backoff.Retry(c, backoff.NewExponential(im.retryInterval, 4*im.retryInterval), im.submitRetries+1, func() error {
		attempt++
		r, err := im.chainClient.Transact(c, im.chainId, im.address, value, data, opts...)
		if err == nil {
			receipt = &executor.Receipt{
				TxHash:  r.TxHash,
				GasUsed: r.GasUsed,
			}
			if r.BlockNumber != nil {
				receipt.BlockNumber = r.BlockNumber.Uint64()
			}
			return nil
		}
		c.WithFields(log.Fields{"err": err, "attempt": attempt}).Warn("chainClient.Transact failed")
		if !errors.Is(err, domain.ErrSubmission) {
			return backoff.Permanent(err)
		}
		// retries reuse the nonce of the first signed transaction
		if txErr, ok := domain.AsTxError(err); ok && opts == nil {
			opts = []chain.TxOption{chain.WithNonce(txErr.Nonce)}
		}
		im.met.BumpSum("submit.retry", 1, "kind", im.kind.String())
		return err
	})
	if err != nil {
		im.met.BumpSum("execute.err", 1, "kind", im.kind.String())
		return nil, err
	}

	c.WithFields(log.Fields{
		"txHash":  receipt.TxHash.Hex(),
		"block":   receipt.BlockNumber,
		"gasUsed": receipt.GasUsed,
	}).Info("action executed")
	return receipt, nil
}
