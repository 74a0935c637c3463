package usecase

import (
	"errors"
	"math/big"
	"strings"
	"time"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/x-xyz/oev-searcher/base/abi"
	"github.com/x-xyz/oev-searcher/base/backoff"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/base/log"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/liquidation"
	"github.com/x-xyz/oev-searcher/service/chain"
	"golang.org/x/xerrors"
)

const (
	bpsBase               = 10000
	defaultCloseFactorBps = 5000
	defaultPriceDecimals  = 8
	defaultRetryInterval  = 100 * time.Millisecond
	callAttempts          = 3
)

type DebtMode int

const (
	// DebtMax lets the lending pool cap the repayment
	DebtMax DebtMode = iota
	DebtCloseFactor
	DebtAmount
)

// DebtToCover selects how much debt a liquidation repays
type DebtToCover struct {
	Mode   DebtMode
	Amount *big.Int
}

// ParseDebtToCover accepts "max", "close-factor" or a base 10 token amount
func ParseDebtToCover(s string) (DebtToCover, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "max":
		return DebtToCover{Mode: DebtMax}, nil
	case "close-factor", "closefactor":
		return DebtToCover{Mode: DebtCloseFactor}, nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() <= 0 {
		return DebtToCover{}, xerrors.Errorf("%w: invalid debtToCover %q", domain.ErrConfig, s)
	}
	return DebtToCover{Mode: DebtAmount, Amount: v}, nil
}

type Config struct {
	ChainClient chain.Client
	ChainId     domain.ChainId
	LendingPool common.Address
	// PriceOracle is needed for the projected health factor and the close factor mode
	PriceOracle         common.Address
	RequireLiquidatable bool
	DebtToCover         DebtToCover
	CloseFactorBps      uint64
	DebtDecimals        int32
	// PriceDecimals is the fixed point precision of getAssetPrice
	PriceDecimals int32
	RetryInterval time.Duration
}

type impl struct {
	chainClient         chain.Client
	chainId             domain.ChainId
	lendingPool         common.Address
	priceOracle         common.Address
	requireLiquidatable bool
	debtToCover         DebtToCover
	closeFactorBps      uint64
	debtDecimals        int32
	priceDecimals       int32
	retryInterval       time.Duration
}

func New(cfg *Config) (liquidation.Inspector, error) {
	if cfg.ChainClient == nil || cfg.LendingPool == (common.Address{}) {
		return nil, xerrors.Errorf("%w: inspector needs a chain client and a lending pool", domain.ErrConfig)
	}
	if cfg.DebtToCover.Mode == DebtCloseFactor && cfg.PriceOracle == (common.Address{}) {
		return nil, xerrors.Errorf("%w: close factor mode needs a price oracle", domain.ErrConfig)
	}
	if cfg.DebtToCover.Mode == DebtAmount && (cfg.DebtToCover.Amount == nil || cfg.DebtToCover.Amount.Sign() <= 0) {
		return nil, xerrors.Errorf("%w: debtToCover amount must be positive", domain.ErrConfig)
	}
	if cfg.CloseFactorBps > bpsBase {
		return nil, xerrors.Errorf("%w: closeFactorBps above %d", domain.ErrConfig, bpsBase)
	}
	im := &impl{
		chainClient:         cfg.ChainClient,
		chainId:             cfg.ChainId,
		lendingPool:         cfg.LendingPool,
		priceOracle:         cfg.PriceOracle,
		requireLiquidatable: cfg.RequireLiquidatable,
		debtToCover:         cfg.DebtToCover,
		closeFactorBps:      cfg.CloseFactorBps,
		debtDecimals:        cfg.DebtDecimals,
		priceDecimals:       cfg.PriceDecimals,
		retryInterval:       cfg.RetryInterval,
	}
	if im.closeFactorBps == 0 {
		im.closeFactorBps = defaultCloseFactorBps
	}
	if im.debtDecimals == 0 {
		im.debtDecimals = 18
	}
	if im.priceDecimals == 0 {
		im.priceDecimals = defaultPriceDecimals
	}
	if im.retryInterval <= 0 {
		im.retryInterval = defaultRetryInterval
	}
	return im, nil
}

// call retries a view call. A revert is returned as domain.ErrOnChainRevert and
// a failure that outlives the retries as domain.ErrTransient.
func (im *impl) call(c ctx.Ctx, addr common.Address, _abi ethabi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	var res []interface{}
	err := backoff.Retry(c, backoff.NewExponential(im.retryInterval, 4*im.retryInterval), callAttempts, func() error {
		var err error
		res, err = im.chainClient.Call(c, im.chainId, addr, _abi, method, params...)
		if err == nil {
			return nil
		}
		if chain.IsRevert(err) {
			return backoff.Permanent(xerrors.Errorf("%w: %s: %v", domain.ErrOnChainRevert, method, err))
		}
		c.WithFields(log.Fields{"err": err, "method": method}).Warn("chainClient.Call failed")
		return err
	})
	if err == nil {
		return res, nil
	}
	if errors.Is(err, domain.ErrOnChainRevert) {
		return nil, err
	}
	return nil, xerrors.Errorf("%w: %s: %v", domain.ErrTransient, method, err)
}

func (im *impl) Position(c ctx.Ctx, account common.Address) (*liquidation.Position, error) {
	res, err := im.call(c, im.lendingPool, abi.LendingPoolABI, abi.GetUserAccountData, account)
	if err != nil {
		c.WithField("err", err).Error("getUserAccountData failed")
		return nil, err
	}
	if len(res) != 6 {
		return nil, xerrors.Errorf("getUserAccountData returned %d values", len(res))
	}
	vals := make([]*big.Int, 6)
	for i, v := range res {
		b, ok := v.(*big.Int)
		if !ok {
			return nil, xerrors.Errorf("getUserAccountData value %d is %T", i, v)
		}
		vals[i] = b
	}
	return &liquidation.Position{
		TotalCollateralBase:  vals[0],
		TotalDebtBase:        vals[1],
		AvailableBorrowsBase: vals[2],
		LiquidationThreshold: vals[3],
		Ltv:                  vals[4],
		HealthFactor:         vals[5],
	}, nil
}

func (im *impl) assetPrice(c ctx.Ctx, asset common.Address) (*big.Int, error) {
	res, err := im.call(c, im.priceOracle, abi.PriceOracleABI, abi.GetAssetPrice, asset)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "asset": asset.Hex()}).Error("getAssetPrice failed")
		return nil, err
	}
	price, ok := res[0].(*big.Int)
	if !ok || price.Sign() <= 0 {
		return nil, xerrors.Errorf("oracle has no price for %s", asset.Hex())
	}
	return price, nil
}

// ProjectedHealthFactor revalues the collateral from oraclePrice to newPrice, both in the same quote
func ProjectedHealthFactor(p *liquidation.Position, oraclePrice, newPrice decimal.Decimal) decimal.Decimal {
	debt := decimal.NewFromBigInt(p.TotalDebtBase, 0)
	if debt.IsZero() || oraclePrice.IsZero() {
		return decimal.New(1, 18)
	}
	collateral := decimal.NewFromBigInt(p.TotalCollateralBase, 0).Mul(newPrice).Div(oraclePrice)
	threshold := decimal.NewFromBigInt(p.LiquidationThreshold, 0).Div(decimal.NewFromInt(bpsBase))
	return collateral.Mul(threshold).Div(debt)
}

func (im *impl) Assess(c ctx.Ctx, t liquidation.Target, price decimal.Decimal) (*liquidation.Parameters, error) {
	c = ctx.WithValue(c, "account", t.Account.Hex())
	pos, err := im.Position(c, t.Account)
	if err != nil {
		return nil, err
	}

	fields := log.Fields{
		"healthFactor": pos.HealthFactorDecimal().String(),
		"price":        price.String(),
	}
	liquidatable := pos.Liquidatable()
	if !liquidatable && im.priceOracle != (common.Address{}) && price.IsPositive() {
		oraclePrice, err := im.assetPrice(c, t.CollateralAsset)
		if err != nil {
			return nil, err
		}
		projected := ProjectedHealthFactor(pos, decimal.NewFromBigInt(oraclePrice, -im.priceDecimals), price)
		fields["projectedHealthFactor"] = projected.String()
		liquidatable = projected.LessThan(decimal.NewFromInt(1))
	}

	if !liquidatable {
		if im.requireLiquidatable {
			c.WithFields(fields).Info("position is healthy")
			return nil, xerrors.Errorf("%w: %s", domain.ErrNotLiquidatable, t.Account.Hex())
		}
		c.WithFields(fields).Warn("position is healthy, liquidating anyway")
	}

	debt, err := im.coverAmount(c, pos, t)
	if err != nil {
		return nil, err
	}
	fields["debtToCover"] = debt.String()
	c.WithFields(fields).Info("liquidation assessed")

	return &liquidation.Parameters{
		CollateralAsset: t.CollateralAsset,
		DebtAsset:       t.DebtAsset,
		TargetAccount:   t.Account,
		DebtToCover:     debt,
	}, nil
}

func (im *impl) coverAmount(c ctx.Ctx, pos *liquidation.Position, t liquidation.Target) (*big.Int, error) {
	switch im.debtToCover.Mode {
	case DebtAmount:
		return new(big.Int).Set(im.debtToCover.Amount), nil
	case DebtCloseFactor:
		debtPrice, err := im.assetPrice(c, t.DebtAsset)
		if err != nil {
			return nil, err
		}
		// base amounts and oracle prices share the base currency
		num := new(big.Int).Mul(pos.TotalDebtBase, new(big.Int).SetUint64(im.closeFactorBps))
		num.Mul(num, new(big.Int).Exp(domain.Big10, big.NewInt(int64(im.debtDecimals)), nil))
		den := new(big.Int).Mul(debtPrice, big.NewInt(bpsBase))
		amount := num.Quo(num, den)
		if amount.Sign() <= 0 {
			return nil, xerrors.Errorf("%w: %s has no debt to cover", domain.ErrNotLiquidatable, t.Account.Hex())
		}
		return amount, nil
	}
	return new(big.Int).Set(domain.MaxUint256), nil
}
