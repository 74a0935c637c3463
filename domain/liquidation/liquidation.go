package liquidation

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/domain"
)

// Target is the position a liquidation cycle goes after
type Target struct {
	Account         common.Address
	CollateralAsset common.Address
	DebtAsset       common.Address
}

// Parameters are handed to the liquidation executors. DebtToCover must not exceed
// the outstanding debt at execution time, which the lending pool enforces.
type Parameters struct {
	CollateralAsset common.Address
	DebtAsset       common.Address
	TargetAccount   common.Address
	DebtToCover     *big.Int
}

// Position is the lending pool's getUserAccountData result. Amounts are in the
// pool's base currency, the health factor has 18 decimals.
type Position struct {
	TotalCollateralBase  *big.Int
	TotalDebtBase        *big.Int
	AvailableBorrowsBase *big.Int
	LiquidationThreshold *big.Int
	Ltv                  *big.Int
	HealthFactor         *big.Int
}

func (p *Position) HealthFactorDecimal() decimal.Decimal {
	return domain.FromWad(p.HealthFactor)
}

// Liquidatable reports a health factor below 1
func (p *Position) Liquidatable() bool {
	return p.HealthFactorDecimal().LessThan(decimal.NewFromInt(1))
}

type Inspector interface {
	Position(c ctx.Ctx, account common.Address) (*Position, error)
	// Assess returns the parameters to liquidate t with, given the price about to be pushed
	Assess(c ctx.Ctx, t Target, price decimal.Decimal) (*Parameters, error)
}
