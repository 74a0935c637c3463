package domain

import (
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/shopspring/decimal"
)

var (
	Big10 = big.NewInt(10)

	// MaxUint256 is used as an uncapped collateral / fee / debt amount
	MaxUint256 = math.MaxBig256

	// WadDecimal is 1e18, the fixed point base of signed data values and health factors
	WadDecimal = decimal.New(1, 18)
)

type ChainId int64

func (c ChainId) String() string {
	return strconv.FormatInt(int64(c), 10)
}

func (c ChainId) Big() *big.Int {
	return big.NewInt(int64(c))
}

// FromWad converts a fixed point 1e18 integer into a decimal
func FromWad(v *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(v, -18)
}
