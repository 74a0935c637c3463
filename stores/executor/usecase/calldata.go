package usecase

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	bAbi "github.com/x-xyz/oev-searcher/base/abi"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/executor"
	"golang.org/x/xerrors"
)

// field names follow the tuple component names of payBidAndUpdateFeed

type feedUpdateCallback struct {
	SignedData [][]byte
}

type liquidationCallback struct {
	SignedData      [][]byte
	CollateralAsset common.Address
	DebtAsset       common.Address
	User            common.Address
	DebtToCover     *big.Int
}

type liquidationParams struct {
	CollateralAsset common.Address
	DebtAsset       common.Address
	User            common.Address
	DebtToCover     *big.Int
}

type flashLiquidationCallback struct {
	SignedData        [][]byte
	LiquidationParams liquidationParams
}

type feedUpdateArgs struct {
	SignedDataTimestampCutoff uint32
	Signature                 []byte
	BidAmount                 *big.Int
	CallbackData              feedUpdateCallback
}

type liquidationArgs struct {
	SignedDataTimestampCutoff uint32
	Signature                 []byte
	BidAmount                 *big.Int
	CallbackData              liquidationCallback
}

type flashLiquidationArgs struct {
	SignedDataTimestampCutoff uint32
	Signature                 []byte
	BidAmount                 *big.Int
	CallbackData              flashLiquidationCallback
}

func contractABI(kind executor.Kind) (abi.ABI, error) {
	switch kind {
	case executor.KindFeedUpdate:
		return bAbi.FeedUpdaterABI, nil
	case executor.KindDirectLiquidation:
		return bAbi.LiquidatorABI, nil
	case executor.KindFlashLoanLiquidation:
		return bAbi.FlashLiquidatorABI, nil
	}
	return abi.ABI{}, xerrors.Errorf("%w: unknown executor kind %d", domain.ErrConfig, kind)
}

// PackCall builds the payBidAndUpdateFeed calldata of kind for req
func PackCall(kind executor.Kind, req executor.Request) ([]byte, error) {
	if req.BidAmount == nil || req.BidAmount.Sign() < 0 {
		return nil, xerrors.Errorf("%w: bid amount must be set", domain.ErrBadParamInput)
	}
	if kind.IsLiquidation() && (req.Liquidation == nil || req.Liquidation.DebtToCover == nil) {
		return nil, xerrors.Errorf("%w: %s needs liquidation parameters", domain.ErrBadParamInput, kind)
	}

	_abi, err := contractABI(kind)
	if err != nil {
		return nil, err
	}

	cutoff := req.Authorization.SignedDataTimestampCutoff
	sig := req.Authorization.Signature
	signedData := req.SignedData
	if signedData == nil {
		signedData = [][]byte{}
	}

	var args interface{}
	switch kind {
	case executor.KindFeedUpdate:
		args = feedUpdateArgs{cutoff, sig, req.BidAmount, feedUpdateCallback{signedData}}
	case executor.KindDirectLiquidation:
		l := req.Liquidation
		args = liquidationArgs{cutoff, sig, req.BidAmount, liquidationCallback{
			SignedData:      signedData,
			CollateralAsset: l.CollateralAsset,
			DebtAsset:       l.DebtAsset,
			User:            l.TargetAccount,
			DebtToCover:     l.DebtToCover,
		}}
	case executor.KindFlashLoanLiquidation:
		l := req.Liquidation
		args = flashLiquidationArgs{cutoff, sig, req.BidAmount, flashLiquidationCallback{
			SignedData: signedData,
			LiquidationParams: liquidationParams{
				CollateralAsset: l.CollateralAsset,
				DebtAsset:       l.DebtAsset,
				User:            l.TargetAccount,
				DebtToCover:     l.DebtToCover,
			},
		}}
	}

	data, err := _abi.Pack(bAbi.PayBidAndUpdateFeed, args)
	if err != nil {
		return nil, xerrors.Errorf("failed to pack %s: %w", bAbi.PayBidAndUpdateFeed, err)
	}
	return data, nil
}
