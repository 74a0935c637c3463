package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var (
	OevAuctionHouseABI   abi.ABI
	Api3ServerV1ABI      abi.ABI
	AirseekerRegistryABI abi.ABI
	FeedUpdaterABI       abi.ABI
	LiquidatorABI        abi.ABI
	FlashLiquidatorABI   abi.ABI
	LendingPoolABI       abi.ABI
	PriceOracleABI       abi.ABI
)

func mustParse(s string) abi.ABI {
	_abi, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic("Failed to parse ABI: " + err.Error())
	}
	return _abi
}

func init() {
	OevAuctionHouseABI = mustParse(oevAuctionHouseABIJson)
	Api3ServerV1ABI = mustParse(api3ServerV1ABIJson)
	AirseekerRegistryABI = mustParse(airseekerRegistryABIJson)
	FeedUpdaterABI = mustParse(feedUpdaterABIJson)
	LiquidatorABI = mustParse(liquidatorABIJson)
	FlashLiquidatorABI = mustParse(flashLiquidatorABIJson)
	LendingPoolABI = mustParse(lendingPoolABIJson)
	PriceOracleABI = mustParse(priceOracleABIJson)
}
