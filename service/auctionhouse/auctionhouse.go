package auctionhouse

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/service/chain"
)

// Config points at the OevAuctionHouse deployment on the OEV network
type Config struct {
	ChainClient chain.Client
	ChainId     domain.ChainId
	Address     common.Address
}
