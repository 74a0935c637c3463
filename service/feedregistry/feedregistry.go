package feedregistry

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/service/cache"
	"github.com/x-xyz/oev-searcher/service/chain"
)

// Config locates the dAPI contracts on the target network
type Config struct {
	ChainClient       chain.Client
	ChainId           domain.ChainId
	Api3ServerV1      common.Address
	AirseekerRegistry common.Address
	// optional, an in-process cache with CacheTtl is used when nil
	Cache    cache.Service
	CacheTtl time.Duration
}
