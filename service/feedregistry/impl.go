package feedregistry

import (
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/x-xyz/oev-searcher/base/abi"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/base/log"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/keys"
	"github.com/x-xyz/oev-searcher/domain/signeddata"
	"github.com/x-xyz/oev-searcher/service/cache"
	"github.com/x-xyz/oev-searcher/service/cache/provider/primitive"
	"github.com/x-xyz/oev-searcher/service/chain"
	"golang.org/x/xerrors"
)

// single beacon details are abi.encode(address, bytes32)
const beaconDetailsLen = 64

type impl struct {
	chainClient       chain.Client
	chainId           domain.ChainId
	api3ServerV1      common.Address
	airseekerRegistry common.Address
	cache             cache.Service
}

func New(cfg *Config) signeddata.FeedRegistry {
	c := cfg.Cache
	if c == nil {
		ttl := cfg.CacheTtl
		if ttl == 0 {
			ttl = time.Hour
		}
		c = cache.New(cache.ServiceConfig{
			Ttl:   ttl,
			Pfx:   keys.PfxFeed,
			Cache: primitive.NewPrimitive(keys.PfxFeed, 1),
		})
	}
	return &impl{
		chainClient:       cfg.ChainClient,
		chainId:           cfg.ChainId,
		api3ServerV1:      cfg.Api3ServerV1,
		airseekerRegistry: cfg.AirseekerRegistry,
		cache:             c,
	}
}

func (im *impl) Resolve(c ctx.Ctx, feedName string) (*signeddata.Feed, error) {
	var res signeddata.Feed

	key := keys.RedisKey(im.chainId.String(), feedName)

	if err := im.cache.GetByFunc(c, key, &res, func() (interface{}, error) {
		return im.resolve(c, feedName)
	}); err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"feedName": feedName,
		}).Error("cache.GetByFunc failed")
		if errors.Is(err, domain.ErrFeedResolution) || domain.IsTransient(err) {
			return nil, err
		}
		return nil, xerrors.Errorf("%w: feed cache: %v", domain.ErrTransient, err)
	}
	if len(res.Sources) == 0 {
		return nil, xerrors.Errorf("%w: %s has no sources", domain.ErrFeedResolution, feedName)
	}

	return &res, nil
}

// callErr keeps reverts as resolution failures, anything else may pass with a retry
func callErr(feedName string, err error) error {
	if chain.IsRevert(err) {
		return xerrors.Errorf("%w: %s: %v", domain.ErrFeedResolution, feedName, err)
	}
	return xerrors.Errorf("%w: resolve %s: %v", domain.ErrTransient, feedName, err)
}

func (im *impl) resolve(c ctx.Ctx, feedName string) (*signeddata.Feed, error) {
	name, err := EncodeName(feedName)
	if err != nil {
		return nil, err
	}
	nameHash := crypto.Keccak256Hash(name[:])

	res, err := im.chainClient.Call(c, im.chainId, im.api3ServerV1, abi.Api3ServerV1ABI, abi.DapiNameHashToDataFeedId, [32]byte(nameHash))
	if err != nil {
		c.WithField("err", err).Error("chainClient.Call dapiNameHashToDataFeedId failed")
		return nil, callErr(feedName, err)
	}
	dataFeedId := common.Hash(res[0].([32]byte))
	if dataFeedId == (common.Hash{}) {
		return nil, xerrors.Errorf("%w: dapi %s is not set", domain.ErrFeedResolution, feedName)
	}

	res, err = im.chainClient.Call(c, im.chainId, im.airseekerRegistry, abi.AirseekerRegistryABI, abi.DataFeedIdToDetails, [32]byte(dataFeedId))
	if err != nil {
		c.WithField("err", err).Error("chainClient.Call dataFeedIdToDetails failed")
		return nil, callErr(feedName, err)
	}

	sources, err := DecodeDetails(res[0].([]byte))
	if err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"dataFeedId": dataFeedId,
		}).Error("DecodeDetails failed")
		return nil, err
	}

	return &signeddata.Feed{
		Name:       feedName,
		DataFeedId: dataFeedId,
		Sources:    sources,
	}, nil
}

// EncodeName right pads a dAPI name into bytes32
func EncodeName(feedName string) ([32]byte, error) {
	var name [32]byte
	if len(feedName) == 0 || len(feedName) > 31 {
		return name, xerrors.Errorf("%w: invalid dapi name %q", domain.ErrFeedResolution, feedName)
	}
	copy(name[:], feedName)
	return name, nil
}

// DecodeDetails reads registry details of a beacon or a beacon set
func DecodeDetails(details []byte) ([]signeddata.Source, error) {
	if len(details) == 0 {
		return nil, xerrors.Errorf("%w: feed is not registered", domain.ErrFeedResolution)
	}

	if len(details) == beaconDetailsLen {
		out, err := abi.BeaconArgs.Unpack(details)
		if err != nil {
			return nil, xerrors.Errorf("%w: %v", domain.ErrFeedResolution, err)
		}
		return []signeddata.Source{{
			Airnode:    out[0].(common.Address),
			TemplateId: common.Hash(out[1].([32]byte)),
		}}, nil
	}

	out, err := abi.BeaconSetArgs.Unpack(details)
	if err != nil {
		return nil, xerrors.Errorf("%w: %v", domain.ErrFeedResolution, err)
	}
	airnodes := out[0].([]common.Address)
	templateIds := out[1].([][32]byte)
	if len(airnodes) != len(templateIds) || len(airnodes) == 0 {
		return nil, xerrors.Errorf("%w: malformed beacon set", domain.ErrFeedResolution)
	}

	sources := make([]signeddata.Source, 0, len(airnodes))
	for i, a := range airnodes {
		sources = append(sources, signeddata.Source{
			Airnode:    a,
			TemplateId: common.Hash(templateIds[i]),
		})
	}
	return sources, nil
}
