package main

import (
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/xerrors"

	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/base/database/redisclient"
	"github.com/x-xyz/oev-searcher/base/env"
	bEth "github.com/x-xyz/oev-searcher/base/ethereum"
	"github.com/x-xyz/oev-searcher/base/metrics"
	bValidator "github.com/x-xyz/oev-searcher/base/validator"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/auction"
	"github.com/x-xyz/oev-searcher/domain/executor"
	hcdomain "github.com/x-xyz/oev-searcher/domain/healthcheck"
	"github.com/x-xyz/oev-searcher/domain/keys"
	"github.com/x-xyz/oev-searcher/domain/liquidation"
	mmiddleware "github.com/x-xyz/oev-searcher/middleware"
	"github.com/x-xyz/oev-searcher/service/auctionhouse"
	"github.com/x-xyz/oev-searcher/service/cache"
	"github.com/x-xyz/oev-searcher/service/cache/provider"
	"github.com/x-xyz/oev-searcher/service/cache/provider/compound"
	"github.com/x-xyz/oev-searcher/service/cache/provider/primitive"
	cacheRedis "github.com/x-xyz/oev-searcher/service/cache/provider/redis"
	"github.com/x-xyz/oev-searcher/service/chain"
	"github.com/x-xyz/oev-searcher/service/discord"
	"github.com/x-xyz/oev-searcher/service/feedregistry"
	"github.com/x-xyz/oev-searcher/service/redis"
	"github.com/x-xyz/oev-searcher/service/signedapi"
	auction_delivery "github.com/x-xyz/oev-searcher/stores/auction/delivery/http"
	auction_repository "github.com/x-xyz/oev-searcher/stores/auction/repository"
	auction_usecase "github.com/x-xyz/oev-searcher/stores/auction/usecase"
	executor_usecase "github.com/x-xyz/oev-searcher/stores/executor/usecase"
	hc_delivery "github.com/x-xyz/oev-searcher/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/oev-searcher/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/oev-searcher/stores/healthcheck/usecase"
	liquidation_usecase "github.com/x-xyz/oev-searcher/stores/liquidation/usecase"
	signeddata_usecase "github.com/x-xyz/oev-searcher/stores/signeddata/usecase"
)

// searcher holds every wired component of one daemon process
type searcher struct {
	orchestrator *auction_usecase.Orchestrator
	request      auction.CycleRequest
	echo         *echo.Echo
	address      string
	closers      []func() error
}

func (s *searcher) close(c ctx.Ctx) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			c.WithField("err", err).Error("close failed")
		}
	}
}

func build(c ctx.Ctx, cfg *Config) (*searcher, error) {
	s := &searcher{address: cfg.Server.Address}
	oevChainId := domain.ChainId(cfg.Oev.ChainId)
	targetChainId := domain.ChainId(cfg.Target.ChainId)

	signer, err := bEth.NewKeySigner(env.SignerKey())
	if err != nil {
		return nil, xerrors.Errorf("%w: SEARCHER_PRIVATE_KEY: %v", domain.ErrConfig, err)
	}
	c.WithField("sender", signer.Address().Hex()).Info("signer loaded")

	networks := []chain.NetworkCfg{{ChainId: oevChainId, RpcUrl: cfg.Oev.RpcUrl, Throttle: cfg.Oev.Throttle}}
	if targetChainId != oevChainId {
		networks = append(networks, chain.NetworkCfg{ChainId: targetChainId, RpcUrl: cfg.Target.RpcUrl, Throttle: cfg.Target.Throttle})
	}
	chainClient, err := chain.NewClient(c, &chain.ClientCfg{
		Networks:              networks,
		Signer:                signer,
		GasLimitMultiplierBps: cfg.Executor.GasLimitMultiplierBps,
	})
	if err != nil {
		c.WithField("err", err).Error("chain.NewClient failed")
		return nil, err
	}
	pingers := map[string]hcdomain.Pinger{"chain": chainClient}

	var redisSvc redis.Service
	if cfg.Store.Driver == "redis" || cfg.Cache.Driver == "redis" {
		c.Info("init redis")
		pool := redisclient.MustConnectRedis(cfg.Redis.Uri, cfg.Redis.Password, redisclient.RedisParam{
			PoolMultiplier: cfg.Redis.PoolMultiplier,
			Retry:          cfg.Redis.Retry,
		})
		s.closers = append(s.closers, pool.Close)
		redisSvc = redis.New("searcher", metrics.New("redis"), &redis.Pools{Src: pool})
		pingers["redis"] = redisSvc
	}

	// local layer first, redis shares resolved feeds across replicas
	localCache := primitive.NewPrimitive("searcher", cfg.Cache.SizeMB)
	var cacheProvider provider.Provider = localCache
	if cfg.Cache.Driver == "redis" {
		cacheProvider = compound.NewCompound([]provider.Provider{localCache, cacheRedis.NewRedis(redisSvc)})
	}
	feedCache := cache.New(cache.ServiceConfig{
		Ttl:     cfg.Cache.Ttl,
		Pfx:     keys.PfxFeed,
		Cache:   cacheProvider,
		Metrics: metrics.New("cache"),
	})

	var repo auction.BidRepo
	switch cfg.Store.Driver {
	case "badger":
		badgerRepo, err := auction_repository.NewBadger(auction_repository.BadgerConfig{Path: cfg.Store.Badger.Path})
		if err != nil {
			c.WithField("err", err).Error("NewBadger failed")
			return nil, err
		}
		s.closers = append(s.closers, badgerRepo.Close)
		pingers["store"] = badgerRepo
		repo = badgerRepo
	case "redis":
		repo = auction_repository.NewRedis(redisSvc)
	default:
		c.Warn("bid records are kept in memory only")
		repo = auction_repository.NewMemory()
	}

	botKey := cfg.Discord.BotKey
	if k := env.DiscordBotKey(); k != "" {
		botKey = k
	}
	notifier, err := discord.New(discord.Config{BotKey: botKey, ChannelId: cfg.Discord.ChannelId})
	if err != nil {
		c.WithField("err", err).Error("discord.New failed")
		return nil, err
	}

	authority := auctionhouse.New(&auctionhouse.Config{
		ChainClient: chainClient,
		ChainId:     oevChainId,
		Address:     common.HexToAddress(cfg.Contracts.AuctionHouse),
	})

	registry := feedregistry.New(&feedregistry.Config{
		ChainClient:       chainClient,
		ChainId:           targetChainId,
		Api3ServerV1:      common.HexToAddress(cfg.Contracts.Api3ServerV1),
		AirseekerRegistry: common.HexToAddress(cfg.Contracts.AirseekerRegistry),
		Cache:             feedCache,
		CacheTtl:          cfg.Cache.Ttl,
	})

	aggregator := signeddata_usecase.NewAggregator(&signeddata_usecase.AggregatorCfg{
		Registry: registry,
		Client: signedapi.NewClient(&signedapi.ClientCfg{
			BaseUrl:    cfg.SignedApi.BaseUrl,
			HttpClient: http.Client{},
			Timeout:    cfg.SignedApi.SourceTimeout,
		}),
		SourceTimeout:    cfg.SignedApi.SourceTimeout,
		Workers:          cfg.SignedApi.Workers,
		VerifySignatures: cfg.SignedApi.VerifySignatures,
		MaxAge:           cfg.SignedApi.MaxAge,
		MinSources:       cfg.SignedApi.MinSources,
	})

	kind, err := executor.ParseKind(cfg.Bid.Kind)
	if err != nil {
		return nil, xerrors.Errorf("%w: %v", domain.ErrConfig, err)
	}
	executorAddress := common.HexToAddress(cfg.Contracts.Executor)
	exec, err := executor_usecase.New(&executor_usecase.Config{
		ChainClient:   chainClient,
		ChainId:       targetChainId,
		Address:       executorAddress,
		Kind:          kind,
		SubmitRetries: cfg.Executor.SubmitRetries,
		RetryInterval: cfg.Executor.RetryInterval,
	})
	if err != nil {
		c.WithField("err", err).Error("executor New failed")
		return nil, err
	}

	beneficiary := executorAddress
	if cfg.Bid.Beneficiary != "" {
		beneficiary = common.HexToAddress(cfg.Bid.Beneficiary)
	}
	s.request = auction.CycleRequest{
		Amount:      cfg.bidAmount(),
		FeedName:    cfg.Bid.FeedName,
		Beneficiary: beneficiary,
	}

	var inspector liquidation.Inspector
	if kind.IsLiquidation() {
		debtToCover, err := liquidation_usecase.ParseDebtToCover(cfg.Liquidation.DebtToCover)
		if err != nil {
			return nil, err
		}
		var priceOracle common.Address
		if cfg.Contracts.PriceOracle != "" {
			priceOracle = common.HexToAddress(cfg.Contracts.PriceOracle)
		}
		inspector, err = liquidation_usecase.New(&liquidation_usecase.Config{
			ChainClient:         chainClient,
			ChainId:             targetChainId,
			LendingPool:         common.HexToAddress(cfg.Contracts.LendingPool),
			PriceOracle:         priceOracle,
			RequireLiquidatable: cfg.Liquidation.RequireLiquidatable,
			DebtToCover:         debtToCover,
			CloseFactorBps:      cfg.Liquidation.CloseFactorBps,
			DebtDecimals:        cfg.Liquidation.DebtDecimals,
			PriceDecimals:       cfg.Liquidation.PriceDecimals,
		})
		if err != nil {
			c.WithField("err", err).Error("inspector New failed")
			return nil, err
		}
		s.request.Liquidation = &liquidation.Target{
			Account:         common.HexToAddress(cfg.Liquidation.Target),
			CollateralAsset: common.HexToAddress(cfg.Liquidation.CollateralAsset),
			DebtAsset:       common.HexToAddress(cfg.Liquidation.DebtAsset),
		}
	}

	s.orchestrator, err = auction_usecase.New(&auction_usecase.Config{
		Params:              cfg.Auction.Parameters,
		TargetChainId:       targetChainId,
		Authority:           authority,
		Aggregator:          aggregator,
		Executor:            exec,
		Inspector:           inspector,
		Repo:                repo,
		Notifier:            notifier,
		PollInterval:        cfg.Auction.PollInterval,
		EventBlockRange:     cfg.Auction.EventBlockRange,
		ConfirmationTimeout: cfg.Auction.ConfirmationTimeout,
		ReportRetries:       cfg.Auction.ReportRetries,
		RetryInterval:       cfg.Auction.RetryInterval,
	})
	if err != nil {
		c.WithField("err", err).Error("orchestrator New failed")
		return nil, err
	}

	if s.address != "" {
		s.echo = newEcho(s.orchestrator, pingers, localCache, cfg.Server.CacheTtl)
	}
	return s, nil
}

func newEcho(us auction.Usecase, pingers map[string]hcdomain.Pinger, p provider.Provider, cacheTtl time.Duration) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	hc_delivery.New(e, hc_usecase.New(hc_repo.New(pingers)))
	auction_delivery.New(e, us, p, cacheTtl)
	return e
}
