package main

import (
	"math/big"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	bValidator "github.com/x-xyz/oev-searcher/base/validator"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/auction"
)

const envPrefix = "SEARCHER"

type NetworkConfig struct {
	ChainId  int64  `mapstructure:"chainId" validate:"gt=0"`
	RpcUrl   string `mapstructure:"rpcUrl" validate:"required,url"`
	Throttle int    `mapstructure:"throttle" validate:"gte=0"`
}

type AuctionConfig struct {
	auction.Parameters  `mapstructure:",squash"`
	PollInterval        time.Duration `mapstructure:"pollInterval" validate:"gt=0"`
	EventBlockRange     uint64        `mapstructure:"eventBlockRange" validate:"gt=0"`
	ConfirmationTimeout time.Duration `mapstructure:"confirmationTimeout" validate:"gte=0"`
	ReportRetries       int           `mapstructure:"reportRetries" validate:"gte=0"`
	RetryInterval       time.Duration `mapstructure:"retryInterval"`
}

type ContractsConfig struct {
	AuctionHouse      string `mapstructure:"auctionHouse" validate:"eth_addr"`
	Api3ServerV1      string `mapstructure:"api3ServerV1" validate:"eth_addr"`
	AirseekerRegistry string `mapstructure:"airseekerRegistry" validate:"eth_addr"`
	Executor          string `mapstructure:"executor" validate:"eth_addr"`
	LendingPool       string `mapstructure:"lendingPool" validate:"omitempty,eth_addr"`
	PriceOracle       string `mapstructure:"priceOracle" validate:"omitempty,eth_addr"`
}

type BidConfig struct {
	Kind        string `mapstructure:"kind" validate:"oneof=feedUpdate directLiquidation flashLoanLiquidation"`
	Amount      string `mapstructure:"amount" validate:"required,numeric"`
	FeedName    string `mapstructure:"feedName" validate:"required"`
	Beneficiary string `mapstructure:"beneficiary" validate:"omitempty,eth_addr"`
}

type LiquidationConfig struct {
	Target              string `mapstructure:"target" validate:"omitempty,eth_addr"`
	CollateralAsset     string `mapstructure:"collateralAsset" validate:"omitempty,eth_addr"`
	DebtAsset           string `mapstructure:"debtAsset" validate:"omitempty,eth_addr"`
	DebtToCover         string `mapstructure:"debtToCover"`
	CloseFactorBps      uint64 `mapstructure:"closeFactorBps" validate:"lte=10000"`
	DebtDecimals        int32  `mapstructure:"debtDecimals" validate:"gte=0"`
	PriceDecimals       int32  `mapstructure:"priceDecimals" validate:"gte=0"`
	RequireLiquidatable bool   `mapstructure:"requireLiquidatable"`
}

type SignedApiConfig struct {
	BaseUrl          string        `mapstructure:"baseUrl" validate:"omitempty,url"`
	SourceTimeout    time.Duration `mapstructure:"sourceTimeout" validate:"gte=0"`
	Workers          int           `mapstructure:"workers" validate:"gte=0"`
	VerifySignatures bool          `mapstructure:"verifySignatures"`
	MaxAge           time.Duration `mapstructure:"maxAge" validate:"gte=0"`
	MinSources       int           `mapstructure:"minSources" validate:"gte=0"`
}

type ExecutorConfig struct {
	SubmitRetries         int           `mapstructure:"submitRetries" validate:"gte=0"`
	RetryInterval         time.Duration `mapstructure:"retryInterval"`
	GasLimitMultiplierBps uint64        `mapstructure:"gasLimitMultiplierBps"`
}

type RedisConfig struct {
	Uri            string  `mapstructure:"uri"`
	Password       string  `mapstructure:"password"`
	PoolMultiplier float64 `mapstructure:"poolMultiplier"`
	Retry          int     `mapstructure:"retry"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=badger redis none"`
	Badger struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"badger"`
}

type CacheConfig struct {
	Driver string        `mapstructure:"driver" validate:"oneof=primitive redis"`
	SizeMB int           `mapstructure:"sizeMB" validate:"gt=0"`
	Ttl    time.Duration `mapstructure:"ttl" validate:"gt=0"`
}

type DiscordConfig struct {
	BotKey    string `mapstructure:"botKey"`
	ChannelId string `mapstructure:"channelId"`
}

type ServerConfig struct {
	// empty disables the status server
	Address  string        `mapstructure:"address"`
	CacheTtl time.Duration `mapstructure:"cacheTtl"`
}

type Config struct {
	LogLevel    string            `mapstructure:"-"`
	Server      ServerConfig      `mapstructure:"server"`
	Auction     AuctionConfig     `mapstructure:"auction"`
	Oev         NetworkConfig     `mapstructure:"-"`
	Target      NetworkConfig     `mapstructure:"-"`
	Contracts   ContractsConfig   `mapstructure:"contracts"`
	Bid         BidConfig         `mapstructure:"bid"`
	Liquidation LiquidationConfig `mapstructure:"liquidation"`
	SignedApi   SignedApiConfig   `mapstructure:"signedApi"`
	Executor    ExecutorConfig    `mapstructure:"executor"`
	Store       StoreConfig       `mapstructure:"store"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Discord     DiscordConfig     `mapstructure:"discord"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.cacheTtl", 5*time.Second)
	v.SetDefault("auction.pollInterval", 100*time.Millisecond)
	v.SetDefault("auction.eventBlockRange", 10)
	v.SetDefault("auction.confirmationTimeout", 10*time.Minute)
	v.SetDefault("auction.reportRetries", 3)
	v.SetDefault("auction.retryInterval", time.Second)
	v.SetDefault("bid.kind", "feedUpdate")
	v.SetDefault("liquidation.debtToCover", "max")
	v.SetDefault("liquidation.closeFactorBps", 5000)
	v.SetDefault("liquidation.debtDecimals", 18)
	v.SetDefault("liquidation.priceDecimals", 8)
	v.SetDefault("signedApi.sourceTimeout", 2*time.Second)
	v.SetDefault("signedApi.workers", 8)
	v.SetDefault("signedApi.verifySignatures", true)
	v.SetDefault("signedApi.minSources", 1)
	v.SetDefault("executor.submitRetries", 2)
	v.SetDefault("executor.retryInterval", 500*time.Millisecond)
	v.SetDefault("executor.gasLimitMultiplierBps", 12000)
	v.SetDefault("store.driver", "badger")
	v.SetDefault("store.badger.path", "data/bids")
	v.SetDefault("redis.poolMultiplier", 1)
	v.SetDefault("redis.retry", 3)
	v.SetDefault("cache.driver", "primitive")
	v.SetDefault("cache.sizeMB", 16)
	v.SetDefault("cache.ttl", time.Minute)
	v.SetDefault("networks.oev.throttle", 8)
	v.SetDefault("networks.target.throttle", 8)
}

// loadConfig reads path into v, applying SEARCHER_* env overrides
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, xerrors.Errorf("%w: read %s: %v", domain.ErrConfig, path, err)
	}

	cfg := &Config{LogLevel: v.GetString("log.level")}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, xerrors.Errorf("%w: %v", domain.ErrConfig, err)
	}

	networks := v.Sub("networks")
	if networks == nil {
		return nil, xerrors.Errorf("%w: networks missing", domain.ErrConfig)
	}
	for name, dst := range map[string]*NetworkConfig{"oev": &cfg.Oev, "target": &cfg.Target} {
		sub := networks.Sub(name)
		if sub == nil {
			return nil, xerrors.Errorf("%w: networks.%s missing", domain.ErrConfig, name)
		}
		if err := sub.Unmarshal(dst); err != nil {
			return nil, xerrors.Errorf("%w: networks.%s: %v", domain.ErrConfig, name, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if err := bValidator.New().Struct(cfg); err != nil {
		return xerrors.Errorf("%w: %v", domain.ErrConfig, err)
	}
	if err := cfg.Auction.Parameters.Validate(); err != nil {
		return err
	}
	if amount, ok := new(big.Int).SetString(cfg.Bid.Amount, 10); !ok || amount.Sign() <= 0 {
		return xerrors.Errorf("%w: bid.amount must be a positive wei amount", domain.ErrConfig)
	}
	if cfg.Bid.Kind != "feedUpdate" {
		l := cfg.Liquidation
		if l.Target == "" || l.CollateralAsset == "" || l.DebtAsset == "" || cfg.Contracts.LendingPool == "" {
			return xerrors.Errorf("%w: %s needs liquidation.target, collateralAsset, debtAsset and contracts.lendingPool", domain.ErrConfig, cfg.Bid.Kind)
		}
	}
	if cfg.Store.Driver == "redis" || cfg.Cache.Driver == "redis" {
		if cfg.Redis.Uri == "" {
			return xerrors.Errorf("%w: redis.uri is required by the redis drivers", domain.ErrConfig)
		}
	}
	return nil
}

func (cfg *Config) bidAmount() *big.Int {
	v, _ := new(big.Int).SetString(cfg.Bid.Amount, 10)
	return v
}
