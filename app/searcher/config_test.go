package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/oev-searcher/domain"
)

const baseConfig = `
log:
  level: debug
auction:
  dappId: 1
  windowLengthSeconds: 30
  biddingPhaseLengthSeconds: 25
  biddingPhaseBufferSeconds: 5
networks:
  oev:
    chainId: 4913
    rpcUrl: https://oev.rpc.example
  target:
    chainId: 1
    rpcUrl: https://target.rpc.example
    throttle: 2
contracts:
  auctionHouse: "0x34f13A5C0AD750d212267bcBc230c87AEFD35CC5"
  api3ServerV1: "0x709944a48cAf83535e43471680fDA4905FB3920a"
  airseekerRegistry: "0x1AE5EcAb4a61F1a89CBC2E8aD2d4d70F3c0A5D41"
  executor: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
bid:
  amount: "1000000000000000"
  feedName: ETH/USD
`

type configSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(configSuite))
}

func (s *configSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *configSuite) load(body string) (*Config, error) {
	path := filepath.Join(s.dir, "config.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(body), 0o600))
	return loadConfig(viper.New(), path)
}

func (s *configSuite) TestDefaults() {
	cfg, err := s.load(baseConfig)
	s.Require().NoError(err)

	s.Equal("debug", cfg.LogLevel)
	s.Equal(uint64(1), cfg.Auction.DappId)
	s.Equal(uint32(30), cfg.Auction.WindowLengthSeconds)
	s.Equal(10*time.Minute, cfg.Auction.ConfirmationTimeout)
	s.Equal(int64(4913), cfg.Oev.ChainId)
	s.Equal(8, cfg.Oev.Throttle)
	s.Equal(2, cfg.Target.Throttle)
	s.Equal("feedUpdate", cfg.Bid.Kind)
	s.Equal("badger", cfg.Store.Driver)
	s.Equal("primitive", cfg.Cache.Driver)
	s.Equal(2*time.Second, cfg.SignedApi.SourceTimeout)
	s.Equal("1000000000000000", cfg.bidAmount().String())
}

func (s *configSuite) TestEnvOverride() {
	s.T().Setenv("SEARCHER_AUCTION_REPORTRETRIES", "7")
	cfg, err := s.load(baseConfig)
	s.Require().NoError(err)
	s.Equal(7, cfg.Auction.ReportRetries)
}

func (s *configSuite) TestInvalid() {
	tests := []struct {
		name string
		body string
	}{
		{"bad address", strings.Replace(baseConfig, "0x5FbDB2315678afecb367f032d93F642f64180aa3", "0x1234", 1)},
		{"bad amount", strings.Replace(baseConfig, `"1000000000000000"`, `"-1"`, 1)},
		{"bad kind", baseConfig + "  kind: swap\n"},
		{"buffer too long", strings.Replace(baseConfig, "biddingPhaseBufferSeconds: 5", "biddingPhaseBufferSeconds: 25", 1)},
		{"liquidation without target", baseConfig + "  kind: directLiquidation\n"},
		{"redis without uri", baseConfig + "store:\n  driver: redis\n"},
	}
	for _, tt := range tests {
		_, err := s.load(tt.body)
		s.ErrorIs(err, domain.ErrConfig, tt.name)
	}
}

func (s *configSuite) TestMissingFile() {
	_, err := loadConfig(viper.New(), filepath.Join(s.dir, "missing.yaml"))
	s.ErrorIs(err, domain.ErrConfig)
}
