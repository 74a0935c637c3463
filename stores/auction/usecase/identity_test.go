package usecase

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
)

var (
	bidder      = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	beneficiary = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

func nonce(b byte) *bytes.Reader {
	return bytes.NewReader(bytes.Repeat([]byte{b}, 32))
}

func TestDeriveTopic(t *testing.T) {
	req := require.New(t)
	topic := DeriveTopic(params, 1700000015)
	req.Equal(common.HexToHash("0xdd1514039e666e979b0f1e9380a356ec974eab44d903e3fa20adf1c5a32d1b7a"), topic)
	req.Equal(topic, DeriveTopic(params, 1700000015))

	req.NotEqual(topic, DeriveTopic(params, 1700000045))
	other := params
	other.DappId = 2
	req.NotEqual(topic, DeriveTopic(other, 1700000015))
	other = params
	other.MajorVersion = 2
	req.NotEqual(topic, DeriveTopic(other, 1700000015))
}

func TestDeriveDetails(t *testing.T) {
	req := require.New(t)
	details, err := DeriveDetails(beneficiary, nonce(0x11))
	req.NoError(err)
	req.Equal("0x00000000000000000000000070997970c51812dc3a010c7d01b50e0d17dc79c81111111111111111111111111111111111111111111111111111111111111111", hexutil.Encode(details))
	req.Equal(common.HexToHash("0x971413be5c95937e8e459ea64478d2e93f90403d2b9648c51a1683da6a318b89"), DetailsHash(details))

	_, err = DeriveDetails(beneficiary, bytes.NewReader([]byte{1, 2, 3}))
	req.Error(err)
}

func TestDeriveBidId(t *testing.T) {
	req := require.New(t)
	topic := DeriveTopic(params, 1700000015)
	details, err := DeriveDetails(beneficiary, nonce(0x11))
	req.NoError(err)

	id := DeriveBidId(bidder, topic, details)
	req.Equal(common.HexToHash("0xd4ca395dce9f1b429174bf1508231700b6be386ba7d2702a3c92564797d2dd13"), id)
	req.Equal(id, DeriveBidId(bidder, topic, details))

	fresh, err := DeriveDetails(beneficiary, nonce(0x22))
	req.NoError(err)
	req.NotEqual(id, DeriveBidId(bidder, topic, fresh), "new nonce, new id")
	req.NotEqual(id, DeriveBidId(beneficiary, topic, details))
	req.NotEqual(id, DeriveBidId(bidder, DeriveTopic(params, 1700000045), details))
}
