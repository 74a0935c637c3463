package usecase

import (
	"encoding/binary"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/x-xyz/oev-searcher/base/abi"
	"github.com/x-xyz/oev-searcher/domain/auction"
	"golang.org/x/xerrors"
)

func packUint32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

// DeriveTopic is keccak256(packed(uint256 majorVersion, uint256 dappId, uint32 windowLength, uint32 cutoff))
func DeriveTopic(p auction.Parameters, cutoff uint64) common.Hash {
	return crypto.Keccak256Hash(
		math.U256Bytes(new(big.Int).SetUint64(p.MajorVersion)),
		math.U256Bytes(new(big.Int).SetUint64(p.DappId)),
		packUint32(p.WindowLengthSeconds),
		packUint32(uint32(cutoff)),
	)
}

// DeriveDetails encodes (beneficiary, nonce) with 32 fresh bytes from rand
func DeriveDetails(beneficiary common.Address, rand io.Reader) ([]byte, error) {
	var nonce [32]byte
	if _, err := io.ReadFull(rand, nonce[:]); err != nil {
		return nil, xerrors.Errorf("failed to draw nonce: %w", err)
	}
	return abi.BidDetailsArgs.Pack(beneficiary, nonce)
}

func DetailsHash(details []byte) common.Hash {
	return crypto.Keccak256Hash(details)
}

// DeriveBidId is keccak256(packed(address bidder, bytes32 topic, bytes32 keccak256(details)))
func DeriveBidId(bidder common.Address, topic common.Hash, details []byte) common.Hash {
	return crypto.Keccak256Hash(bidder.Bytes(), topic.Bytes(), DetailsHash(details).Bytes())
}
