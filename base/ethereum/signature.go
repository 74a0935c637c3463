package ethereum

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ValidateMsgSignature checks signature against the eth signed message hash of message
func ValidateMsgSignature(message, signature []byte, signer common.Address) (bool, error) {
	return validateSignature(message, signature, signer, true)
}

// ValidateHashSignature checks signature against hash as is
func ValidateHashSignature(hash, signature []byte, signer common.Address) (bool, error) {
	return validateSignature(hash, signature, signer, false)
}

// SignedDataHash is the message an airnode signs for one observation:
// keccak256(abi.encodePacked(templateId, timestamp, data))
func SignedDataHash(templateId common.Hash, timestamp uint64, data []byte) []byte {
	ts := common.LeftPadBytes(new(big.Int).SetUint64(timestamp).Bytes(), 32)
	return crypto.Keccak256(templateId.Bytes(), ts, data)
}

// ValidateSignedData reports whether airnode signed (templateId, timestamp, data)
func ValidateSignedData(airnode common.Address, templateId common.Hash, timestamp uint64, data, signature []byte) (bool, error) {
	return ValidateMsgSignature(SignedDataHash(templateId, timestamp, data), signature, airnode)
}

func validateSignature(data, signature []byte, signer common.Address, applyTextHash bool) (bool, error) {
	hash := data
	if applyTextHash {
		hash = accounts.TextHash(data)
	}
	recovered, err := ecRecover(hash, signature)
	if err != nil {
		return false, err
	}
	return recovered == signer, nil
}

// ecRecover returns the address for the account that was used to create the signature.
// copy of internal go-ethereum function:
// https://github.com/ethereum/go-ethereum/blob/v1.10.9/internal/ethapi/api.go#L524
func ecRecover(data []byte, signature []byte) (common.Address, error) {
	if len(signature) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes long", crypto.SignatureLength)
	}

	// callers keep their slice, V is normalised on a copy
	sig := make([]byte, len(signature))
	copy(sig, signature)

	// support both versions of `eth_sign` responses
	//	@see	https://github.com/ethereumjs/ethereumjs-util/blob/master/src/signature.ts#L112
	if sig[crypto.RecoveryIDOffset] < 27 {
		sig[crypto.RecoveryIDOffset] += 27
	}

	if sig[crypto.RecoveryIDOffset] != 27 && sig[crypto.RecoveryIDOffset] != 28 {
		return common.Address{}, fmt.Errorf("invalid Ethereum signature (V is not 27 or 28)")
	}

	sig[crypto.RecoveryIDOffset] -= 27 // Transform yellow paper V from 27/28 to 0/1

	rpk, err := crypto.SigToPub(data, sig)
	if err != nil {
		return common.Address{}, err
	}

	return crypto.PubkeyToAddress(*rpk), nil
}
