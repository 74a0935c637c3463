package ethereum

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMsgSignature(t *testing.T) {
	privateKey, publicKey, err := GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(*publicKey)
	message := []byte("signed data message 123456")
	signature, err := crypto.Sign(accounts.TextHash(message), privateKey)
	require.NoError(t, err)

	res, err := ValidateMsgSignature(message, signature, address)
	assert.NoError(t, err)
	assert.True(t, res)

	// incorrect message
	res2, err := ValidateMsgSignature([]byte("654321"), signature, address)
	assert.NoError(t, err)
	assert.False(t, res2)

	// incorrect signer
	_, pubKey, err := GenerateKey()
	require.NoError(t, err)
	res3, err := ValidateMsgSignature(message, signature, crypto.PubkeyToAddress(*pubKey))
	assert.NoError(t, err)
	assert.False(t, res3)

	// V is normalised on a copy
	assert.Less(t, signature[crypto.RecoveryIDOffset], byte(27))
}

func TestValidateHashSignature(t *testing.T) {
	req := require.New(t)
	hash := hexutil.MustDecode("0x7d4a470c1f919efbc629d12c57cf5dbc7eee958d0b6d787f842944c0be83c8c3")
	sig := hexutil.MustDecode("0xfae5218f6165f30bf7d8798d6f1990fde8fea58c336b36c8cd3078b4d8dc2a9d0448debd2b776fb0f6bdf91d1142474d4682057d290561814172bce4641108641c")
	signer := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	valid, err := ValidateHashSignature(hash, sig, signer)
	req.NoError(err)
	req.True(valid)
}

func TestValidateSignatureLength(t *testing.T) {
	_, err := ValidateHashSignature(make([]byte, 32), []byte{1, 2, 3}, common.Address{})
	require.Error(t, err)
}

func TestValidateSignedData(t *testing.T) {
	req := require.New(t)
	key, _, err := GenerateKey()
	req.NoError(err)
	airnode := crypto.PubkeyToAddress(key.PublicKey)
	templateId := common.HexToHash("0x0102")
	data := common.LeftPadBytes(big.NewInt(2000).Bytes(), 32)

	hash := SignedDataHash(templateId, 1700000000, data)
	req.Len(hash, 32)
	sig, err := crypto.Sign(accounts.TextHash(hash), key)
	req.NoError(err)

	ok, err := ValidateSignedData(airnode, templateId, 1700000000, data, sig)
	req.NoError(err)
	req.True(ok)

	ok, err = ValidateSignedData(airnode, templateId, 1700000001, data, sig)
	req.NoError(err)
	req.False(ok)
}

func TestKeySigner(t *testing.T) {
	req := require.New(t)
	_, err := NewKeySigner("")
	req.Equal(ErrEmptyKey, err)

	s, err := NewKeySigner("0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	req.NoError(err)
	req.Equal(common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), s.Address())
}
