package chain

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	bAbi "github.com/x-xyz/oev-searcher/base/abi"
	"github.com/x-xyz/oev-searcher/base/ctx"
	bEth "github.com/x-xyz/oev-searcher/base/ethereum"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/mocks"
)

const hardhatKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

var (
	mockCtx  = ctx.Background()
	chainId  = domain.ChainId(4913)
	contract = common.HexToAddress("0x34f13a5c0ad750d40c26ea58a3d4a8e2f2d2d1a1")
)

type testsuite struct {
	suite.Suite
	mockEth *mocks.EthClientRepo
	signer  bEth.Signer
	subject Client
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (s *testsuite) SetupTest() {
	signer, err := bEth.NewKeySigner(hardhatKey)
	s.Require().NoError(err)
	s.signer = signer
	s.mockEth = &mocks.EthClientRepo{}
	s.subject = NewClientWithBackends(map[domain.ChainId]domain.EthClientRepo{chainId: s.mockEth}, signer, 12000)
	s.subject.(*clientImpl).resendInterval = time.Millisecond
}

func (s *testsuite) expectSend() {
	s.mockEth.On("PendingNonceAt", mock.Anything, s.signer.Address()).Return(uint64(7), nil).Once()
	s.mockEth.On("SuggestGasPrice", mock.Anything).Return(big.NewInt(1e9), nil).Once()
}

func (s *testsuite) TestTransact() {
	value := big.NewInt(12345)
	s.expectSend()
	s.mockEth.On("EstimateGas", mock.Anything, mock.MatchedBy(func(msg ethereum.CallMsg) bool {
		return msg.Value.Cmp(value) == 0 && *msg.To == contract && msg.From == s.signer.Address()
	})).Return(uint64(100000), nil).Once()
	s.mockEth.On("SendTransaction", mock.Anything, mock.MatchedBy(func(tx *types.Transaction) bool {
		return tx.Gas() == 120000 && tx.Value().Cmp(value) == 0 && tx.Nonce() == 7 && tx.ChainId().Cmp(chainId.Big()) == 0
	})).Return(nil).Once()
	s.mockEth.On("TransactionReceipt", mock.Anything, mock.Anything).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(10)}, nil).Once()

	receipt, err := s.subject.Transact(mockCtx, chainId, contract, value, []byte{0x01})
	s.NoError(err)
	s.Equal(types.ReceiptStatusSuccessful, receipt.Status)
	s.mockEth.AssertExpectations(s.T())
}

func (s *testsuite) TestTransactEstimateRevert() {
	s.expectSend()
	s.mockEth.On("EstimateGas", mock.Anything, mock.Anything).Return(uint64(0), errors.New("execution reverted: Bid not awarded")).Once()

	_, err := s.subject.Transact(mockCtx, chainId, contract, nil, nil)
	s.True(errors.Is(err, domain.ErrOnChainRevert))
	s.mockEth.AssertNotCalled(s.T(), "SendTransaction", mock.Anything, mock.Anything)
}

func (s *testsuite) TestTransactSendFailure() {
	s.expectSend()
	s.mockEth.On("EstimateGas", mock.Anything, mock.Anything).Return(uint64(21000), nil).Once()
	hashes := []common.Hash{}
	s.mockEth.On("SendTransaction", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { hashes = append(hashes, args.Get(1).(*types.Transaction).Hash()) }).
		Return(errors.New("connection reset by peer")).Times(3)
	// nothing took nonce 7
	s.mockEth.On("PendingNonceAt", mock.Anything, s.signer.Address()).Return(uint64(7), nil).Once()

	_, err := s.subject.Transact(mockCtx, chainId, contract, nil, nil)
	s.True(errors.Is(err, domain.ErrSubmission))
	s.False(errors.Is(err, domain.ErrOnChainRevert))
	txErr, ok := domain.AsTxError(err)
	s.Require().True(ok)
	s.Equal(uint64(7), txErr.Nonce)
	s.Require().Len(hashes, 3)
	s.Equal(hashes[0], hashes[1])
	s.Equal(hashes[0], hashes[2])
	s.Equal(txErr.Hash, hashes[0])
	s.mockEth.AssertExpectations(s.T())
}

func (s *testsuite) TestTransactSendTimeoutResendsSameTx() {
	s.expectSend()
	s.mockEth.On("EstimateGas", mock.Anything, mock.Anything).Return(uint64(21000), nil).Once()
	sent := []*types.Transaction{}
	record := func(args mock.Arguments) { sent = append(sent, args.Get(1).(*types.Transaction)) }
	s.mockEth.On("SendTransaction", mock.Anything, mock.Anything).Run(record).Return(errors.New("read tcp: i/o timeout")).Once()
	s.mockEth.On("SendTransaction", mock.Anything, mock.Anything).Run(record).Return(errors.New("already known")).Once()
	s.mockEth.On("TransactionReceipt", mock.Anything, mock.Anything).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(10)}, nil).Once()

	receipt, err := s.subject.Transact(mockCtx, chainId, contract, big.NewInt(5), nil)
	s.Require().NoError(err)
	s.Equal(types.ReceiptStatusSuccessful, receipt.Status)
	s.Require().Len(sent, 2)
	s.Equal(uint64(7), sent[0].Nonce())
	s.Equal(uint64(7), sent[1].Nonce())
	s.Equal(sent[0].Hash(), sent[1].Hash())
	s.mockEth.AssertNumberOfCalls(s.T(), "PendingNonceAt", 1)
}

func (s *testsuite) TestTransactSendFailedButNonceAdvanced() {
	s.expectSend()
	s.mockEth.On("EstimateGas", mock.Anything, mock.Anything).Return(uint64(21000), nil).Once()
	s.mockEth.On("SendTransaction", mock.Anything, mock.Anything).Return(errors.New("i/o timeout")).Times(3)
	s.mockEth.On("PendingNonceAt", mock.Anything, s.signer.Address()).Return(uint64(8), nil).Once()
	s.mockEth.On("TransactionReceipt", mock.Anything, mock.Anything).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(11)}, nil).Once()

	receipt, err := s.subject.Transact(mockCtx, chainId, contract, nil, nil)
	s.Require().NoError(err)
	s.Equal(big.NewInt(11), receipt.BlockNumber)
}

func (s *testsuite) TestTransactSendFailedNonceUnknown() {
	s.expectSend()
	s.mockEth.On("EstimateGas", mock.Anything, mock.Anything).Return(uint64(21000), nil).Once()
	s.mockEth.On("SendTransaction", mock.Anything, mock.Anything).Return(errors.New("i/o timeout")).Times(3)
	s.mockEth.On("PendingNonceAt", mock.Anything, s.signer.Address()).Return(uint64(0), errors.New("i/o timeout")).Once()

	_, err := s.subject.Transact(mockCtx, chainId, contract, nil, nil)
	s.True(errors.Is(err, domain.ErrTxInFlight))
	s.False(errors.Is(err, domain.ErrSubmission))
}

func (s *testsuite) TestTransactWaitMinedIsInFlight() {
	s.expectSend()
	s.mockEth.On("EstimateGas", mock.Anything, mock.Anything).Return(uint64(21000), nil).Once()
	s.mockEth.On("SendTransaction", mock.Anything, mock.Anything).Return(nil).Once()
	s.mockEth.On("TransactionReceipt", mock.Anything, mock.Anything).Return(nil, ethereum.NotFound)

	c, cancel := ctx.WithTimeout(mockCtx, 50*time.Millisecond)
	defer cancel()
	_, err := s.subject.Transact(c, chainId, contract, nil, nil)
	s.True(errors.Is(err, domain.ErrTxInFlight))
	s.False(errors.Is(err, domain.ErrSubmission))
	txErr, ok := domain.AsTxError(err)
	s.Require().True(ok)
	s.Equal(uint64(7), txErr.Nonce)
}

func (s *testsuite) TestTransactWithNonce() {
	s.mockEth.On("SuggestGasPrice", mock.Anything).Return(big.NewInt(1e9), nil).Once()
	s.mockEth.On("EstimateGas", mock.Anything, mock.Anything).Return(uint64(21000), nil).Once()
	s.mockEth.On("SendTransaction", mock.Anything, mock.MatchedBy(func(tx *types.Transaction) bool {
		return tx.Nonce() == 3
	})).Return(nil).Once()
	s.mockEth.On("TransactionReceipt", mock.Anything, mock.Anything).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful}, nil).Once()

	_, err := s.subject.Transact(mockCtx, chainId, contract, nil, nil, WithNonce(3))
	s.NoError(err)
	s.mockEth.AssertNotCalled(s.T(), "PendingNonceAt", mock.Anything, mock.Anything)
}

func (s *testsuite) TestTransactNonceFailure() {
	s.mockEth.On("PendingNonceAt", mock.Anything, s.signer.Address()).Return(uint64(0), errors.New("timeout")).Once()
	_, err := s.subject.Transact(mockCtx, chainId, contract, nil, nil)
	s.True(errors.Is(err, domain.ErrSubmission))
}

func (s *testsuite) TestTransactReceiptReverted() {
	s.expectSend()
	s.mockEth.On("EstimateGas", mock.Anything, mock.Anything).Return(uint64(21000), nil).Once()
	s.mockEth.On("SendTransaction", mock.Anything, mock.Anything).Return(nil).Once()
	s.mockEth.On("TransactionReceipt", mock.Anything, mock.Anything).Return(&types.Receipt{Status: types.ReceiptStatusFailed}, nil).Once()

	receipt, err := s.subject.Transact(mockCtx, chainId, contract, nil, nil)
	s.True(errors.Is(err, domain.ErrOnChainRevert))
	s.NotNil(receipt)
}

func (s *testsuite) TestUnsupportedChain() {
	_, err := s.subject.Transact(mockCtx, domain.ChainId(1), contract, nil, nil)
	s.True(errors.Is(err, ErrUnsupportedChain))
	_, err = s.subject.BlockNumber(mockCtx, domain.ChainId(1))
	s.True(errors.Is(err, ErrUnsupportedChain))
}

func (s *testsuite) TestCall() {
	feedId := common.HexToHash("0xabcd")
	method := bAbi.Api3ServerV1ABI.Methods[bAbi.DapiNameHashToDataFeedId]
	out, err := method.Outputs.Pack([32]byte(feedId))
	s.Require().NoError(err)
	s.mockEth.On("CallContract", mock.Anything, mock.MatchedBy(func(msg ethereum.CallMsg) bool {
		return *msg.To == contract && len(msg.Data) == 36
	}), (*big.Int)(nil)).Return(out, nil).Once()

	res, err := s.subject.Call(mockCtx, chainId, contract, bAbi.Api3ServerV1ABI, bAbi.DapiNameHashToDataFeedId, [32]byte(common.HexToHash("0x01")))
	s.NoError(err)
	s.Equal([32]byte(feedId), res[0].([32]byte))
}

func (s *testsuite) TestPing() {
	s.mockEth.On("BlockNumber", mock.Anything).Return(uint64(1), nil).Once()
	s.NoError(s.subject.Ping(mockCtx))
	s.mockEth.On("BlockNumber", mock.Anything).Return(uint64(0), errors.New("down")).Once()
	s.Error(s.subject.Ping(mockCtx))
}
