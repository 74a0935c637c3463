package eventlog

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/suite"
	bCtx "github.com/x-xyz/oev-searcher/base/ctx"
)

type fakeClient struct {
	head     uint64
	maxSpan  uint64
	failAll  bool
	queries  [][2]uint64
	logEvery uint64
}

func (f *fakeClient) BlockNumber(ctx context.Context) (uint64, error) {
	return f.head, nil
}

func (f *fakeClient) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	from, to := q.FromBlock.Uint64(), q.ToBlock.Uint64()
	f.queries = append(f.queries, [2]uint64{from, to})
	if f.failAll || to-from+1 > f.maxSpan {
		return nil, errors.New("query returned more than 10000 results")
	}
	logs := []types.Log{}
	for b := from; b <= to; b++ {
		if f.logEvery > 0 && b%f.logEvery == 0 {
			logs = append(logs, types.Log{BlockNumber: b})
		}
	}
	return logs, nil
}

type fetcherSuite struct {
	suite.Suite
}

func TestFetcher(t *testing.T) {
	suite.Run(t, new(fetcherSuite))
}

func (s *fetcherSuite) TestTrailingWindow() {
	c := &fakeClient{head: 100, maxSpan: 100, logEvery: 1}
	logs, err := FetchTrailing(bCtx.Background(), c, ethereum.FilterQuery{}, 10)
	s.NoError(err)
	s.Len(logs, 10)
	s.Equal([][2]uint64{{91, 100}}, c.queries)
}

func (s *fetcherSuite) TestSplitKeepsOrder() {
	c := &fakeClient{head: 100, maxSpan: 3, logEvery: 1}
	logs, err := FetchTrailing(bCtx.Background(), c, ethereum.FilterQuery{}, 10)
	s.NoError(err)
	s.Len(logs, 10)
	for i, l := range logs {
		s.Equal(uint64(91+i), l.BlockNumber)
	}
}

func (s *fetcherSuite) TestSingleBlockFailure() {
	c := &fakeClient{head: 10, failAll: true}
	_, err := FetchTrailing(bCtx.Background(), c, ethereum.FilterQuery{}, 2)
	s.Error(err)
}

func (s *fetcherSuite) TestRange() {
	_, err := Range(5, 4)
	s.Error(err)
	r, err := Range(4, 5)
	s.NoError(err)
	s.Equal("blockRange{4-5}", r.String())
}
