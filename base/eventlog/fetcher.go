package eventlog

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	bCtx "github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/base/log"
)

const TooManyLogsTimeout = 10 * time.Second

// Client is the subset of an rpc client needed to scan logs
type Client interface {
	BlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
}

// FetchTrailing returns logs matching q within the last n blocks. FromBlock and
// ToBlock of q are overwritten.
func FetchTrailing(ctx bCtx.Ctx, client Client, q ethereum.FilterQuery, n uint64) ([]types.Log, error) {
	head, err := client.BlockNumber(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.BlockNumber failed")
		return nil, err
	}
	return Fetch(ctx, client, q, trailing(head, n))
}

// Fetch queries r, halving it whenever the node refuses the range
func Fetch(ctx bCtx.Ctx, client Client, q ethereum.FilterQuery, r *blockRange) ([]types.Log, error) {
	res := []types.Log{}
	ranges := []*blockRange{r}
	for len(ranges) > 0 {
		idx := len(ranges) - 1
		r := ranges[idx]
		ranges = ranges[:idx]
		q.FromBlock = r.begin
		q.ToBlock = r.end
		tCtx, cancel := bCtx.WithTimeout(ctx, TooManyLogsTimeout)
		logs, err := client.FilterLogs(tCtx, q)
		cancel()
		if err != nil {
			if r.single() || ctx.Err() != nil {
				ctx.WithFields(log.Fields{
					"err":   err,
					"range": r.String(),
				}).Error("client.FilterLogs failed")
				return nil, err
			}
			r1, r2 := r.split()
			ranges = append(ranges, r2, r1)
			ctx.WithFields(log.Fields{
				"originalRange": r.String(),
				"range1":        r1.String(),
				"range2":        r2.String(),
			}).Debug("splitting blockRange")
			continue
		}
		res = append(res, logs...)
	}
	return res, nil
}

// Range builds an inclusive block range for Fetch
func Range(begin, end uint64) (*blockRange, error) {
	if begin > end {
		return nil, fmt.Errorf("invalid block range %d-%d", begin, end)
	}
	return newBlockRange(begin, end), nil
}
