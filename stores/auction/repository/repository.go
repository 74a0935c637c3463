package repository

import (
	"encoding/json"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/x-xyz/oev-searcher/domain/auction"
	"github.com/x-xyz/oev-searcher/domain/keys"
)

func bidKey(id common.Hash) string {
	return keys.RedisKey(keys.PfxBid, id.Hex())
}

func topicKey(topic common.Hash) string {
	return keys.RedisKey(keys.PfxBidTopic, topic.Hex())
}

func encode(r *auction.BidRecord) ([]byte, error) {
	return json.Marshal(r)
}

func decode(val []byte) (*auction.BidRecord, error) {
	r := &auction.BidRecord{}
	if err := json.Unmarshal(val, r); err != nil {
		return nil, err
	}
	return r, nil
}

// filter keeps matching records, newest first, cut to the limit
func filter(records []*auction.BidRecord, opts auction.FindAllOptions) []*auction.BidRecord {
	res := make([]*auction.BidRecord, 0, len(records))
	for _, r := range records {
		if opts.Match(r) {
			res = append(res, r)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	if opts.Limit > 0 && len(res) > opts.Limit {
		res = res[:opts.Limit]
	}
	return res
}
