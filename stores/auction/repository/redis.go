package repository

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/base/log"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/auction"
	"github.com/x-xyz/oev-searcher/domain/keys"
	"github.com/x-xyz/oev-searcher/service/redis"
)

type redisRepo struct {
	redis redis.Service
}

// NewRedis stores each record as json under bid:<id> with set indexes per topic and overall
func NewRedis(redis redis.Service) auction.BidRepo {
	return &redisRepo{redis: redis}
}

func (im *redisRepo) Store(c ctx.Ctx, r *auction.BidRecord) error {
	val, err := encode(r)
	if err != nil {
		c.WithField("err", err).Error("encode failed")
		return err
	}
	if err := im.redis.Set(c, bidKey(r.Id), val, redis.Forever); err != nil {
		c.WithFields(log.Fields{"err": err, "bidId": r.Id.Hex()}).Error("redis.Set failed")
		return err
	}
	if err := im.redis.SAdd(c, topicKey(r.Topic), r.Id.Hex()); err != nil {
		c.WithFields(log.Fields{"err": err, "bidId": r.Id.Hex()}).Error("redis.SAdd topic failed")
		return err
	}
	if err := im.redis.SAdd(c, keys.PfxBidIndex, r.Id.Hex()); err != nil {
		c.WithFields(log.Fields{"err": err, "bidId": r.Id.Hex()}).Error("redis.SAdd index failed")
		return err
	}
	return nil
}

func (im *redisRepo) FindOne(c ctx.Ctx, id common.Hash) (*auction.BidRecord, error) {
	val, err := im.redis.Get(c, bidKey(id))
	if err == redis.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "bidId": id.Hex()}).Error("redis.Get failed")
		return nil, err
	}
	r, err := decode(val)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "bidId": id.Hex()}).Error("decode failed")
		return nil, err
	}
	return r, nil
}

func (im *redisRepo) members(c ctx.Ctx, set string) ([]*auction.BidRecord, error) {
	ids, err := im.redis.SMembers(c, set)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "set": set}).Error("redis.SMembers failed")
		return nil, err
	}
	res := make([]*auction.BidRecord, 0, len(ids))
	for _, id := range ids {
		r, err := im.FindOne(c, common.HexToHash(id))
		if err == domain.ErrNotFound {
			c.WithFields(log.Fields{"bidId": id, "set": set}).Warn("indexed bid is missing")
			continue
		} else if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

func (im *redisRepo) FindByTopic(c ctx.Ctx, topic common.Hash) ([]*auction.BidRecord, error) {
	res, err := im.members(c, topicKey(topic))
	if err != nil {
		return nil, err
	}
	return filter(res, auction.FindAllOptions{}), nil
}

func (im *redisRepo) FindAll(c ctx.Ctx, opts ...auction.FindAllOptionsFunc) ([]*auction.BidRecord, error) {
	o, err := auction.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	res, err := im.members(c, keys.PfxBidIndex)
	if err != nil {
		return nil, err
	}
	return filter(res, o), nil
}
