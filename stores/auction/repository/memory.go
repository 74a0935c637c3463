package repository

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/auction"
)

type memoryRepo struct {
	mu      sync.RWMutex
	records map[common.Hash][]byte
}

// NewMemory keeps records for the lifetime of the process only
func NewMemory() auction.BidRepo {
	return &memoryRepo{records: map[common.Hash][]byte{}}
}

func (im *memoryRepo) Store(c ctx.Ctx, r *auction.BidRecord) error {
	val, err := encode(r)
	if err != nil {
		c.WithField("err", err).Error("encode failed")
		return err
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.records[r.Id] = val
	return nil
}

func (im *memoryRepo) FindOne(c ctx.Ctx, id common.Hash) (*auction.BidRecord, error) {
	im.mu.RLock()
	val, ok := im.records[id]
	im.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return decode(val)
}

func (im *memoryRepo) all() ([]*auction.BidRecord, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	res := make([]*auction.BidRecord, 0, len(im.records))
	for _, val := range im.records {
		r, err := decode(val)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

func (im *memoryRepo) FindByTopic(c ctx.Ctx, topic common.Hash) ([]*auction.BidRecord, error) {
	records, err := im.all()
	if err != nil {
		c.WithField("err", err).Error("all failed")
		return nil, err
	}
	res := []*auction.BidRecord{}
	for _, r := range records {
		if r.Topic == topic {
			res = append(res, r)
		}
	}
	return filter(res, auction.FindAllOptions{}), nil
}

func (im *memoryRepo) FindAll(c ctx.Ctx, opts ...auction.FindAllOptionsFunc) ([]*auction.BidRecord, error) {
	o, err := auction.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	records, err := im.all()
	if err != nil {
		c.WithField("err", err).Error("all failed")
		return nil, err
	}
	return filter(records, o), nil
}
