package repository

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/base/log"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/auction"
	"github.com/x-xyz/oev-searcher/domain/keys"
	"golang.org/x/xerrors"
)

type compatLogger struct {
	log.Logger
}

func (l compatLogger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

func (l compatLogger) Warningf(format string, args ...interface{}) {
	l.Warn(fmt.Sprintf(format, args...))
}

func (l compatLogger) Infof(format string, args ...interface{}) {
	l.Debug(fmt.Sprintf(format, args...))
}

func (l compatLogger) Debugf(format string, args ...interface{}) {
	l.Debug(fmt.Sprintf(format, args...))
}

type BadgerConfig struct {
	Path string
	// InMemory ignores Path and keeps nothing on disk
	InMemory bool
}

type BadgerRepo struct {
	db *badger.DB
}

var _ auction.BidRepo = (*BadgerRepo)(nil)

func NewBadger(cfg BadgerConfig) (*BadgerRepo, error) {
	opt := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opt = badger.DefaultOptions("").WithInMemory(true)
	}
	opt.Logger = compatLogger{log.Log().WithField("store", "badger")}

	db, err := badger.Open(opt)
	if err != nil {
		return nil, xerrors.Errorf("failed to open badger at %q: %w", cfg.Path, err)
	}
	return &BadgerRepo{db: db}, nil
}

func (im *BadgerRepo) Close() error {
	return im.db.Close()
}

func topicIndexKey(topic, id common.Hash) []byte {
	return []byte(keys.RedisKey(keys.PfxBidTopic, topic.Hex(), id.Hex()))
}

func (im *BadgerRepo) Store(c ctx.Ctx, r *auction.BidRecord) error {
	val, err := encode(r)
	if err != nil {
		c.WithField("err", err).Error("encode failed")
		return err
	}
	err = im.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(bidKey(r.Id)), val); err != nil {
			return err
		}
		return txn.Set(topicIndexKey(r.Topic, r.Id), nil)
	})
	if err != nil {
		c.WithFields(log.Fields{"err": err, "bidId": r.Id.Hex()}).Error("db.Update failed")
		return err
	}
	return nil
}

func get(txn *badger.Txn, key []byte) (*auction.BidRecord, error) {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	return decode(val)
}

func (im *BadgerRepo) FindOne(c ctx.Ctx, id common.Hash) (*auction.BidRecord, error) {
	var res *auction.BidRecord
	err := im.db.View(func(txn *badger.Txn) error {
		r, err := get(txn, []byte(bidKey(id)))
		res = r
		return err
	})
	if err == domain.ErrNotFound {
		return nil, err
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "bidId": id.Hex()}).Error("db.View failed")
		return nil, err
	}
	return res, nil
}

func (im *BadgerRepo) FindByTopic(c ctx.Ctx, topic common.Hash) ([]*auction.BidRecord, error) {
	res := []*auction.BidRecord{}
	prefix := []byte(topicKey(topic) + ":")
	err := im.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id := common.HexToHash(string(it.Item().Key()[len(prefix):]))
			r, err := get(txn, []byte(bidKey(id)))
			if err != nil {
				return err
			}
			res = append(res, r)
		}
		return nil
	})
	if err != nil {
		c.WithFields(log.Fields{"err": err, "topic": topic.Hex()}).Error("db.View failed")
		return nil, err
	}
	return filter(res, auction.FindAllOptions{}), nil
}

func (im *BadgerRepo) FindAll(c ctx.Ctx, opts ...auction.FindAllOptionsFunc) ([]*auction.BidRecord, error) {
	o, err := auction.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	res := []*auction.BidRecord{}
	prefix := []byte(keys.PfxBid + ":")
	err = im.db.View(func(txn *badger.Txn) error {
		iopts := badger.DefaultIteratorOptions
		iopts.Prefix = prefix
		it := txn.NewIterator(iopts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			r, err := decode(val)
			if err != nil {
				return err
			}
			res = append(res, r)
		}
		return nil
	})
	if err != nil {
		c.WithField("err", err).Error("db.View failed")
		return nil, err
	}
	return filter(res, o), nil
}

func (im *BadgerRepo) Ping(c ctx.Ctx) error {
	return im.db.View(func(txn *badger.Txn) error { return nil })
}
