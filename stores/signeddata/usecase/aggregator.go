package usecase

import (
	"math/big"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/shopspring/decimal"
	"github.com/viney-shih/goroutines"
	bAbi "github.com/x-xyz/oev-searcher/base/abi"
	"github.com/x-xyz/oev-searcher/base/ctx"
	bEth "github.com/x-xyz/oev-searcher/base/ethereum"
	"github.com/x-xyz/oev-searcher/base/log"
	"github.com/x-xyz/oev-searcher/base/metrics"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/signeddata"
	"golang.org/x/xerrors"
)

const (
	defaultSourceTimeout = 2 * time.Second
	defaultWorkers       = 8
	defaultMinSources    = 1
	encodedValueLength   = 32
)

type AggregatorCfg struct {
	Registry signeddata.FeedRegistry
	Client   signeddata.SourceClient
	// SourceTimeout bounds each source fetch on its own
	SourceTimeout time.Duration
	Workers       int
	// VerifySignatures drops observations not signed by their airnode
	VerifySignatures bool
	// MaxAge drops observations older than now - MaxAge, 0 disables the check
	MaxAge time.Duration
	// MinSources is the quorum of sources that must answer in time
	MinSources int
	Now        func() time.Time
}

type aggregator struct {
	registry         signeddata.FeedRegistry
	client           signeddata.SourceClient
	sourceTimeout    time.Duration
	workers          int
	verifySignatures bool
	maxAge           time.Duration
	minSources       int
	now              func() time.Time
	met              metrics.Service
}

func NewAggregator(cfg *AggregatorCfg) signeddata.Aggregator {
	a := &aggregator{
		registry:         cfg.Registry,
		client:           cfg.Client,
		sourceTimeout:    cfg.SourceTimeout,
		workers:          cfg.Workers,
		verifySignatures: cfg.VerifySignatures,
		maxAge:           cfg.MaxAge,
		minSources:       cfg.MinSources,
		now:              cfg.Now,
		met:              metrics.New("signeddata"),
	}
	if a.sourceTimeout <= 0 {
		a.sourceTimeout = defaultSourceTimeout
	}
	if a.workers <= 0 {
		a.workers = defaultWorkers
	}
	if a.minSources <= 0 {
		a.minSources = defaultMinSources
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a
}

func (a *aggregator) Fetch(c ctx.Ctx, feedName string) (*signeddata.Aggregate, error) {
	return a.fetch(c, feedName, 0)
}

func (a *aggregator) FetchBefore(c ctx.Ctx, feedName string, cutoff uint64) (*signeddata.Aggregate, error) {
	return a.fetch(c, feedName, cutoff)
}

type sourceResult struct {
	idx     int
	payload *signeddata.SourcePayload
}

func (a *aggregator) fetch(c ctx.Ctx, feedName string, cutoff uint64) (*signeddata.Aggregate, error) {
	defer a.met.BumpTime("fetch.time").End()
	c = ctx.WithValue(c, "feed", feedName)

	feed, err := a.registry.Resolve(c, feedName)
	if err != nil {
		c.WithField("err", err).Error("registry.Resolve failed")
		return nil, err
	}
	if len(feed.Sources) == 0 {
		return nil, xerrors.Errorf("%w: %s has no sources", domain.ErrFeedResolution, feedName)
	}

	b := goroutines.NewBatch(a.workers, goroutines.WithBatchSize(len(feed.Sources)))
	defer b.Close()
	for i := range feed.Sources {
		idx := i
		src := feed.Sources[i]
		b.Queue(func() (interface{}, error) {
			p, err := a.fetchSource(c, src, cutoff)
			return sourceResult{idx: idx, payload: p}, err
		})
	}
	b.QueueComplete()

	winners := make([]*signeddata.SourcePayload, len(feed.Sources))
	for ret := range b.Results() {
		if ret.Error() != nil {
			continue
		}
		res := ret.Value().(sourceResult)
		winners[res.idx] = res.payload
	}

	agg := &signeddata.Aggregate{Feed: *feed}
	values := []decimal.Decimal{}
	for _, w := range winners {
		if w == nil {
			continue
		}
		agg.Payloads = append(agg.Payloads, *w)
		values = append(values, w.Value)
	}
	a.met.BumpAvg("aggregate.sources", float64(len(values)), "feed", feedName)
	if len(values) < a.minSources {
		return nil, xerrors.Errorf("%w: %s has %d of %d sources", domain.ErrNoQuorum, feedName, len(values), a.minSources)
	}
	if agg.Value, err = Median(values); err != nil {
		return nil, xerrors.Errorf("%w: %s", err, feedName)
	}

	c.WithFields(log.Fields{
		"sources": len(values),
		"value":   agg.Value.String(),
	}).Info("signed data aggregated")
	return agg, nil
}

// fetchSource returns nil without error when the source has no usable observation
func (a *aggregator) fetchSource(c ctx.Ctx, src signeddata.Source, cutoff uint64) (*signeddata.SourcePayload, error) {
	c = ctx.WithValue(c, "airnode", src.Airnode.Hex())
	sc, cancel := ctx.WithTimeout(c, a.sourceTimeout)
	defer cancel()

	observations, err := a.client.GetObservations(sc, src.Airnode)
	if err != nil {
		a.met.BumpSum("source.err", 1, "airnode", src.Airnode.Hex())
		c.WithField("err", err).Warn("client.GetObservations failed, source skipped")
		return nil, err
	}

	best, ok := a.freshest(c, src, observations, cutoff)
	if !ok {
		c.Warn("no matching observation, source skipped")
		return nil, nil
	}

	payload, err := bAbi.SignedDataArgs.Pack(
		src.Airnode,
		[32]byte(src.TemplateId),
		new(big.Int).SetUint64(best.Timestamp),
		best.EncodedValue,
		best.Signature,
	)
	if err != nil {
		c.WithField("err", err).Error("SignedDataArgs.Pack failed")
		return nil, err
	}

	return &signeddata.SourcePayload{
		Source:      src,
		Observation: best,
		Value:       DecodeValue(best.EncodedValue),
		Payload:     payload,
	}, nil
}

// freshest picks the latest usable observation; on equal timestamps the first one listed wins
func (a *aggregator) freshest(c ctx.Ctx, src signeddata.Source, observations []signeddata.Observation, cutoff uint64) (signeddata.Observation, bool) {
	oevTemplateId := src.OevTemplateId()
	var minTimestamp uint64
	if a.maxAge > 0 {
		if floor := a.now().Add(-a.maxAge).Unix(); floor > 0 {
			minTimestamp = uint64(floor)
		}
	}

	best, found := signeddata.Observation{}, false
	for _, o := range observations {
		if o.TemplateId != oevTemplateId || o.Airnode != src.Airnode {
			continue
		}
		if len(o.EncodedValue) != encodedValueLength {
			continue
		}
		if cutoff > 0 && o.Timestamp > cutoff {
			continue
		}
		if o.Timestamp < minTimestamp {
			continue
		}
		if found && o.Timestamp <= best.Timestamp {
			continue
		}
		if a.verifySignatures {
			valid, err := bEth.ValidateSignedData(src.Airnode, o.TemplateId, o.Timestamp, o.EncodedValue, o.Signature)
			if err != nil || !valid {
				c.WithFields(log.Fields{"err": err, "timestamp": o.Timestamp}).Warn("invalid observation signature")
				continue
			}
		}
		best, found = o, true
	}
	return best, found
}

// DecodeValue reads a 32 byte two's complement int256 with 18 decimals
func DecodeValue(encoded []byte) decimal.Decimal {
	return domain.FromWad(math.S256(new(big.Int).SetBytes(encoded)))
}

// Median of values; an even count averages the middle two
func Median(values []decimal.Decimal) (decimal.Decimal, error) {
	if len(values) == 0 {
		return decimal.Zero, domain.ErrNoQuorum
	}
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2)), nil
}
