package usecase

import (
	"crypto/rand"
	"errors"
	"io"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/x-xyz/oev-searcher/base/backoff"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/base/log"
	"github.com/x-xyz/oev-searcher/base/metrics"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/auction"
	"github.com/x-xyz/oev-searcher/domain/executor"
	"github.com/x-xyz/oev-searcher/domain/liquidation"
	"github.com/x-xyz/oev-searcher/domain/signeddata"
	"golang.org/x/xerrors"
)

const (
	defaultPollInterval    = 100 * time.Millisecond
	defaultEventBlockRange = 10
	defaultRetryInterval   = time.Second
	storeAttempts          = 3
)

type Config struct {
	Params auction.Parameters
	// chain the awarded update lands on
	TargetChainId domain.ChainId

	Authority  auction.Authority
	Aggregator signeddata.Aggregator
	Executor   executor.Executor
	// required by the liquidation kinds
	Inspector liquidation.Inspector
	Repo      auction.BidRepo
	// optional
	Notifier domain.Notifier

	PollInterval    time.Duration
	EventBlockRange uint64
	// 0 waits for confirmation until the caller gives up
	ConfirmationTimeout time.Duration
	ReportRetries       int
	RetryInterval       time.Duration

	// defaults to time.Now and crypto/rand
	Now  func() time.Time
	Rand io.Reader
}

// Orchestrator drives one bid through the auction lifecycle at a time
type Orchestrator struct {
	params        auction.Parameters
	targetChainId domain.ChainId

	authority  auction.Authority
	aggregator signeddata.Aggregator
	executor   executor.Executor
	inspector  liquidation.Inspector
	repo       auction.BidRepo
	notifier   domain.Notifier
	met        metrics.Service

	pollInterval        time.Duration
	eventBlockRange     uint64
	confirmationTimeout time.Duration
	reportRetries       int
	retryInterval       time.Duration

	now  func() time.Time
	rand io.Reader
}

var _ auction.Usecase = (*Orchestrator)(nil)

func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	if cfg.Authority == nil || cfg.Aggregator == nil || cfg.Executor == nil || cfg.Repo == nil {
		return nil, xerrors.Errorf("%w: authority, aggregator, executor and repo are required", domain.ErrConfig)
	}
	if cfg.Executor.Kind().IsLiquidation() && cfg.Inspector == nil {
		return nil, xerrors.Errorf("%w: %s requires a liquidation inspector", domain.ErrConfig, cfg.Executor.Kind())
	}

	o := &Orchestrator{
		params:              cfg.Params,
		targetChainId:       cfg.TargetChainId,
		authority:           cfg.Authority,
		aggregator:          cfg.Aggregator,
		executor:            cfg.Executor,
		inspector:           cfg.Inspector,
		repo:                cfg.Repo,
		notifier:            cfg.Notifier,
		met:                 metrics.New("auction"),
		pollInterval:        cfg.PollInterval,
		eventBlockRange:     cfg.EventBlockRange,
		confirmationTimeout: cfg.ConfirmationTimeout,
		reportRetries:       cfg.ReportRetries,
		retryInterval:       cfg.RetryInterval,
		now:                 cfg.Now,
		rand:                cfg.Rand,
	}
	if o.pollInterval <= 0 {
		o.pollInterval = defaultPollInterval
	}
	if o.eventBlockRange == 0 {
		o.eventBlockRange = defaultEventBlockRange
	}
	if o.retryInterval <= 0 {
		o.retryInterval = defaultRetryInterval
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.rand == nil {
		o.rand = rand.Reader
	}
	return o, nil
}

func (o *Orchestrator) unixNow() uint64 {
	return uint64(o.now().Unix())
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "confirmed"
	case domain.IsRaceLoss(err):
		return "race_loss"
	case domain.IsProtocolError(err):
		return "protocol"
	case domain.IsTransient(err):
		return "transient"
	}
	return "error"
}

func (o *Orchestrator) Run(c ctx.Ctx, req auction.CycleRequest) (rec *auction.BidRecord, err error) {
	if req.Amount == nil || req.Amount.Sign() <= 0 {
		return nil, xerrors.Errorf("%w: bid amount must be positive", domain.ErrBadParamInput)
	}
	cycleId := uuid.NewString()
	c = ctx.WithValue(c, "cycleId", cycleId)
	defer func() {
		o.met.BumpSum("cycle.count", 1, "outcome", outcomeOf(err), "kind", o.executor.Kind().String())
	}()

	w := ComputeWindow(o.unixNow(), o.params)
	topic := DeriveTopic(o.params, w.CutoffTimestamp)
	c = ctx.WithValue(c, "topic", topic.Hex())

	if err := o.guardTopic(c, topic); err != nil {
		return nil, err
	}

	agg, err := o.aggregator.FetchBefore(c, req.FeedName, w.CutoffTimestamp)
	if err != nil {
		c.WithField("err", err).Error("aggregator.FetchBefore failed")
		return nil, err
	}

	var liq *liquidation.Parameters
	if o.executor.Kind().IsLiquidation() {
		if req.Liquidation == nil {
			return nil, xerrors.Errorf("%w: %s needs a liquidation target", domain.ErrConfig, o.executor.Kind())
		}
		if liq, err = o.inspector.Assess(c, *req.Liquidation, agg.Value); err != nil {
			c.WithField("err", err).Warn("inspector.Assess failed")
			return nil, err
		}
	}

	if rec, err = o.newRecord(c, req, w, topic, cycleId); err != nil {
		return nil, err
	}
	c = ctx.WithValue(c, "bidId", rec.Id.Hex())

	if err := o.Submit(c, rec); err != nil {
		return rec, err
	}
	auth, err := o.AwaitAward(c, rec)
	if err != nil {
		return rec, err
	}
	if err := o.ExecuteAction(c, rec, executor.Request{
		Authorization: *auth,
		BidAmount:     rec.AmountInt(),
		SignedData:    agg.SignedData(),
		Liquidation:   liq,
	}); err != nil {
		return rec, err
	}
	if err := o.ReportFulfillment(c, rec); err != nil {
		return rec, err
	}
	if err := o.AwaitConfirmation(c, rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// guardTopic refuses a second live bid in one window
func (o *Orchestrator) guardTopic(c ctx.Ctx, topic common.Hash) error {
	var recs []*auction.BidRecord
	if err := o.retryTransient(c, "find by topic", func() error {
		var err error
		if recs, err = o.repo.FindByTopic(c, topic); err != nil {
			c.WithField("err", err).Warn("repo.FindByTopic failed")
		}
		return err
	}); err != nil {
		return err
	}
	for _, r := range recs {
		if !r.Status.IsTerminal() {
			return xerrors.Errorf("%w: bid %s is %s", domain.ErrWindowBusy, r.Id.Hex(), r.Status)
		}
	}
	return nil
}

func (o *Orchestrator) newRecord(c ctx.Ctx, req auction.CycleRequest, w auction.Window, topic common.Hash, cycleId string) (*auction.BidRecord, error) {
	details, err := DeriveDetails(req.Beneficiary, o.rand)
	if err != nil {
		c.WithField("err", err).Error("DeriveDetails failed")
		return nil, err
	}
	bidder := o.authority.Bidder()
	rec := auction.NewBidRecord(DeriveBidId(bidder, topic, details), topic, details, req.Amount, w, o.now())
	rec.Kind = o.executor.Kind().String()
	rec.CycleId = cycleId
	rec.Bidder = bidder
	rec.ChainId = o.targetChainId

	if err := o.retryTransient(c, "store record", func() error {
		err := o.repo.Store(c, rec)
		if err != nil {
			c.WithField("err", err).Warn("repo.Store failed")
		}
		return err
	}); err != nil {
		return nil, err
	}
	return rec, nil
}

// retryTransient marks a failure that outlives a few retries as domain.ErrTransient
func (o *Orchestrator) retryTransient(c ctx.Ctx, what string, fn func() error) error {
	err := backoff.Retry(c, backoff.NewExponential(o.pollInterval, o.retryInterval), storeAttempts, fn)
	if err == nil {
		return nil
	}
	return xerrors.Errorf("%w: %s: %v", domain.ErrTransient, what, err)
}

func (o *Orchestrator) transit(c ctx.Ctx, rec *auction.BidRecord, to auction.Status) error {
	from := rec.Status
	if err := rec.Transition(to, o.now()); err != nil {
		c.WithField("err", err).Error("rec.Transition failed")
		return err
	}
	c.WithFields(log.Fields{"from": from, "to": to}).Info("bid transited")
	o.persist(c, rec)
	return nil
}

// persist failures are logged only, Reconcile settles a stale copy later
func (o *Orchestrator) persist(c ctx.Ctx, rec *auction.BidRecord) {
	if err := o.repo.Store(c, rec); err != nil {
		c.WithField("err", err).Error("repo.Store failed")
	}
}

func (o *Orchestrator) expire(c ctx.Ctx, rec *auction.BidRecord) error {
	if err := o.transit(c, rec, auction.StatusExpired); err != nil {
		return err
	}
	return xerrors.Errorf("%w: bid %s expired at %d", domain.ErrWindowExpired, rec.Id.Hex(), rec.ExpirationTimestamp)
}

// untilExpiration bounds c by the bid expiration as seen by the injected clock
func (o *Orchestrator) untilExpiration(c ctx.Ctx, rec *auction.BidRecord) (ctx.Ctx, func()) {
	left := time.Unix(int64(rec.ExpirationTimestamp), 0).Sub(o.now())
	return ctx.WithTimeout(c, left)
}

func (o *Orchestrator) notify(c ctx.Ctx, severity domain.Severity, title string, rec *auction.BidRecord, extra map[string]string) {
	if o.notifier == nil {
		return
	}
	fields := map[string]string{
		"bidId":   rec.Id.Hex(),
		"topic":   rec.Topic.Hex(),
		"cycleId": rec.CycleId,
		"kind":    rec.Kind,
		"status":  string(rec.Status),
	}
	for k, v := range extra {
		fields[k] = v
	}
	if err := o.notifier.Notify(c, domain.Notification{Severity: severity, Title: title, Fields: fields}); err != nil {
		c.WithField("err", err).Error("notifier.Notify failed")
	}
}

// Submit places the bid once. A rejected bid is not retried within its window.
func (o *Orchestrator) Submit(c ctx.Ctx, rec *auction.BidRecord) error {
	if rec.ExpiredAt(o.unixNow()) {
		return o.expire(c, rec)
	}
	txHash, err := o.authority.PlaceBid(c, auction.PlaceBidRequest{
		Topic:               rec.Topic,
		ChainId:             rec.ChainId.Big(),
		Amount:              rec.AmountInt(),
		Details:             rec.Details,
		MaxCollateralAmount: domain.MaxUint256,
		MaxProtocolFee:      domain.MaxUint256,
		ExpirationTimestamp: rec.ExpirationTimestamp,
	})
	if err != nil {
		c.WithField("err", err).Error("authority.PlaceBid failed")
		// nothing was placed, the record ends here
		if terr := o.transit(c, rec, auction.StatusExpired); terr != nil {
			return terr
		}
		return xerrors.Errorf("%w: %v", domain.ErrBidRejected, err)
	}
	rec.PlaceTxHash = txHash
	return o.transit(c, rec, auction.StatusPlaced)
}

// AwaitAward polls the bid status and, once awarded, reads the award event for
// the authorization signature. It never waits past the bid expiration.
func (o *Orchestrator) AwaitAward(c ctx.Ctx, rec *auction.BidRecord) (*executor.Authorization, error) {
	defer o.met.BumpTime("award.time").End()

	wc, cancel := o.untilExpiration(c, rec)
	defer cancel()
	ticker := time.NewTicker(o.pollInterval)
	defer ticker.Stop()

	for {
		if rec.ExpiredAt(o.unixNow()) {
			return nil, o.expire(c, rec)
		}

		state, err := o.authority.GetBidStatus(wc, rec.Id)
		if err != nil {
			wc.WithField("err", err).Warn("authority.GetBidStatus failed")
		} else if state.Status == auction.OnChainStatusAwarded {
			if award, err := o.findAward(wc, rec); err != nil {
				wc.WithField("err", err).Warn("findAward failed")
			} else if award != nil {
				rec.AwardSignature = award.Signature
				if err := o.transit(c, rec, auction.StatusAwarded); err != nil {
					return nil, err
				}
				return &executor.Authorization{
					SignedDataTimestampCutoff: uint32(rec.CutoffTimestamp),
					Signature:                 award.Signature,
				}, nil
			}
		}

		select {
		case <-wc.Done():
			if err := c.Err(); err != nil {
				return nil, err
			}
			return nil, o.expire(c, rec)
		case <-ticker.C:
		}
	}
}

// findAward returns nil while the award log is not indexed yet
func (o *Orchestrator) findAward(c ctx.Ctx, rec *auction.BidRecord) (*auction.AwardEvent, error) {
	var events []auction.AwardEvent
	if err := backoff.Retry(c, backoff.NewExponential(o.pollInterval, o.retryInterval), 0, func() error {
		var err error
		events, err = o.authority.QueryAwardEvents(c, rec.Topic, rec.Id, o.eventBlockRange)
		return err
	}); err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].Topic == rec.Topic && events[i].Id == rec.Id {
			return &events[i], nil
		}
	}
	return nil, nil
}

// ExecuteAction runs the awarded action once. Failures are not retried here.
func (o *Orchestrator) ExecuteAction(c ctx.Ctx, rec *auction.BidRecord, req executor.Request) error {
	if rec.Status != auction.StatusAwarded || len(rec.AwardSignature) == 0 {
		return xerrors.Errorf("%w: no award to execute, bid is %s", domain.ErrInvalidTransition, rec.Status)
	}
	if rec.ExpiredAt(o.unixNow()) {
		return o.expire(c, rec)
	}
	defer o.met.BumpTime("execute.time", "kind", o.executor.Kind().String()).End()

	wc, cancel := o.untilExpiration(c, rec)
	defer cancel()
	receipt, err := o.executor.Execute(wc, req)
	if err != nil {
		c.WithField("err", err).Error("executor.Execute failed")
		if txErr, ok := domain.AsTxError(err); ok && errors.Is(err, domain.ErrTxInFlight) {
			return o.abandonInFlight(c, rec, txErr)
		}
		o.notify(c, domain.SeverityWarning, "awarded action failed", rec, map[string]string{"err": err.Error()})
		return xerrors.Errorf("%w: %v", domain.ErrActionExecution, err)
	}

	rec.FulfillmentTxHash = receipt.TxHash
	return o.transit(c, rec, auction.StatusFulfilled)
}

// abandonInFlight ends a bid whose action transaction may still be mined. The
// award is never executed again.
func (o *Orchestrator) abandonInFlight(c ctx.Ctx, rec *auction.BidRecord, txErr *domain.TxError) error {
	rec.FulfillmentTxHash = txErr.Hash
	if err := o.transit(c, rec, auction.StatusUnconfirmed); err != nil {
		return err
	}
	o.notify(c, domain.SeverityCritical, "awarded action outcome unknown", rec, map[string]string{
		"actionTx": txErr.Hash.Hex(),
		"err":      txErr.Error(),
	})
	return xerrors.Errorf("%w: action tx %s: %v", domain.ErrUnconfirmed, txErr.Hash.Hex(), txErr)
}

// ReportFulfillment retries submission errors only. A report that cannot be
// sent leaves the record fulfilled for Reconcile to report again.
func (o *Orchestrator) ReportFulfillment(c ctx.Ctx, rec *auction.BidRecord) error {
	err := backoff.Retry(c, backoff.NewExponential(o.retryInterval, 8*o.retryInterval), o.reportRetries+1, func() error {
		txHash, err := o.authority.ReportFulfillment(c, rec.Topic, DetailsHash(rec.Details), rec.FulfillmentTxHash)
		if err != nil {
			c.WithField("err", err).Warn("authority.ReportFulfillment failed")
			if !errors.Is(err, domain.ErrSubmission) {
				return backoff.Permanent(err)
			}
			return err
		}
		rec.ReportTxHash = txHash
		return nil
	})
	if err != nil {
		o.notify(c, domain.SeverityCritical, "fulfillment report failed", rec, map[string]string{
			"fulfillmentTx": rec.FulfillmentTxHash.Hex(),
			"err":           err.Error(),
		})
		if errors.Is(err, domain.ErrOnChainRevert) {
			return xerrors.Errorf("failed to report fulfillment: %w", err)
		}
		return xerrors.Errorf("%w: report fulfillment: %v", domain.ErrTransient, err)
	}
	o.persist(c, rec)
	return nil
}

// AwaitConfirmation waits for the auction house verdict on the reported fulfillment
func (o *Orchestrator) AwaitConfirmation(c ctx.Ctx, rec *auction.BidRecord) error {
	defer o.met.BumpTime("confirm.time").End()

	wc, cancel := c, func() {}
	if o.confirmationTimeout > 0 {
		wc, cancel = ctx.WithTimeout(c, o.confirmationTimeout)
	}
	defer cancel()
	ticker := time.NewTicker(o.pollInterval)
	defer ticker.Stop()

	for {
		events, err := o.authority.QueryFulfillmentEvents(wc, rec.Topic, rec.Id, o.eventBlockRange)
		if err != nil {
			wc.WithField("err", err).Warn("authority.QueryFulfillmentEvents failed")
		}
		for _, ev := range events {
			if ev.Topic != rec.Topic || ev.Id != rec.Id {
				continue
			}
			switch ev.Outcome {
			case auction.FulfillmentConfirmed:
				return o.transit(c, rec, auction.StatusConfirmed)
			case auction.FulfillmentContradicted:
				if err := o.transit(c, rec, auction.StatusContradicted); err != nil {
					return err
				}
				o.notify(c, domain.SeverityCritical, "fulfillment contradicted", rec, map[string]string{"eventTx": ev.TxHash.Hex()})
				return xerrors.Errorf("%w: bid %s", domain.ErrFulfillmentContradicted, rec.Id.Hex())
			}
		}

		select {
		case <-wc.Done():
			if err := c.Err(); err != nil {
				return err
			}
			if err := o.transit(c, rec, auction.StatusUnconfirmed); err != nil {
				return err
			}
			o.notify(c, domain.SeverityWarning, "fulfillment unconfirmed", rec, map[string]string{"timeout": o.confirmationTimeout.String()})
			return xerrors.Errorf("%w: bid %s after %s", domain.ErrUnconfirmed, rec.Id.Hex(), o.confirmationTimeout)
		case <-ticker.C:
		}
	}
}

// Serve runs cycles until c is done. Lost windows, protocol errors and transient
// failures wait for the next window, anything else is returned. A cycle that
// leaves its record unsettled is reconciled before the next one.
func (o *Orchestrator) Serve(c ctx.Ctx, req auction.CycleRequest) error {
	for {
		if c.Err() != nil {
			return nil
		}
		start := o.unixNow()
		rec, err := o.Run(c, req)
		if c.Err() != nil {
			return nil
		}
		switch {
		case err == nil:
			c.WithField("bidId", rec.Id.Hex()).Info("cycle confirmed")
		case domain.IsRaceLoss(err) || domain.IsProtocolError(err):
			c.WithField("err", err).Warn("cycle lost")
		case domain.IsTransient(err):
			c.WithField("err", err).Warn("cycle skipped")
		default:
			c.WithField("err", err).Error("cycle failed")
			return err
		}
		if !o.sleepUntil(c, ComputeCutoff(start, o.params)) {
			return nil
		}
		if rec != nil && !rec.Status.IsTerminal() {
			if err := o.Reconcile(c); err != nil {
				c.WithField("err", err).Warn("Reconcile failed")
			}
		}
	}
}

// sleepUntil returns false when c is done first
func (o *Orchestrator) sleepUntil(c ctx.Ctx, unix uint64) bool {
	d := time.Unix(int64(unix), 0).Sub(o.now())
	if d <= 0 {
		return true
	}
	c.WithField("wait", d.String()).Debug("waiting for next window")
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-c.Done():
		return false
	case <-timer.C:
		return true
	}
}

var lifecycle = []auction.Status{
	auction.StatusUnplaced,
	auction.StatusPlaced,
	auction.StatusAwarded,
	auction.StatusFulfilled,
}

// settlePath lists the transitions from a non terminal status to a terminal one
func settlePath(from, to auction.Status) []auction.Status {
	if to == auction.StatusExpired {
		return []auction.Status{to}
	}
	for i, s := range lifecycle {
		if s == from {
			return append(append([]auction.Status{}, lifecycle[i+1:]...), to)
		}
	}
	return []auction.Status{to}
}

// Reconcile settles every persisted non terminal record with the auction house.
// Bids are never resumed, only a missing fulfillment report is sent again.
// Records still live on chain are left until they expire.
func (o *Orchestrator) Reconcile(c ctx.Ctx) error {
	recs, err := o.repo.FindAll(c, auction.WithStatus(auction.NonTerminalStatuses()...))
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return err
	}
	for _, rec := range recs {
		rc := ctx.WithValues(c, map[string]interface{}{
			"bidId": rec.Id.Hex(),
			"topic": rec.Topic.Hex(),
		})
		if err := o.reconcile(rc, rec); err != nil {
			rc.WithField("err", err).Error("reconcile failed")
		}
	}
	return nil
}

func (o *Orchestrator) reconcile(c ctx.Ctx, rec *auction.BidRecord) error {
	state, err := o.authority.GetBidStatus(c, rec.Id)
	if err != nil {
		return err
	}

	expired := rec.ExpiredAt(o.unixNow())
	to := auction.StatusExpired
	switch state.Status {
	case auction.OnChainStatusFulfillmentConfirmed:
		to = auction.StatusConfirmed
	case auction.OnChainStatusFulfillmentContradicted:
		to = auction.StatusContradicted
	case auction.OnChainStatusFulfillmentReported:
		to = auction.StatusUnconfirmed
	case auction.OnChainStatusAwarded:
		if rec.Status == auction.StatusFulfilled && rec.FulfillmentTxHash != (common.Hash{}) {
			return o.reportAgain(c, rec, expired)
		}
		fallthrough
	case auction.OnChainStatusPlaced:
		if !expired {
			c.WithFields(log.Fields{"status": rec.Status, "onChain": state.Status}).Info("bid still live")
			return nil
		}
	}

	from := rec.Status
	for _, s := range settlePath(rec.Status, to) {
		if err := rec.Transition(s, o.now()); err != nil {
			return err
		}
	}
	c.WithFields(log.Fields{"from": from, "to": to, "onChain": state.Status}).Info("bid reconciled")
	o.persist(c, rec)

	switch to {
	case auction.StatusContradicted:
		o.notify(c, domain.SeverityCritical, "fulfillment contradicted", rec, nil)
	case auction.StatusUnconfirmed:
		o.notify(c, domain.SeverityWarning, "fulfillment left unconfirmed", rec, nil)
	}
	return nil
}

// reportAgain reports an executed action whose report never landed. Past the
// bid expiration the record is escalated instead.
func (o *Orchestrator) reportAgain(c ctx.Ctx, rec *auction.BidRecord, expired bool) error {
	if expired {
		if err := o.transit(c, rec, auction.StatusUnconfirmed); err != nil {
			return err
		}
		o.notify(c, domain.SeverityCritical, "fulfillment never reported", rec, map[string]string{
			"fulfillmentTx": rec.FulfillmentTxHash.Hex(),
		})
		return nil
	}
	c.WithField("fulfillmentTx", rec.FulfillmentTxHash.Hex()).Info("reporting fulfillment again")
	if err := o.ReportFulfillment(c, rec); err != nil {
		return err
	}
	return o.AwaitConfirmation(c, rec)
}

func (o *Orchestrator) FindOne(c ctx.Ctx, id common.Hash) (*auction.BidRecord, error) {
	return o.repo.FindOne(c, id)
}

func (o *Orchestrator) FindAll(c ctx.Ctx, opts ...auction.FindAllOptionsFunc) ([]*auction.BidRecord, error) {
	return o.repo.FindAll(c, opts...)
}
