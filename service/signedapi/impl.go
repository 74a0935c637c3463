package signedapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	bCtx "github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/base/log"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/signeddata"
	"golang.org/x/xerrors"
)

const (
	PublicOevApi   = "https://signed-api.api3.org/public-oev"
	defaultTimeout = 5 * time.Second
)

func NewClient(cfg *ClientCfg) signeddata.SourceClient {
	baseUrl := cfg.BaseUrl
	if baseUrl == "" {
		baseUrl = PublicOevApi
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &client{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		client:  cfg.HttpClient,
		timeout: timeout,
	}
}

type client struct {
	baseUrl string
	client  http.Client
	timeout time.Duration
}

// GetObservations keeps the order the api listed them in
func (c *client) GetObservations(ctx bCtx.Ctx, airnode common.Address) ([]signeddata.Observation, error) {
	url := fmt.Sprintf("%s/%s", c.baseUrl, airnode.Hex())
	ctx = bCtx.WithValue(ctx, "airnode", airnode.Hex())

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, xerrors.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, airnode.Hex(), err)
	}
	defer body.Close()

	raw, err := decodeData(body)
	if err != nil {
		ctx.WithField("err", err).Error("decodeData failed")
		return nil, xerrors.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, airnode.Hex(), err)
	}

	res := make([]signeddata.Observation, 0, len(raw))
	for _, d := range raw {
		o, err := d.toObservation(airnode)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":        err,
				"templateId": d.TemplateId,
			}).Warn("skip malformed observation")
			continue
		}
		res = append(res, o)
	}
	return res, nil
}

func (d *SignedData) toObservation(airnode common.Address) (signeddata.Observation, error) {
	templateId, err := hexutil.Decode(d.TemplateId)
	if err != nil || len(templateId) != common.HashLength {
		return signeddata.Observation{}, xerrors.Errorf("templateId %q: %w", d.TemplateId, ErrMalformedBody)
	}
	ts, err := d.Timestamp.Int64()
	if err != nil || ts < 0 {
		return signeddata.Observation{}, xerrors.Errorf("timestamp %q: %w", d.Timestamp, ErrMalformedBody)
	}
	value, err := hexutil.Decode(d.EncodedValue)
	if err != nil {
		return signeddata.Observation{}, xerrors.Errorf("encodedValue: %w", err)
	}
	sig, err := hexutil.Decode(d.Signature)
	if err != nil {
		return signeddata.Observation{}, xerrors.Errorf("signature: %w", err)
	}
	if d.Airnode != "" && common.HexToAddress(d.Airnode) != airnode {
		return signeddata.Observation{}, xerrors.Errorf("airnode %s: %w", d.Airnode, ErrMalformedBody)
	}
	return signeddata.Observation{
		Airnode:      airnode,
		TemplateId:   common.BytesToHash(templateId),
		Timestamp:    uint64(ts),
		EncodedValue: value,
		Signature:    sig,
	}, nil
}

// decodeData walks {"count": n, "data": {id: {...}}} token by token, a map
// would lose the listing order
func decodeData(r io.Reader) ([]SignedData, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var res []SignedData
	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if key != "data" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
			continue
		}
		if err := expectDelim(dec, '{'); err != nil {
			return nil, err
		}
		for dec.More() {
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			var d SignedData
			if err := dec.Decode(&d); err != nil {
				return nil, err
			}
			res = append(res, d)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, err
		}
	}
	return res, expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	t, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := t.(json.Delim); !ok || d != want {
		return xerrors.Errorf("want %v, got %v: %w", want, t, ErrMalformedBody)
	}
	return nil
}

func (c *client) get(ctx bCtx.Ctx, url string) (io.ReadCloser, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		cancel()
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		cancel()
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, ErrStatusCodeNotOk
	}
	return &cancelBody{resp.Body, cancel}, nil
}

// cancelBody releases the request timeout once the body is consumed
type cancelBody struct {
	io.ReadCloser
	cancel func()
}

func (b *cancelBody) Close() error {
	defer b.cancel()
	return b.ReadCloser.Close()
}
