package signedapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"
	bCtx "github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/domain"
)

var (
	mockCtx = bCtx.Background()
	airnode = common.HexToAddress("0xc52EeA00154B4fF1EbbF8Ba39FDe37F1AC3B9Fd4")
)

const body = `{
  "count": 3,
  "data": {
    "0xbb": {
      "airnode": "0xc52EeA00154B4fF1EbbF8Ba39FDe37F1AC3B9Fd4",
      "templateId": "0x0000000000000000000000000000000000000000000000000000000000000002",
      "timestamp": "1700000010",
      "encodedValue": "0x00000000000000000000000000000000000000000000006c6b935b8bbd400000",
      "signature": "0x1234"
    },
    "0xaa": {
      "airnode": "0xc52EeA00154B4fF1EbbF8Ba39FDe37F1AC3B9Fd4",
      "templateId": "0x0000000000000000000000000000000000000000000000000000000000000001",
      "timestamp": 1700000000,
      "encodedValue": "0x00000000000000000000000000000000000000000000006c6b935b8bbd400000",
      "signature": "0x5678"
    },
    "0xcc": {
      "templateId": "not hex",
      "timestamp": "1700000020",
      "encodedValue": "0x00",
      "signature": "0x00"
    }
  }
}`

type testsuite struct {
	suite.Suite
	srv    *httptest.Server
	status int
	path   string
	body   string
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) SetupTest() {
	ts.status = http.StatusOK
	ts.body = body
	ts.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.path = r.URL.Path
		w.WriteHeader(ts.status)
		fmt.Fprint(w, ts.body)
	}))
}

func (ts *testsuite) TearDownTest() {
	ts.srv.Close()
}

func (ts *testsuite) client() *client {
	return NewClient(&ClientCfg{
		BaseUrl:    ts.srv.URL + "/public-oev/",
		HttpClient: http.Client{},
		Timeout:    time.Second,
	}).(*client)
}

func (ts *testsuite) TestGetObservationsKeepsListingOrder() {
	res, err := ts.client().GetObservations(mockCtx, airnode)
	ts.Require().NoError(err)
	ts.Equal("/public-oev/"+airnode.Hex(), ts.path)

	// the malformed third entry is dropped
	ts.Require().Len(res, 2)
	ts.Equal(common.HexToHash("0x02"), res[0].TemplateId)
	ts.Equal(uint64(1700000010), res[0].Timestamp)
	ts.Equal([]byte{0x12, 0x34}, res[0].Signature)
	ts.Equal(common.HexToHash("0x01"), res[1].TemplateId)
	ts.Equal(uint64(1700000000), res[1].Timestamp)
	ts.Equal(airnode, res[1].Airnode)
	ts.Len(res[1].EncodedValue, 32)
}

func (ts *testsuite) TestGetObservationsStatusNotOk() {
	ts.status = http.StatusNotFound
	_, err := ts.client().GetObservations(mockCtx, airnode)
	ts.True(errors.Is(err, domain.ErrSourceUnavailable))
}

func (ts *testsuite) TestGetObservationsMalformedBody() {
	ts.body = `{"count": 1, "data": [`
	_, err := ts.client().GetObservations(mockCtx, airnode)
	ts.True(errors.Is(err, domain.ErrSourceUnavailable))
}

func (ts *testsuite) TestGetObservationsEmpty() {
	ts.body = `{"count": 0, "data": {}}`
	res, err := ts.client().GetObservations(mockCtx, airnode)
	ts.NoError(err)
	ts.Empty(res)
}

func (ts *testsuite) TestGetObservationsOtherAirnode() {
	ts.body = `{"data": {"0x1": {"airnode": "0x0000000000000000000000000000000000000001", "templateId": "0x0000000000000000000000000000000000000000000000000000000000000001", "timestamp": "1", "encodedValue": "0x00", "signature": "0x00"}}}`
	res, err := ts.client().GetObservations(mockCtx, airnode)
	ts.NoError(err)
	ts.Empty(res)
}
