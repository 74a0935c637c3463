package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/base/delivery"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/auction"
	"github.com/x-xyz/oev-searcher/domain/mocks"
	"github.com/x-xyz/oev-searcher/service/cache/provider/primitive"
)

var bidId = common.HexToHash("0xd4ca395dce9f1b429174bf1508231700b6be386ba7d2702a3c92564797d2dd13")

type handlerSuite struct {
	suite.Suite
	e       *echo.Echo
	usecase *mocks.Usecase
}

func (s *handlerSuite) SetupTest() {
	s.usecase = &mocks.Usecase{}
	s.e = echo.New()
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(s.e, s.usecase, nil, 0)
}

func (s *handlerSuite) TearDownTest() {
	s.usecase.AssertExpectations(s.T())
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) get(url string) (*httptest.ResponseRecorder, delivery.JsonResponse) {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	resp := delivery.JsonResponse{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

// findAll answers FindAll with the records passing the options it was called with
func findAll(records []*auction.BidRecord, got *auction.FindAllOptions) func(ctx.Ctx, ...auction.FindAllOptionsFunc) []*auction.BidRecord {
	return func(c ctx.Ctx, opts ...auction.FindAllOptionsFunc) []*auction.BidRecord {
		o, _ := auction.GetFindAllOptions(opts...)
		*got = o
		res := []*auction.BidRecord{}
		for _, r := range records {
			if o.Match(r) {
				res = append(res, r)
			}
		}
		return res
	}
}

func (s *handlerSuite) TestGetBids() {
	records := []*auction.BidRecord{
		{Id: bidId, Status: auction.StatusPlaced},
		{Id: common.HexToHash("0x02"), Status: auction.StatusConfirmed},
	}
	got := auction.FindAllOptions{}
	s.usecase.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return(findAll(records, &got), nil).Once()

	rec, resp := s.get("/bids?status=placed,awarded&limit=10")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(delivery.JsonResponseStatusSuccess, resp.Status)
	s.Len(resp.Data, 1)
	s.Equal([]auction.Status{auction.StatusPlaced, auction.StatusAwarded}, got.Statuses)
	s.Equal(10, got.Limit)
}

func (s *handlerSuite) TestGetBidsDefaults() {
	got := auction.FindAllOptions{}
	s.usecase.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return(findAll(nil, &got), nil).Once()

	rec, _ := s.get("/bids")
	s.Equal(http.StatusOK, rec.Code)
	s.Empty(got.Statuses)
	s.Equal(defaultLimit, got.Limit)
}

func (s *handlerSuite) TestGetBidsBadParams() {
	rec, resp := s.get("/bids?limit=-1")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(delivery.JsonResponseStatusFail, resp.Status)

	rec, _ = s.get("/bids?limit=100000")
	s.Equal(http.StatusBadRequest, rec.Code)

	s.usecase.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrBadParamInput).Once()
	rec, _ = s.get("/bids?status=bogus")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlerSuite) TestGetBid() {
	s.usecase.On("FindOne", mock.Anything, bidId).Return(&auction.BidRecord{Id: bidId, Status: auction.StatusAwarded}, nil).Once()
	rec, resp := s.get("/bids/" + bidId.Hex())
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(string(auction.StatusAwarded), resp.Data.(map[string]interface{})["status"])

	missing := common.HexToHash("0x01")
	s.usecase.On("FindOne", mock.Anything, missing).Return(nil, domain.ErrNotFound).Once()
	rec, _ = s.get("/bids/" + missing.Hex())
	s.Equal(http.StatusNotFound, rec.Code)

	rec, _ = s.get("/bids/0x1234")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func TestGetBidsCached(t *testing.T) {
	us := &mocks.Usecase{}
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(e, us, primitive.NewPrimitive("bids", 1), time.Minute)

	us.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return([]*auction.BidRecord{{Id: bidId}}, nil).Once()
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bids", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d", rec.Code)
		}
	}
	us.AssertExpectations(t)
}
