package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/service/cache/provider"
	"github.com/x-xyz/oev-searcher/service/cache/provider/primitive"
)

type cacheMiddlewareSuite struct {
	suite.Suite

	cache provider.Provider
}

func (s *cacheMiddlewareSuite) SetupTest() {
	s.cache = primitive.NewPrimitive("httpCacheMiddleware", 1)
}

func TestCacheMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(cacheMiddlewareSuite))
}

func (s *cacheMiddlewareSuite) serve(url string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("ctx", ctx.Background())
	s.Require().NoError(CacheHttp(s.cache, 30*time.Second)(h)(c))
	return rec
}

func (s *cacheMiddlewareSuite) TestCacheMiddleware() {
	first := s.serve("/bids?limit=1&status=placed&status=awarded", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello, World")
	})
	s.Equal(http.StatusOK, first.Code)
	s.Equal("Hello, World", first.Body.String())

	second := s.serve("/bids?status=awarded&limit=1&status=placed", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello, again")
	})
	s.Equal(http.StatusOK, second.Code)
	s.Equal("Hello, World", second.Body.String())
}

func (s *cacheMiddlewareSuite) TestErrorsAreNotCached() {
	s.serve("/bids/0x01", func(c echo.Context) error {
		return c.String(http.StatusNotFound, "missing")
	})

	rec := s.serve("/bids/0x01", func(c echo.Context) error {
		return c.String(http.StatusOK, "found")
	})
	s.Equal("found", rec.Body.String())
}
