package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/domain/mocks"
	"github.com/x-xyz/oev-searcher/stores/healthcheck/usecase"
)

func TestCheck(t *testing.T) {
	req := require.New(t)
	repo := &mocks.HealthCheckRepo{}
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(e, usecase.New(repo))

	repo.On("PingDB", mock.Anything).Return(nil).Once()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	req.Equal(http.StatusOK, rec.Code)
	req.Contains(rec.Body.String(), `"data":"ok"`)

	repo.On("PingDB", mock.Anything).Return(errors.New("store: down")).Once()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	req.Equal(http.StatusServiceUnavailable, rec.Code)
	req.Contains(rec.Body.String(), `"status":"fail"`)
	req.Contains(rec.Body.String(), "store: down")
}
