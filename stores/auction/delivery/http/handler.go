package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/base/delivery"
	"github.com/x-xyz/oev-searcher/domain"
	"github.com/x-xyz/oev-searcher/domain/auction"
	"github.com/x-xyz/oev-searcher/middleware"
	"github.com/x-xyz/oev-searcher/service/cache/provider"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

type handler struct {
	auction auction.Usecase
}

// New registers the read-only bid endpoints. Listings are cached for cacheTtl when cache is set.
func New(e *echo.Echo, us auction.Usecase, cache provider.Provider, cacheTtl time.Duration) {
	h := &handler{
		auction: us,
	}
	g := e.Group("/bids")
	if cache != nil && cacheTtl > 0 {
		g.GET("", h.getBids, middleware.CacheHttp(cache, cacheTtl))
	} else {
		g.GET("", h.getBids)
	}
	g.GET("/:id", h.getBid, middleware.IsValidHash("id"))
}

func parseStatuses(c echo.Context) []auction.Status {
	res := []auction.Status{}
	for _, v := range c.QueryParams()["status"] {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				res = append(res, auction.Status(s))
			}
		}
	}
	return res
}

func parseLimit(c echo.Context) (int, error) {
	v := c.QueryParam("limit")
	if v == "" {
		return defaultLimit, nil
	}
	limit, err := strconv.Atoi(v)
	if err != nil || limit <= 0 || limit > maxLimit {
		return 0, domain.ErrBadParamInput
	}
	return limit, nil
}

func (h *handler) getBids(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	limit, err := parseLimit(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.FindAll(ctx, auction.WithStatus(parseStatuses(c)...), auction.WithLimit(limit))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.auction.FindOne(ctx, common.HexToHash(c.Param("id")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
