package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/post_shop/internal/logging"
	"github.com/Skotchmaster/post_shop/internal/service"
	"github.com/Skotchmaster/post_shop/internal/transport"
)

type GoodsHTTP struct {
	Svc *service.GoodsService
}

func (h *GoodsHTTP) Seed(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create.goods")

	goods, err := h.Svc.Seed(ctx)
	if err != nil {
		l.Error("create_goods_error", "status", 500, "error", err)
		return err
	}

	l.Info("goods seeded", "count", len(goods))
	return c.String(http.StatusOK, "done")
}

func (h *GoodsHTTP) List(c echo.Context) error {
	goods, err := h.Svc.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.GoodsListResponse{Goods: goods})
}

func (h *GoodsHTTP) Get(c echo.Context) error {
	id, err := paramID(c, "goodsId")
	if err != nil {
		return err
	}

	goods, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.GoodsResponse{Goods: goods})
}
