package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/post_shop/internal/logging"
	"github.com/Skotchmaster/post_shop/internal/middleware/auth"
	"github.com/Skotchmaster/post_shop/internal/service"
	"github.com/Skotchmaster/post_shop/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart")

	user := auth.CurrentUser(c)
	lines, err := h.Svc.GetCart(ctx, user.UserID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return err
	}
	return c.JSON(http.StatusOK, transport.CartResponse{Cart: lines})
}

func (h *CartHTTP) PutCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "put.cart")

	goodsID, err := paramID(c, "goodsId")
	if err != nil {
		l.Warn("put_cart_error", "status", 400, "error", err)
		return err
	}

	var req transport.CartQuantityRequest
	if err := bindValid(c, &req, service.MsgQuantityInvalid); err != nil {
		l.Warn("put_cart_error", "status", 400, "error", err)
		return err
	}

	user := auth.CurrentUser(c)
	if err := h.Svc.AddToCart(ctx, user.UserID, goodsID, *req.Quantity); err != nil {
		return err
	}

	l.Info("cart item saved", "goods_id", goodsID, "quantity", *req.Quantity)
	return c.JSON(http.StatusOK, struct{}{})
}

func (h *CartHTTP) DeleteCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete.cart")

	goodsID, err := paramID(c, "goodsId")
	if err != nil {
		l.Warn("delete_cart_error", "status", 400, "error", err)
		return err
	}

	user := auth.CurrentUser(c)
	if err := h.Svc.DeleteFromCart(ctx, user.UserID, goodsID); err != nil {
		l.Error("delete_cart_error", "status", 500, "error", err)
		return err
	}
	return c.JSON(http.StatusOK, struct{}{})
}
