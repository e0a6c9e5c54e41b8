package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/post_shop/internal/logging"
	"github.com/Skotchmaster/post_shop/internal/middleware/auth"
	"github.com/Skotchmaster/post_shop/internal/service"
	"github.com/Skotchmaster/post_shop/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "signup")

	var req transport.SignupRequest
	if err := bindValid(c, &req, service.MsgSignupInvalid); err != nil {
		l.Warn("signup_error", "status", 400, "error", err)
		return err
	}

	if err := h.Svc.Signup(ctx, req.Nickname, req.Password, req.ConfirmPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, struct{}{})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "login")

	var req transport.LoginRequest
	if err := bindValid(c, &req, service.MsgLoginIncomplete); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return err
	}

	token, err := h.Svc.Login(ctx, req.Nickname, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.LoginResponse{Token: token})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, transport.UserResponse{User: auth.CurrentUser(c)})
}
