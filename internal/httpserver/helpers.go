package httpserver

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/post_shop/internal/apperr"
)

// bindValid binds the body into req and validates it, reporting either failure as msg.
func bindValid(c echo.Context, req any, msg string) error {
	if err := c.Bind(req); err != nil {
		return apperr.Validation(msg, err)
	}
	if err := c.Validate(req); err != nil {
		return apperr.Validation(msg, err)
	}
	return nil
}

func paramID(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, apperr.Validation(fmt.Sprintf("invalid %s", name), err)
	}
	return uint(id), nil
}
