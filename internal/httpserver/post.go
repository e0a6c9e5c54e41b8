package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/post_shop/internal/logging"
	"github.com/Skotchmaster/post_shop/internal/service"
	"github.com/Skotchmaster/post_shop/internal/transport"
)

type PostHTTP struct {
	Svc *service.PostService
}

func (h *PostHTTP) Seed(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create.post")

	posts, err := h.Svc.Seed(ctx)
	if err != nil {
		l.Error("create_post_error", "status", 500, "error", err)
		return err
	}

	l.Info("posts seeded", "count", len(posts))
	return c.String(http.StatusOK, "done")
}

func (h *PostHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	posts, err := h.Svc.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list_posts_error", "status", 500, "error", err)
		return err
	}
	return c.JSON(http.StatusOK, transport.PostsResponse{Posts: posts})
}

func (h *PostHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.post")

	id, err := paramID(c, "postId")
	if err != nil {
		l.Warn("get_post_error", "status", 400, "error", err)
		return err
	}

	post, err := h.Svc.Get(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.PostResponse{Posts: post})
}

func (h *PostHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()

	posts, err := h.Svc.Search(ctx, c.QueryParam("q"))
	if err != nil {
		logging.FromContext(ctx).Warn("search_posts_error", "error", err)
		return err
	}
	return c.JSON(http.StatusOK, transport.PostsResponse{Posts: posts})
}
