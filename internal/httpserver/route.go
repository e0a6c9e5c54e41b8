package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/post_shop/internal/db"
	"github.com/Skotchmaster/post_shop/internal/middleware/auth"
)

type Deps struct {
	DB           *gorm.DB
	AuthHandler  *AuthHTTP
	PostHandler  *PostHTTP
	GoodsHandler *GoodsHTTP
	CartHandler  *CartHTTP
	JWTSecret    []byte
	Users        auth.UserLoader
	SeedEnabled  bool
	AssetsDir    string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx, d.DB); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	requireLogin := auth.RequireLogin(d.JWTSecret, d.Users)

	api := e.Group("/api")

	api.POST("/signup", d.AuthHandler.Signup)
	api.POST("/login", d.AuthHandler.Login)
	api.GET("/users/me", d.AuthHandler.Me, requireLogin...)

	if d.SeedEnabled {
		api.POST("/create-post", d.PostHandler.Seed)
		api.POST("/create-goods", d.GoodsHandler.Seed)
	}

	api.GET("/posts", d.PostHandler.List, requireLogin...)
	api.GET("/posts/search", d.PostHandler.Search, requireLogin...)
	api.GET("/posts/:postId", d.PostHandler.Get, requireLogin...)

	api.GET("/goods", d.GoodsHandler.List)
	api.GET("/goods/cart", d.CartHandler.GetCart, requireLogin...)
	api.GET("/goods/:goodsId", d.GoodsHandler.Get)
	api.PUT("/goods/:goodsId/cart", d.CartHandler.PutCart, requireLogin...)
	api.DELETE("/goods/:goodsId/cart", d.CartHandler.DeleteCart, requireLogin...)

	if d.AssetsDir != "" {
		e.Static("/", d.AssetsDir)
	}
}
