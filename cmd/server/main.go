package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/post_shop/internal/apperr"
	"github.com/Skotchmaster/post_shop/internal/config"
	"github.com/Skotchmaster/post_shop/internal/db"
	"github.com/Skotchmaster/post_shop/internal/events"
	"github.com/Skotchmaster/post_shop/internal/httpserver"
	"github.com/Skotchmaster/post_shop/internal/logging"
	loggingmw "github.com/Skotchmaster/post_shop/internal/middleware/logging"
	"github.com/Skotchmaster/post_shop/internal/repo"
	"github.com/Skotchmaster/post_shop/internal/search"
	"github.com/Skotchmaster/post_shop/internal/service"
	"github.com/Skotchmaster/post_shop/internal/tokens"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	publisher := events.NewPublisher(cfg.KafkaBrokers)

	rp := repo.New(gdb)

	postSvc := &service.PostService{Repo: rp}
	if cfg.ESURL != "" {
		esCtx, esCancel := context.WithTimeout(context.Background(), 5*time.Second)
		idx, err := search.NewClient(esCtx, search.Config{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		})
		esCancel()
		if err != nil {
			logger.Warn("elasticsearch unavailable, searching the database", "error", err)
		} else {
			postSvc.Index = idx
		}
	}

	authSvc := &service.AuthService{
		Repo:   rp,
		Signer: tokens.NewSigner(cfg.JWTSecret, cfg.JWTTTL),
		Events: publisher,
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperr.HTTPErrorHandler
	e.Validator = httpserver.NewValidator()

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.CORS())

	httpserver.Register(e, &httpserver.Deps{
		DB:           gdb,
		AuthHandler:  &httpserver.AuthHTTP{Svc: authSvc},
		PostHandler:  &httpserver.PostHTTP{Svc: postSvc},
		GoodsHandler: &httpserver.GoodsHTTP{Svc: &service.GoodsService{Repo: rp}},
		CartHandler:  &httpserver.CartHTTP{Svc: &service.CartService{Repo: rp, Events: publisher}},
		JWTSecret:    cfg.JWTSecret,
		Users:        authSvc,
		SeedEnabled:  cfg.SeedEnabled,
		AssetsDir:    cfg.AssetsDir,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		logger.Info("http server starting", "addr", srv.Addr, "seed_enabled", cfg.SeedEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db close error", "error", err)
	}

	logger.Info("shutdown complete")
}
