package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/void-adarsh/Notes-App/config"
	"github.com/void-adarsh/Notes-App/db"
	authhandler "github.com/void-adarsh/Notes-App/internal/auth/handler"
	authrepo "github.com/void-adarsh/Notes-App/internal/auth/repository/postgres"
	authservice "github.com/void-adarsh/Notes-App/internal/auth/service"
	"github.com/void-adarsh/Notes-App/internal/gate"
	"github.com/void-adarsh/Notes-App/internal/logger"
	noteshandler "github.com/void-adarsh/Notes-App/internal/notes/handler"
	notesrepo "github.com/void-adarsh/Notes-App/internal/notes/repository/postgres"
	notesservice "github.com/void-adarsh/Notes-App/internal/notes/service"
	"github.com/void-adarsh/Notes-App/internal/ratelimit"
	"github.com/void-adarsh/Notes-App/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	if err := logger.Init(cfg.LogLevel, !cfg.IsProduction()); err != nil {
		logger.Logger().Fatal("invalid log level", zap.Error(err))
	}
	defer logger.Sync()
	log := logger.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx, pool, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	userRepo := authrepo.NewPostgresRepository(pool)
	noteRepo := notesrepo.NewPostgresRepository(pool)

	tokenService := authservice.NewTokenService(cfg.JWTSecret, cfg.TokenExpiryMin)
	userService := authservice.NewUserService(userRepo, tokenService, cfg)
	noteService := notesservice.NewNoteService(noteRepo, userRepo)

	limiter, err := ratelimit.NewFixedWindow(ratelimit.Config{
		Window:     time.Duration(cfg.RateLimitWindowMs) * time.Millisecond,
		Max:        cfg.RateLimitMax,
		MaxClients: cfg.RateLimitMaxClients,
	}, time.Now, log.Named("ratelimit"))
	if err != nil {
		log.Fatal("invalid rate limit config", zap.Error(err))
	}

	app := server.New(cfg, gate.New(limiter, tokenService, log.Named("gate")), server.Handlers{
		Auth:  authhandler.NewAuthHandler(userService),
		Notes: noteshandler.NewNoteHandler(noteService),
	}, log.Named("http"))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		return app.Listen(":" + cfg.Port)
	})

	g.Go(func() error {
		return limiter.Run(gctx, time.Duration(cfg.RateLimitSweepSeconds)*time.Second)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server stopped", zap.Error(err))
	}
}
