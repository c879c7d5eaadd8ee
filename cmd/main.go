// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eventtix/eventtix/config"
	"github.com/eventtix/eventtix/internal/auth"
	"github.com/eventtix/eventtix/internal/cache"
	"github.com/eventtix/eventtix/internal/database"
	"github.com/eventtix/eventtix/internal/handler"
	"github.com/eventtix/eventtix/internal/repository"
	"github.com/eventtix/eventtix/internal/repository/memory"
	"github.com/eventtix/eventtix/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	if cfg.Server.Env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// ── 1. Storage ────────────────────────────────────────────────────────
	var (
		userRepo   repository.UserRepository
		eventRepo  repository.EventRepository
		ticketRepo repository.TicketRepository
	)
	switch cfg.Database.Driver {
	case "memory":
		userRepo = memory.NewUserRepository()
		eventRepo = memory.NewEventRepository()
		ticketRepo = memory.NewTicketRepository()
		logrus.Info("using in-memory storage")
	default:
		pool, err := database.NewPool(ctx, cfg.Database)
		if err != nil {
			logrus.Fatalf("database: %v", err)
		}
		defer pool.Close()
		userRepo = repository.NewPostgresUserRepository(pool)
		eventRepo = repository.NewPostgresEventRepository(pool)
		ticketRepo = repository.NewPostgresTicketRepository(pool)
		logrus.Info("connected to PostgreSQL")
	}

	var eventCache *cache.EventCache
	if cfg.Redis.Enabled {
		rdb, err := database.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logrus.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		eventCache = cache.NewEventCache(rdb, cfg.Redis.CacheTTL)
		logrus.Info("connected to Redis")
	}

	// ── 2. Wire up layers ────────────────────────────────────────────────
	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil {
		logrus.Fatalf("token manager: %v", err)
	}

	userSvc := service.NewUserService(userRepo)
	eventSvc := service.NewEventService(eventRepo, eventCache)
	ticketSvc := service.NewTicketService(ticketRepo, eventRepo, userRepo, eventCache)

	router := handler.NewRouter(
		handler.NewAuthHandler(userSvc, tokens),
		handler.NewEventHandler(eventSvc),
		handler.NewTicketHandler(ticketSvc),
		tokens,
	)

	// ── 3. Start server with graceful shutdown ───────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logrus.Infof("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("graceful shutdown failed: %v", err)
	}
	logrus.Info("server stopped")
}
