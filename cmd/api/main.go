package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventtracker/server/internal/api"
	"github.com/eventtracker/server/internal/auth"
	"github.com/eventtracker/server/internal/config"
	"github.com/eventtracker/server/internal/db"
	"github.com/eventtracker/server/internal/logger"
	"github.com/eventtracker/server/internal/metrics"
	"github.com/eventtracker/server/internal/repository/postgres"
	"github.com/eventtracker/server/internal/services"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	userSvc := services.NewUserService(repos.Users, repos.AuditLogs)
	eventSvc := services.NewEventService(repos.Events, repos.AuditLogs)
	shareSvc := services.NewShareService(repos.Events, repos.ShareTokens, repos.Users, repos.AuditLogs)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:      cfg,
		TM:       tm,
		UserSvc:  userSvc,
		EventSvc: eventSvc,
		ShareSvc: shareSvc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
