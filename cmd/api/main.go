package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vkazakov/adboard-backend/internal/api"
	"github.com/vkazakov/adboard-backend/internal/auth"
	"github.com/vkazakov/adboard-backend/internal/config"
	"github.com/vkazakov/adboard-backend/internal/db"
	"github.com/vkazakov/adboard-backend/internal/logger"
	"github.com/vkazakov/adboard-backend/internal/metrics"
	"github.com/vkazakov/adboard-backend/internal/repository/postgres"
	"github.com/vkazakov/adboard-backend/internal/services"
	"github.com/vkazakov/adboard-backend/internal/storage"
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

	images, err := storage.NewImageStore(cfg.ImageDir)
	if err != nil {
		log.Error("image store", "err", err)
		os.Exit(1)
	}

	repos := postgres.NewRepositories(pool)
	tokens := auth.NewTokenManager(cfg.TokenSecret, 24*time.Hour)

	userSvc := services.NewUserService(repos.Users, images)
	adSvc := services.NewAdService(repos.Ads, images)
	commentSvc := services.NewCommentService(repos.Comments, repos.Ads)

	metrics.Init()
	r := api.NewRouter(api.Deps{
		Cfg:      cfg,
		Users:    userSvc,
		Ads:      adSvc,
		Comments: commentSvc,
		Images:   images,
		Tokens:   tokens,
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
