package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"organizer/internal/app/server/api"
	"organizer/internal/app/server/config"
	"organizer/internal/domain/user"
	"organizer/internal/infrastructure/mail"
	"organizer/internal/infrastructure/metrics"
	"organizer/internal/infrastructure/storage/postgres"
	"organizer/internal/infrastructure/storage/redis"
	"organizer/internal/utils/logger"

	"golang.org/x/exp/slog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := postgres.New(ctx, cfg)
	if err != nil {
		log.Error("failed to init storage", "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	tokens, closeTokens := tokenStore(ctx, cfg, log)
	defer closeTokens()

	deps := api.Deps{
		Config:  cfg,
		Storage: storage,
		Tokens:  tokens,
		Mailer:  mailer(cfg, log),
		Metrics: metrics.New(),
	}

	srv := &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           api.New(deps, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("starting server", "address", cfg.Server.RunAddress, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// tokenStore подключается к Redis; без него токены живут в памяти процесса
func tokenStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (user.TokenStore, func()) {
	client, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn("redis is unavailable, using in-memory token store", "addr", cfg.Redis.Addr, "error", err)
		return redis.NewMemoryTokenStore(), func() {}
	}
	return redis.NewTokenStore(client, log), func() {
		if err := client.Close(); err != nil {
			log.Error("failed to close redis client", "error", err)
		}
	}
}

func mailer(cfg *config.Config, log *slog.Logger) user.Sender {
	if cfg.SMTP.Host == "" {
		log.Warn("SMTP_HOST is not set, emails will be logged")
		return mail.NewLogSender(log)
	}
	return mail.NewSMTP(cfg.SMTP)
}
