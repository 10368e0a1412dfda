package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"renovation-crm/internal/config"
	"renovation-crm/internal/database"
	"renovation-crm/internal/logger"
	"renovation-crm/internal/notify"
	"renovation-crm/internal/postal"
	"renovation-crm/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	lg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	database.Init(cfg)

	var notifier notify.Notifier = notify.Nop{}
	if cfg.TelegramEnabled() {
		tg, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, "")
		if err != nil {
			lg.Warn("telegram notifications disabled", zap.Error(err))
		} else {
			notifier = tg
			lg.Info("telegram notifications enabled")
		}
	}

	lookup := postal.New(cfg.PostalLookupURL, cfg.PostalLookupTimeout)

	r := server.NewRouter(cfg, notifier, lookup)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		lg.Info("starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", zap.Error(err))
	}
}
