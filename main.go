package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/neekaru/walletconnect/internal/app"
	"github.com/neekaru/walletconnect/internal/config"
	"github.com/neekaru/walletconnect/internal/server"
	"github.com/neekaru/walletconnect/internal/session"
	"github.com/neekaru/walletconnect/internal/store"
	"github.com/neekaru/walletconnect/pkg/logger"
)

const cleanupInterval = 10 * time.Minute

func main() {
	cfg := config.NewConfig()
	if err := cfg.Load(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	appLogger, err := logger.SetupLogging(cfg.LogDir)
	if err != nil {
		appLogger = logger.SetupFallbackLogger()
	}
	defer logger.CloseLogger()

	if err := cfg.EnsureDataDir(); err != nil {
		appLogger.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.OpenSQLite(cfg.DatabasePath())
	if err != nil {
		appLogger.Fatalf("Failed to open session store: %v", err)
	}
	defer st.Close()

	a := app.NewApp(appLogger, cfg, st)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go session.NewService(a).RunCleanup(ctx, cleanupInterval)

	srv := server.NewServer(a, cfg)
	srv.SetupRoutes()
	if err := srv.Start(); err != nil {
		appLogger.Fatalf("Failed to start server: %v", err)
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Printf("Shutdown error: %v", err)
	}
}
