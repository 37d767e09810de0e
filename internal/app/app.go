package app

import (
	"log"
	"time"

	"github.com/neekaru/walletconnect/internal/config"
	"github.com/neekaru/walletconnect/internal/store"
)

// App holds shared application state and resources
type App struct {
	Store     store.Store
	Config    *config.Config
	Logger    *log.Logger
	StartTime time.Time // Track startup time for health checks
}

// NewApp creates a new App instance with initialized resources
func NewApp(logger *log.Logger, cfg *config.Config, st store.Store) *App {
	return &App{
		Store:     st,
		Config:    cfg,
		Logger:    logger,
		StartTime: time.Now(),
	}
}
