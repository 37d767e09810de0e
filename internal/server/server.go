package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/neekaru/walletconnect/internal/app"
	"github.com/neekaru/walletconnect/internal/config"
	"github.com/neekaru/walletconnect/pkg/logger"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	app    *app.App
	config *config.Config
	srv    *http.Server
}

// NewServer creates a new server instance
func NewServer(app *app.App, config *config.Config) *Server {
	// The app logger already writes to stdout and the log file
	gin.DefaultWriter = logger.GetWriter(app.Logger)
	gin.DefaultErrorWriter = logger.GetWriter(app.Logger)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(config.GetCorsConfig()))

	return &Server{
		router: r,
		app:    app,
		config: config,
		srv: &http.Server{
			Addr:              ":" + config.ServerPort,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router returns the gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start listens on the configured port and serves in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}

	go func() {
		s.app.Logger.Printf("Wallet connect server running on :%s", s.config.ServerPort)
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.app.Logger.Printf("Server error: %v", err)
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.app.Logger.Println("Shutting down server...")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.app.Logger.Printf("Server forced to shutdown: %v", err)
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.app.Logger.Println("Server exited")
	return nil
}
