package server

import (
	"github.com/neekaru/walletconnect/internal/health"
	"github.com/neekaru/walletconnect/internal/qr"
	"github.com/neekaru/walletconnect/internal/session"
	"github.com/neekaru/walletconnect/internal/web"
)

// SetupRoutes configures all the routes for the application
func (s *Server) SetupRoutes() {
	webHandlers := web.NewHandlers(s.app)
	s.router.GET("/", webHandlers.IndexHandler)
	s.router.GET("/index.html", webHandlers.IndexHandler)

	healthHandlers := health.NewHandlers(s.app)
	s.router.GET("/health", healthHandlers.HealthCheckHandler)
	s.router.GET("/health/", healthHandlers.HealthCheckHandlerWithSlash)

	sessionHandlers := session.NewHandlers(s.app)
	s.router.GET("/check", sessionHandlers.CheckHandler)
	s.router.GET("/disconnect", sessionHandlers.DisconnectHandler)
	s.router.POST("/connect", sessionHandlers.ConnectHandler)

	qrHandlers := qr.NewHandlers(s.app)
	s.router.GET("/session/qr", qrHandlers.QRImageHandler)
}
