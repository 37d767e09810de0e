package session

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neekaru/walletconnect/internal/app"
)

// Handlers contains HTTP handlers for session management
type Handlers struct {
	app     *app.App
	service *Service
}

// NewHandlers creates a new session handlers instance
func NewHandlers(app *app.App) *Handlers {
	return &Handlers{
		app:     app,
		service: NewService(app),
	}
}

// SessionID returns the session id carried by the request cookie, or ""
func SessionID(c *gin.Context) string {
	id, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return id
}

// CheckHandler reports whether the caller's session is linked to a wallet
func (h *Handlers) CheckHandler(c *gin.Context) {
	resp, err := h.service.Check(c.Request.Context(), SessionID(c))
	if err != nil {
		h.app.Logger.Printf("Session check failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check session"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConnectHandler links a wallet to the caller's session and sets the cookie
func (h *Handlers) ConnectHandler(c *gin.Context) {
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sess, err := h.service.Connect(c.Request.Context(), SessionID(c), req.WalletAddress)
	if err != nil {
		if errors.Is(err, ErrInvalidWalletAddress) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.app.Logger.Printf("Failed to link wallet: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link wallet"})
		return
	}

	h.setCookie(c, sess.ID, int(h.app.Config.SessionMaxAge.Seconds()))
	c.JSON(http.StatusOK, CheckResponse{Success: true, WalletAddress: sess.WalletAddress})
}

// DisconnectHandler clears the wallet link and expires the cookie
func (h *Handlers) DisconnectHandler(c *gin.Context) {
	if err := h.service.Disconnect(c.Request.Context(), SessionID(c)); err != nil {
		h.app.Logger.Printf("Disconnect failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disconnect"})
		return
	}

	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, DisconnectResponse{Success: true})
}

func (h *Handlers) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", h.app.Config.CookieSecure, true)
}
