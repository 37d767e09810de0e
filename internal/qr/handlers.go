package qr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neekaru/walletconnect/internal/app"
	"github.com/neekaru/walletconnect/internal/session"
)

// Handlers contains HTTP handlers for QR codes
type Handlers struct {
	app     *app.App
	service *Service
}

// NewHandlers creates a new QR handlers instance
func NewHandlers(app *app.App) *Handlers {
	return &Handlers{
		app:     app,
		service: NewService(app),
	}
}

// QRImageHandler returns the linked wallet address as a QR data URI
func (h *Handlers) QRImageHandler(c *gin.Context) {
	qrCode, err := h.service.GenerateQRCode(c.Request.Context(), session.SessionID(c))
	if err != nil {
		if errors.Is(err, ErrNoWallet) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No wallet connected"})
			return
		}
		h.app.Logger.Printf("QR generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"qrcode": "data:image/png;base64," + qrCode})
}
