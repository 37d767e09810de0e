// Package web serves the page hosting the connect button.
package web

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neekaru/walletconnect/internal/app"
)

//go:embed static/index.html
var indexPage []byte

// Handlers contains HTTP handlers for the page
type Handlers struct {
	app *app.App
}

// NewHandlers creates a new page handlers instance
func NewHandlers(app *app.App) *Handlers {
	return &Handlers{app: app}
}

// IndexHandler serves the connect page
func (h *Handlers) IndexHandler(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}
