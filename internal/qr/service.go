package qr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/neekaru/walletconnect/internal/app"
	"github.com/neekaru/walletconnect/internal/session"
	"github.com/skip2/go-qrcode"
)

// ErrNoWallet is returned when the session has no linked wallet
var ErrNoWallet = errors.New("session has no linked wallet")

// ImageSize is the edge length of generated QR PNGs in pixels
const ImageSize = 256

// Service renders the linked wallet address as a QR code
type Service struct {
	app            *app.App
	sessionService *session.Service
}

// NewService creates a new QR service
func NewService(app *app.App) *Service {
	return &Service{
		app:            app,
		sessionService: session.NewService(app),
	}
}

// GenerateQRCode returns a base64 encoded PNG of the session's wallet address
func (s *Service) GenerateQRCode(ctx context.Context, sessionID string) (string, error) {
	check, err := s.sessionService.Check(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !check.Success {
		return "", ErrNoWallet
	}

	qr, err := qrcode.New(check.WalletAddress, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}
	png, err := qr.PNG(ImageSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
