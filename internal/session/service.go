package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neekaru/walletconnect/internal/app"
	"github.com/neekaru/walletconnect/internal/store"
)

// ErrInvalidWalletAddress is returned for addresses that are not 0x + 40 hex digits
var ErrInvalidWalletAddress = errors.New("invalid wallet address")

var walletAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// Service handles session-related business logic
type Service struct {
	app *app.App
}

// NewService creates a new session service
func NewService(app *app.App) *Service {
	return &Service{app: app}
}

// NormalizeWalletAddress validates an address and lowercases it
func NormalizeWalletAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !walletAddressPattern.MatchString(address) {
		return "", fmt.Errorf("%w: %q", ErrInvalidWalletAddress, address)
	}
	return strings.ToLower(address), nil
}

// Check reports whether the session is linked to a wallet. Unknown or
// expired sessions are reported as not linked.
func (s *Service) Check(ctx context.Context, sessionID string) (CheckResponse, error) {
	if sessionID == "" {
		return CheckResponse{Success: false}, nil
	}

	sess, err := s.app.Store.Get(ctx, sessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		return CheckResponse{Success: false}, nil
	}
	if err != nil {
		return CheckResponse{}, err
	}
	if s.expired(sess) || !sess.Linked() {
		return CheckResponse{Success: false}, nil
	}

	return CheckResponse{Success: true, WalletAddress: sess.WalletAddress}, nil
}

// Connect links walletAddress to the session. A session id the store does
// not know is never adopted; a fresh one is issued instead.
func (s *Service) Connect(ctx context.Context, sessionID, walletAddress string) (*store.Session, error) {
	address, err := NormalizeWalletAddress(walletAddress)
	if err != nil {
		return nil, err
	}
	sessionID, err = s.knownSessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess, err := s.app.Store.Link(ctx, sessionID, address)
	if err != nil {
		return nil, err
	}
	s.app.Logger.Printf("Session %s linked to wallet %s", sessionID, address)
	return sess, nil
}

// Disconnect removes the wallet link; disconnecting an unknown or already
// disconnected session succeeds
func (s *Service) Disconnect(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.app.Store.Unlink(ctx, sessionID); err != nil {
		return err
	}
	s.app.Logger.Printf("Session %s disconnected", sessionID)
	return nil
}

// CleanupExpired deletes sessions idle for longer than the configured max age
func (s *Service) CleanupExpired(ctx context.Context) (int64, error) {
	removed, err := s.app.Store.DeleteExpired(ctx, time.Now().Add(-s.app.Config.SessionMaxAge))
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.app.Logger.Printf("Cleaned up %d expired sessions", removed)
	}
	return removed, nil
}

// RunCleanup calls CleanupExpired every interval until ctx is done
func (s *Service) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.CleanupExpired(ctx); err != nil && ctx.Err() == nil {
				s.app.Logger.Printf("Session cleanup failed: %v", err)
			}
		}
	}
}

// knownSessionID returns sessionID if it names a stored session, otherwise a new id
func (s *Service) knownSessionID(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return uuid.NewString(), nil
	}
	_, err := s.app.Store.Get(ctx, sessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		return uuid.NewString(), nil
	}
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

func (s *Service) expired(sess *store.Session) bool {
	return time.Since(sess.UpdatedAt) > s.app.Config.SessionMaxAge
}
