// Package store persists backend wallet sessions.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when no session has the requested id
var ErrSessionNotFound = errors.New("session not found")

// Session is a browser session, optionally linked to a wallet
type Session struct {
	ID            string
	WalletAddress string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Linked reports whether a wallet is attached to the session
func (s *Session) Linked() bool {
	return s.WalletAddress != ""
}

// Stats summarises the stored sessions
type Stats struct {
	Total  int
	Linked int
}

// Store is the session storage used by the backend
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	// Link attaches walletAddress to the session, creating it if needed
	Link(ctx context.Context, id, walletAddress string) (*Session, error)
	// Unlink clears the wallet of a session. Unknown ids are not an error.
	Unlink(ctx context.Context, id string) error
	// DeleteExpired removes sessions untouched since before cutoff
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
	Stats(ctx context.Context) (Stats, error)
	Close() error
}
