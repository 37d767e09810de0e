package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id             TEXT PRIMARY KEY,
	wallet_address TEXT NOT NULL DEFAULT '',
	created_at     INTEGER NOT NULL,
	updated_at     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_updated_at ON sessions(updated_at);
`

// SQLiteStore keeps sessions in a sqlite database file
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (and migrates) the database at path
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	// sqlite serialises writers anyway; one connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sessions: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Get returns the session with the given id
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, wallet_address, created_at, updated_at FROM sessions WHERE id = ?`, id)

	var sess Session
	var created, updated int64
	if err := row.Scan(&sess.ID, &sess.WalletAddress, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	sess.CreatedAt = time.Unix(0, created).UTC()
	sess.UpdatedAt = time.Unix(0, updated).UTC()
	return &sess, nil
}

// Link attaches walletAddress to the session, creating it if needed
func (s *SQLiteStore) Link(ctx context.Context, id, walletAddress string) (*Session, error) {
	now := s.now().UnixNano()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, wallet_address, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET wallet_address = excluded.wallet_address, updated_at = excluded.updated_at`,
		id, walletAddress, now, now)
	if err != nil {
		return nil, fmt.Errorf("link session %s: %w", id, err)
	}
	return s.Get(ctx, id)
}

// Unlink clears the wallet of a session
func (s *SQLiteStore) Unlink(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET wallet_address = '', updated_at = ? WHERE id = ?`, s.now().UnixNano(), id)
	if err != nil {
		return fmt.Errorf("unlink session %s: %w", id, err)
	}
	return nil
}

// DeleteExpired removes sessions untouched since before cutoff
func (s *SQLiteStore) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE updated_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}

// Stats counts total and wallet-linked sessions
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN wallet_address != '' THEN 1 ELSE 0 END), 0) FROM sessions`,
	).Scan(&stats.Total, &stats.Linked)
	if err != nil {
		return Stats{}, fmt.Errorf("session stats: %w", err)
	}
	return stats, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
