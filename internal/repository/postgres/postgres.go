// Package postgres stores browser sessions in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"investiga-web/internal/repository"

	_ "github.com/lib/pq"
)

const schema = `CREATE TABLE IF NOT EXISTS web_sessions (
	id         TEXT PRIMARY KEY,
	user_id    INTEGER,
	data       JSONB NOT NULL,
	created_on TIMESTAMPTZ NOT NULL,
	expires_on TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS web_sessions_expires_on_idx ON web_sessions (expires_on)`

type Store struct {
	db *sql.DB
	repository.SessionRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		SessionRepository: NewSessionRepository(db),
	}
}

// Open connects with the lib/pq driver and verifies the connection
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the sessions table when missing
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create session schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
