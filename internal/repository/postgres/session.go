package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"investiga-web/internal/domain"
	"investiga-web/internal/logger"
	"investiga-web/internal/repository"
)

const storeName = "postgres"

type sessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	logger.StoreCall(storeName, "get", "session_id", id)
	var data []byte
	query := `SELECT data FROM web_sessions WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		logger.StoreResult(storeName, "get", nil, "session_id", id, "found", false)
		return nil, domain.ErrNotFound
	}
	if err != nil {
		logger.StoreResult(storeName, "get", err, "session_id", id)
		return nil, err
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	logger.StoreResult(storeName, "get", nil, "session_id", id, "found", true)
	return &s, nil
}

func (r *sessionRepository) Save(ctx context.Context, s *domain.Session) error {
	logger.StoreCall(storeName, "save", "session_id", s.ID)
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	var userID sql.NullInt32
	if s.User != nil {
		userID = sql.NullInt32{Int32: s.User.ID, Valid: true}
	}

	query := `INSERT INTO web_sessions (id, user_id, data, created_on, expires_on)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (id) DO UPDATE SET user_id = $2, data = $3, expires_on = $5`
	_, err = r.db.ExecContext(ctx, query, s.ID, userID, data, s.CreatedOn, s.ExpiresOn)
	logger.StoreResult(storeName, "save", err, "session_id", s.ID)
	return err
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	logger.StoreCall(storeName, "delete", "session_id", id)
	_, err := r.db.ExecContext(ctx, `DELETE FROM web_sessions WHERE id = $1`, id)
	logger.StoreResult(storeName, "delete", err, "session_id", id)
	return err
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	logger.StoreCall(storeName, "delete_expired")
	res, err := r.db.ExecContext(ctx, `DELETE FROM web_sessions WHERE expires_on < $1`, now)
	if err != nil {
		logger.StoreResult(storeName, "delete_expired", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	logger.StoreResult(storeName, "delete_expired", err, "deleted", n)
	return n, err
}
