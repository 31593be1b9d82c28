// Package redis stores browser sessions in Redis with a per-key TTL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"investiga-web/internal/domain"
	"investiga-web/internal/logger"
	"investiga-web/internal/repository"

	goredis "github.com/redis/go-redis/v9"
)

const (
	storeName = "redis"
	keyPrefix = "session:"
)

// Client is the subset of go-redis the store needs
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// Connect accepts either a redis:// URL or a host:port address
func Connect(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	var client *goredis.Client
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opt, err := goredis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		client = goredis.NewClient(opt)
	} else {
		client = goredis.NewClient(&goredis.Options{Addr: addr, Password: password, DB: db})
	}
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

type sessionRepository struct {
	client Client
	now    func() time.Time
}

func NewSessionRepository(client Client) repository.SessionRepository {
	return &sessionRepository{client: client, now: time.Now}
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	logger.StoreCall(storeName, "get", "session_id", id)
	data, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, goredis.Nil) {
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

	var ttl time.Duration
	if !s.ExpiresOn.IsZero() {
		ttl = s.ExpiresOn.Sub(r.now())
		if ttl <= 0 {
			// Already expired; drop it instead of storing without expiry
			return r.Delete(ctx, s.ID)
		}
	}

	err = r.client.Set(ctx, keyPrefix+s.ID, data, ttl).Err()
	logger.StoreResult(storeName, "save", err, "session_id", s.ID, "ttl", ttl)
	return err
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	logger.StoreCall(storeName, "delete", "session_id", id)
	err := r.client.Del(ctx, keyPrefix+id).Err()
	logger.StoreResult(storeName, "delete", err, "session_id", id)
	return err
}

// DeleteExpired is a no-op: redis expires keys on its own.
func (r *sessionRepository) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
