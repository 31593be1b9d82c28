// Package store selects the session backend named in the configuration.
package store

import (
	"context"
	"fmt"

	"investiga-web/internal/config"
	"investiga-web/internal/logger"
	"investiga-web/internal/repository"
	"investiga-web/internal/repository/memory"
	"investiga-web/internal/repository/postgres"
	"investiga-web/internal/repository/redis"
)

// OpenSessions connects to the configured session store. The returned func
// releases its connections.
func OpenSessions(ctx context.Context, cfg *config.Config) (repository.SessionRepository, func(), error) {
	switch cfg.Session.Store {
	case "postgres":
		logger.Debug("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
		db, err := postgres.Open(ctx, cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, nil, err
		}
		s := postgres.NewStore(db)
		if err := s.EnsureSchema(ctx); err != nil {
			s.Close()
			return nil, nil, err
		}
		logger.Info("Database connection established")
		return s, func() { s.Close() }, nil
	case "redis":
		client, err := redis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Redis connection established", "addr", cfg.Redis.Addr)
		return redis.NewSessionRepository(client), func() { client.Close() }, nil
	case "memory", "":
		return memory.NewSessionRepository(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported session store: %s", cfg.Session.Store)
	}
}
