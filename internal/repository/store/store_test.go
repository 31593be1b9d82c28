package store

import (
	"context"
	"testing"

	"investiga-web/internal/config"
	"investiga-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSessions(t *testing.T) {
	t.Run("Memory", func(t *testing.T) {
		repo, closeFn, err := OpenSessions(context.Background(), &config.Config{Session: config.SessionConfig{Store: "memory"}})
		require.NoError(t, err)
		defer closeFn()

		require.NoError(t, repo.Save(context.Background(), &domain.Session{ID: "s1"}))
		got, err := repo.Get(context.Background(), "s1")
		require.NoError(t, err)
		assert.Equal(t, "s1", got.ID)
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, _, err := OpenSessions(context.Background(), &config.Config{Session: config.SessionConfig{Store: "etcd"}})
		assert.ErrorContains(t, err, "unsupported session store")
	})
}
