package memory

import (
	"context"
	"testing"
	"time"

	"investiga-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_RoundTrip(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s := &domain.Session{ID: "a", User: &domain.CurrentUser{ID: 1}, UI: domain.DefaultUIState()}
	s.PushNotice(domain.Notice{Kind: domain.NoticeSuccess, Title: "ok"})
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int32(1), got.User.ID)
	assert.Len(t, got.Notices, 1)

	// Mutating the returned copy must not leak into the store
	got.PopNotices()
	got.User.ID = 99
	again, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, again.Notices, 1)
	assert.Equal(t, int32(1), again.User.ID)

	require.NoError(t, repo.Delete(ctx, "a"))
	_, err = repo.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Save(ctx, &domain.Session{ID: "old", ExpiresOn: now.Add(-time.Minute)}))
	require.NoError(t, repo.Save(ctx, &domain.Session{ID: "fresh", ExpiresOn: now.Add(time.Minute)}))
	require.NoError(t, repo.Save(ctx, &domain.Session{ID: "forever"}))

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.Get(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.Get(ctx, "fresh")
	assert.NoError(t, err)
	_, err = repo.Get(ctx, "forever")
	assert.NoError(t, err)
}
