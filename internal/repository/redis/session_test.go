package redis

import (
	"context"
	"testing"
	"time"

	"investiga-web/internal/domain"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type setCall struct {
	key string
	ttl time.Duration
}

// fakeClient keeps values in a map and records Set expirations
type fakeClient struct {
	values map[string]string
	sets   []setCall
	dels   []string
	err    error
}

func newFakeClient() *fakeClient {
	return &fakeClient{values: make(map[string]string)}
}

func (f *fakeClient) Get(_ context.Context, key string) *goredis.StringCmd {
	if f.err != nil {
		return goredis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(_ context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd {
	if f.err != nil {
		return goredis.NewStatusResult("", f.err)
	}
	f.values[key] = string(value.([]byte))
	f.sets = append(f.sets, setCall{key, expiration})
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	for _, k := range keys {
		delete(f.values, k)
		f.dels = append(f.dels, k)
	}
	return goredis.NewIntResult(int64(len(keys)), nil)
}

func TestSessionRepository_SaveAndGet(t *testing.T) {
	client := newFakeClient()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &sessionRepository{client: client, now: func() time.Time { return now }}
	ctx := context.Background()

	s := &domain.Session{
		ID:        "abc",
		User:      &domain.CurrentUser{ID: 5, Email: "luis@uni.es"},
		Cookies:   []domain.BackendCookie{{Name: "Authentication", Value: "tok"}},
		ExpiresOn: now.Add(2 * time.Hour),
	}
	require.NoError(t, repo.Save(ctx, s))
	require.Len(t, client.sets, 1)
	assert.Equal(t, "session:abc", client.sets[0].key)
	assert.Equal(t, 2*time.Hour, client.sets[0].ttl)

	got, err := repo.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "luis@uni.es", got.User.Email)
	assert.Equal(t, "tok", got.Cookies[0].Value)
}

func TestSessionRepository_GetMissing(t *testing.T) {
	repo := NewSessionRepository(newFakeClient())
	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionRepository_GetError(t *testing.T) {
	client := newFakeClient()
	client.err = assert.AnError
	repo := NewSessionRepository(client)
	_, err := repo.Get(context.Background(), "x")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSessionRepository_SaveExpiredDeletes(t *testing.T) {
	client := newFakeClient()
	now := time.Now()
	repo := &sessionRepository{client: client, now: func() time.Time { return now }}

	require.NoError(t, repo.Save(context.Background(), &domain.Session{ID: "old", ExpiresOn: now.Add(-time.Second)}))
	assert.Empty(t, client.sets)
	assert.Equal(t, []string{"session:old"}, client.dels)
}

func TestSessionRepository_DeleteExpiredIsNoop(t *testing.T) {
	n, err := NewSessionRepository(newFakeClient()).DeleteExpired(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Zero(t, n)
}
