package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &RedisStore{Client: client}, mr
}

func stores(t *testing.T) map[string]Store {
	rs, _ := newRedisStore(t)
	return map[string]Store{
		"redis":  rs,
		"memory": NewMemoryStore(),
	}
}

func TestFormLifecycle(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := CloseForm(ctx, s, "sessao-1", now)
			assert.ErrorIs(t, err, ErrFormClosed)

			require.NoError(t, OpenForm(ctx, s, "sessao-1", "SANEANTES", "ALCOOL 70", "LIMPA TUDO", now))

			st, err := s.Get(ctx, "sessao-1")
			require.NoError(t, err)
			assert.True(t, st.FormOpen)
			assert.Equal(t, "ALCOOL 70", st.Product)

			got, err := CloseForm(ctx, s, "sessao-1", now.Add(time.Minute))
			require.NoError(t, err)
			assert.Equal(t, "LIMPA TUDO", got.Company)

			_, err = CloseForm(ctx, s, "sessao-1", now.Add(2*time.Minute))
			assert.ErrorIs(t, err, ErrFormClosed)

			other, err := s.Get(ctx, "sessao-2")
			require.NoError(t, err)
			assert.Equal(t, State{}, other)
		})
	}
}

func TestRedisStore_TTL(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, OpenForm(ctx, s, "abc", "C", "P", "E", now))
	assert.Equal(t, TTL, mr.TTL(keyPrefix+"abc"))

	mr.FastForward(TTL + time.Second)
	st, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, st.FormOpen)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	s, mr := newRedisStore(t)
	require.NoError(t, mr.Set(keyPrefix+"abc", "{nao é json"))

	_, err := s.Get(context.Background(), "abc")
	assert.Error(t, err)
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	s := &RedisStore{Client: client}
	_, err = s.Get(context.Background(), "abc")
	assert.Error(t, err)
}

func TestMemoryStore_Expires(t *testing.T) {
	s := NewMemoryStore()
	clock := now
	s.now = func() time.Time { return clock }
	ctx := context.Background()

	require.NoError(t, OpenForm(ctx, s, "abc", "C", "P", "E", now))
	clock = now.Add(TTL + time.Second)

	st, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, State{}, st)
}
