package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "suite_hotel/internal/adapters/redis"
	"suite_hotel/internal/domain"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestCache_SetGetExpire(t *testing.T) {
	mr, c := newClient(t)
	cache := redisad.NewWithClient(c)
	ctx := context.Background()

	var got []domain.Hotel
	ok, err := cache.Get(ctx, "hotels:all", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	in := []domain.Hotel{{ID: "h1", Name: "Sea Breeze", Price: 120, Amenities: []string{"Pool"}}}
	require.NoError(t, cache.Set(ctx, "hotels:all", in, 60))

	ok, err = cache.Get(ctx, "hotels:all", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, got)

	mr.FastForward(61 * time.Second)
	ok, err = cache.Get(ctx, "hotels:all", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Del(t *testing.T) {
	_, c := newClient(t)
	cache := redisad.NewWithClient(c)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "rooms:h1", []domain.Room{{ID: "r1"}}, 60))
	require.NoError(t, cache.Del(ctx, "rooms:h1"))

	var rooms []domain.Room
	ok, err := cache.Get(ctx, "rooms:h1", &rooms)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_RoundTripAndMissing(t *testing.T) {
	mr, c := newClient(t)
	st := redisad.NewStore(c)
	ctx := context.Background()

	_, err := st.Get(ctx, "sui-wallet-user")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, st.Put(ctx, "sui-wallet-user", []byte(`{"address":"0xabc"}`)))
	b, err := st.Get(ctx, "sui-wallet-user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"address":"0xabc"}`, string(b))

	// no expiry on durable entries
	mr.FastForward(24 * time.Hour)
	_, err = st.Get(ctx, "sui-wallet-user")
	require.NoError(t, err)

	require.NoError(t, st.Delete(ctx, "sui-wallet-user"))
	_, err = st.Get(ctx, "sui-wallet-user")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
