package redisstore_test

import (
	"context"
	"testing"
	"time"

	redisstore "fxrates-watch/internal/infrastructure/redis"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*redisstore.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisstore.New(client, time.Hour), mr
}

func TestTryReserve(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	ok, err := store.TryReserve(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.TryReserve(ctx, "k1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRelease(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	ok, err := store.TryReserve(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, mr.Exists("k1"))

	require.NoError(t, store.Release(ctx, "k1"))
	require.False(t, mr.Exists("k1"))

	ok, err = store.TryReserve(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRelease_LeavesForeignReservation(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	ok, err := store.TryReserve(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)

	// reservation expired and another run took it over
	require.NoError(t, mr.Set("k1", "someone-else"))
	require.NoError(t, store.Release(ctx, "k1"))
	v, err := mr.Get("k1")
	require.NoError(t, err)
	require.Equal(t, "someone-else", v)
}

func TestTTLApplied(t *testing.T) {
	store, mr := newStore(t)
	ok, err := store.TryReserve(context.Background(), "k1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, time.Hour, mr.TTL("k1"))

	mr.FastForward(2 * time.Hour)
	require.False(t, mr.Exists("k1"))
}

func TestRelease_Unknown(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Release(context.Background(), "never"))
}
