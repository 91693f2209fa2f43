package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) (*RedisStoreAdapter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStoreAdapter(client), mr
}

func TestNewRedisStoreAdapter(t *testing.T) {
	client := &redis.Client{}
	adapter := NewRedisStoreAdapter(client)

	assert.NotNil(t, adapter)
	assert.Equal(t, client, adapter.client)
}

func TestRedisStoreAdapter_SetGet(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	err := adapter.Set(ctx, "loan:abc", "snapshot", time.Minute)
	require.NoError(t, err)

	value, err := adapter.Get(ctx, "loan:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("snapshot"), value)

	_, err = adapter.Get(ctx, "missing-key")
	assert.Error(t, err)
}

func TestRedisStoreAdapter_SetIfAbsent(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	acquired, err := adapter.SetIfAbsent(ctx, "payment:loan-1", "req-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	// Second acquisition while the guard is held must fail.
	acquired, err = adapter.SetIfAbsent(ctx, "payment:loan-1", "req-2", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)

	// Releasing the guard lets the next request in.
	err = adapter.Delete(ctx, "payment:loan-1")
	require.NoError(t, err)

	acquired, err = adapter.SetIfAbsent(ctx, "payment:loan-1", "req-3", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisStoreAdapter_SetIfAbsent_Expiry(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	acquired, err := adapter.SetIfAbsent(ctx, "payment:loan-2", "req-1", time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)

	mr.FastForward(2 * time.Second)

	acquired, err = adapter.SetIfAbsent(ctx, "payment:loan-2", "req-2", time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisStoreAdapter_ExistsDelete(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	exists, err := adapter.Exists(ctx, "guard-key")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, adapter.Set(ctx, "guard-key", "1", time.Minute))

	exists, err = adapter.Exists(ctx, "guard-key")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, adapter.Delete(ctx, "guard-key"))

	exists, err = adapter.Exists(ctx, "guard-key")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisStoreAdapter_ExpireTTL(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "ttl-key", "v", 0))

	ok, err := adapter.Expire(ctx, "ttl-key", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	ttl, err := adapter.TTL(ctx, "ttl-key")
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Hour)

	ok, err = adapter.Expire(ctx, "missing-key", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreAdapter_SetIfAbsentConnectionFailure(t *testing.T) {
	client, mock := redismock.NewClientMock()
	adapter := NewRedisStoreAdapter(client)
	ctx := context.Background()

	mock.ExpectSetNX("lending:payment:abc", "operator", time.Minute).
		SetErr(errors.New("connection refused"))

	acquired, err := adapter.SetIfAbsent(ctx, "lending:payment:abc", "operator", time.Minute)
	require.Error(t, err)
	assert.False(t, acquired)
	assert.NoError(t, mock.ExpectationsWereMet())
}
