package session

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/infpro/storefront-api/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T, namespace string) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStorage(client, namespace), mr
}

func TestRedisStorageNamespacesKeys(t *testing.T) {
	ctx := context.Background()
	st, mr := newTestRedis(t, "alice")

	require.NoError(t, st.Set(ctx, ThemeKey, "dark"))

	got, err := mr.Get("storefront:alice:infpro_theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", got)

	v, ok, err := st.Get(ctx, ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	require.NoError(t, st.Delete(ctx, ThemeKey))
	_, ok, err = st.Get(ctx, ThemeKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestRedis(t, "bob")

	s, err := Load(ctx, st)
	require.NoError(t, err)
	require.NoError(t, s.AddToCart(ctx, models.Product{ID: "p2", Price: 2599}))
	require.NoError(t, s.SetToken(ctx, "tok"))

	again, err := Load(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Cart.ItemCount())
	assert.Equal(t, "tok", again.Token)
}

func TestDialRedisFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := DialRedis(context.Background(), addr, "x")
	assert.Error(t, err)
}
