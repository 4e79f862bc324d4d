package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStorage shares client state between processes. Keys are namespaced as
// "storefront:<namespace>:<key>" so several shoppers can use one server.
type RedisStorage struct {
	client    *redis.Client
	namespace string
}

func NewRedisStorage(client *redis.Client, namespace string) *RedisStorage {
	return &RedisStorage{client: client, namespace: namespace}
}

// DialRedis connects to addr and pings it.
func DialRedis(ctx context.Context, addr, namespace string) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return NewRedisStorage(client, namespace), nil
}

func (r *RedisStorage) Key(key string) string {
	return fmt.Sprintf("storefront:%s:%s", r.namespace, key)
}

func (r *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.Key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisStorage) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.Key(key), value, 0).Err()
}

func (r *RedisStorage) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.Key(key)).Err()
}

func (r *RedisStorage) Close() error {
	return r.client.Close()
}
