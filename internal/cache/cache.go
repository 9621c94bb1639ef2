package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
)

// ErrMiss значение не найдено
var ErrMiss = errors.New("cache miss")

// Cache кэш результатов расчета
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Key ключ кэша: отпечаток конфигурации, имя инструмента и канонический
// JSON параметров. encoding/json сортирует ключи map, поэтому одинаковые
// запросы дают один ключ.
func Key(namespace, tool string, params interface{}) (string, error) {
	hash, err := hashJSON(params)
	if err != nil {
		return "", fmt.Errorf("failed to encode cache key: %w", err)
	}
	return "pricing:" + namespace + ":" + tool + ":" + hash, nil
}

// Fingerprint отпечаток состояния, от которого зависят результаты расчета.
// Считается один раз при запуске и служит namespace для Key.
func Fingerprint(parts ...interface{}) (string, error) {
	hash, err := hashJSON(parts)
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint config: %w", err)
	}
	return hash, nil
}

func hashJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16), nil
}

// RedisCache кэш на Redis со значениями в JSON
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache подключается к Redis с повторными попытками
func NewRedisCache(ctx context.Context, addr, password string, db int, maxWait time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = maxWait

	err := backoff.Retry(func() error {
		return client.Ping(ctx).Err()
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return &RedisCache{client: client}, nil
}

// Get читает значение и декодирует его в dest
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// Set сохраняет значение в JSON с TTL
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Close закрывает соединение
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// MemoryCache кэш в памяти процесса, без вытеснения и без учета TTL
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryCache пустой кэш в памяти
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string][]byte)}
}

// Get читает значение и декодирует его в dest
func (c *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.RLock()
	data, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return ErrMiss
	}
	return json.Unmarshal(data, dest)
}

// Set сохраняет значение в JSON
func (c *MemoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.items[key] = data
	c.mu.Unlock()
	return nil
}
