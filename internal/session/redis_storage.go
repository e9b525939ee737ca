// Package session provides fiber session storage backends.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "cybercalc:session:"

// RedisStorage implements fiber.Storage on top of Redis so sessions survive restarts
// and can be shared between processes
type RedisStorage struct {
	client *redis.Client
	prefix string
	ctx    context.Context
}

// RedisConfig holds the connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces the session keys. Defaults to "cybercalc:session:".
	Prefix string
}

// NewRedisStorage connects to Redis and verifies the connection with PING
func NewRedisStorage(cfg RedisConfig) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return NewRedisStorageFromClient(client, cfg.Prefix), nil
}

// NewRedisStorageFromClient wraps an existing client
func NewRedisStorageFromClient(client *redis.Client, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisStorage{
		client: client,
		prefix: prefix,
		ctx:    context.Background(),
	}
}

// Get returns the stored value, or (nil, nil) if the key does not exist
func (s *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, err := s.client.Get(s.ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set stores the value. A zero exp keeps the key without expiration.
func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	return s.client.Set(s.ctx, s.prefix+key, val, exp).Err()
}

// Delete removes the key
func (s *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	return s.client.Del(s.ctx, s.prefix+key).Err()
}

// Reset removes every session key under the prefix
func (s *RedisStorage) Reset() error {
	iter := s.client.Scan(s.ctx, 0, s.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(s.ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan session keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(s.ctx, keys...).Err()
}

// Close closes the underlying client
func (s *RedisStorage) Close() error {
	return s.client.Close()
}
