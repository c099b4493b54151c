// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package flash carries one-shot alert messages across a redirect.

A failed delete still redirects the browser; the alert explaining the failure
is pushed here and taken by whichever page renders next. Messages are keyed
by a random batch id held in a cookie, so only the browser that triggered the
alert sees it.

Two backends exist:

  - RedisStore: shared between instances, entries expire with a TTL.
  - MemoryStore: single-process fallback when no Redis URL is configured.
*/
package flash

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/librarium/internal/platform/constants"
)

// Store persists pending alerts per batch id.
type Store interface {
	// Push appends message to the batch.
	Push(ctx context.Context, batchID, message string) error
	// Pop returns every pending message of the batch and forgets them.
	Pop(ctx context.Context, batchID string) ([]string, error)
	// Ping reports whether the backend is usable.
	Ping(ctx context.Context) error
}

// # Redis Store

// RedisStore implements [Store] with one Redis list per batch.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed [Store] whose batches expire after ttl.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

/*
Push appends a message and refreshes the batch TTL.

Parameters:
  - ctx: context.Context
  - batchID: string
  - message: string

Returns:
  - error: Execution errors
*/
func (store *RedisStore) Push(ctx context.Context, batchID, message string) error {
	key := constants.RedisPrefixFlash + batchID

	_, err := store.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, message)
		pipe.Expire(ctx, key, store.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_flash_push_failed: %w", err)
	}
	return nil
}

/*
Pop reads and deletes the batch atomically.

Returns:
  - []string: Pending messages, empty when the batch is unknown or expired
  - error: Connectivity errors
*/
func (store *RedisStore) Pop(ctx context.Context, batchID string) ([]string, error) {
	key := constants.RedisPrefixFlash + batchID

	var messages *redis.StringSliceCmd
	_, err := store.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		messages = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis_flash_pop_failed: %w", err)
	}
	return messages.Val(), nil
}

// Ping verifies the Redis connection.
func (store *RedisStore) Ping(ctx context.Context) error {
	if err := store.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis_flash_ping_failed: %w", err)
	}
	return nil
}

// # Memory Store

type memoryBatch struct {
	messages  []string
	expiresAt time.Time
}

// MemoryStore implements [Store] in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	batches map[string]*memoryBatch
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-memory [Store] whose batches expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		batches: make(map[string]*memoryBatch),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Push appends message to the batch and refreshes its expiry. Expired
// batches are swept on the way.
func (store *MemoryStore) Push(_ context.Context, batchID, message string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	now := store.now()
	for id, batch := range store.batches {
		if now.After(batch.expiresAt) {
			delete(store.batches, id)
		}
	}

	batch, ok := store.batches[batchID]
	if !ok {
		batch = &memoryBatch{}
		store.batches[batchID] = batch
	}
	batch.messages = append(batch.messages, message)
	batch.expiresAt = now.Add(store.ttl)
	return nil
}

// Pop returns and forgets the batch.
func (store *MemoryStore) Pop(_ context.Context, batchID string) ([]string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	batch, ok := store.batches[batchID]
	if !ok {
		return nil, nil
	}
	delete(store.batches, batchID)

	if store.now().After(batch.expiresAt) {
		return nil, nil
	}
	return batch.messages, nil
}

// Ping always succeeds.
func (store *MemoryStore) Ping(context.Context) error { return nil }
