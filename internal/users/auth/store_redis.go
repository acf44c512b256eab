// Copyright (c) 2026 EasyBuy. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/easybuy/api/internal/platform/constants"
)

// RedisAttemptStore implements [AttemptStore] with expiring Redis counters.
type RedisAttemptStore struct {
	client redis.Cmdable
}

// NewAttemptStore creates a new Redis-backed AttemptStore.
func NewAttemptStore(client redis.Cmdable) *RedisAttemptStore {
	return &RedisAttemptStore{client: client}
}

func attemptKey(email string) string {
	return constants.RedisPrefixLoginAttempts + strings.ToLower(email)
}

// Failures implements [AttemptStore].
func (repository *RedisAttemptStore) Failures(ctx context.Context, email string) (int, error) {
	count, err := repository.client.Get(ctx, attemptKey(email)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_login_attempts_get_failed: %w", err)
	}
	return count, nil
}

/*
RecordFailure increments the counter and pushes its expiry out to window.

INCR and EXPIRE run in one transaction so a counter never outlives its window.
*/
func (repository *RedisAttemptStore) RecordFailure(ctx context.Context, email string, window time.Duration) (int, error) {
	key := attemptKey(email)

	var incr *redis.IntCmd
	_, err := repository.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis_login_attempts_incr_failed: %w", err)
	}

	return int(incr.Val()), nil
}

// Reset implements [AttemptStore].
func (repository *RedisAttemptStore) Reset(ctx context.Context, email string) error {
	if err := repository.client.Del(ctx, attemptKey(email)).Err(); err != nil {
		return fmt.Errorf("redis_login_attempts_reset_failed: %w", err)
	}
	return nil
}
