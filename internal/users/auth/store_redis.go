// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/buithanhtam/reviewly/internal/platform/apperr"
	"github.com/buithanhtam/reviewly/internal/platform/constants"
)

// RedisCodeRepository implements CodeRepository using Redis.
type RedisCodeRepository struct {
	client *redis.Client
}

// NewCodeRepository creates a new Redis-backed CodeRepository.
func NewCodeRepository(client *redis.Client) *RedisCodeRepository {
	return &RedisCodeRepository{client: client}
}

/*
Set stores the bcrypt hash of an issued confirmation code with a TTL.

Description: One pending record per user; re-issuing overwrites the previous
record and restarts the TTL.

Parameters:
  - context: context.Context
  - userID: string
  - codeHash: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisCodeRepository) Set(context context.Context, userID, codeHash string, ttl time.Duration) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixConfirmCode, userID)

	// Set the code hash with TTL
	if err := repository.client.Set(context, key, codeHash, ttl).Err(); err != nil {
		return fmt.Errorf("redis_confirm_code_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Get retrieves the stored code hash for a user.

Description: Returns apperr.NotFound if no pending record exists, either
because none was issued or the TTL expired.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - string: Stored bcrypt hash
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisCodeRepository) Get(context context.Context, userID string) (string, error) {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixConfirmCode, userID)

	// Get the code hash from Redis
	codeHash, err := repository.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Confirmation code is invalid or expired")
		}
		return "", fmt.Errorf("redis_confirm_code_get_failed: %w", err)
	}

	// Return the stored hash
	return codeHash, nil
}

/*
Delete removes the pending record, making the code unredeemable.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisCodeRepository) Delete(context context.Context, userID string) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixConfirmCode, userID)

	// Delete the record from Redis
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_confirm_code_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}
