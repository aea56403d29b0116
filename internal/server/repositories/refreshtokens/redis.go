package refreshtokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

const (
	redisKeyPrefix   = "authkeeper:refresh:"
	rotateMaxRetries = 4
	redisDialTimeout = 5 * time.Second
)

// NewRedisClient connects and pings the server.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rc := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: redisDialTimeout,
		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()
	if err := rc.Ping(pingCtx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("redis connect error: %w", err)
	}
	return rc, nil
}

// RedisStore keeps one key per user holding the hash. Keys expire together
// with the refresh token.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: client, ttl: ttl}
}

func (s *RedisStore) key(userID string) string {
	return redisKeyPrefix + userID
}

func (s *RedisStore) Save(ctx context.Context, userID, token string) error {
	if err := s.redis.Set(ctx, s.key(userID), HashToken(token), s.ttl).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

func (s *RedisStore) Validate(ctx context.Context, userID, token string) error {
	hash, err := s.redis.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return common.ErrInvalidToken
		}
		return fmt.Errorf("redis error: %w", err)
	}
	if !Matches(hash, token) {
		return common.ErrInvalidToken
	}
	return nil
}

// Rotate uses WATCH/MULTI so a concurrent change to the key aborts the
// transaction. After an abort the key is re-read, so the loser of a race
// sees a mismatch and gets common.ErrInvalidToken.
func (s *RedisStore) Rotate(ctx context.Context, userID, oldToken, newToken string) error {
	key := s.key(userID)

	for i := 0; i < rotateMaxRetries; i++ {
		err := s.redis.Watch(ctx, func(tx *redis.Tx) error {
			hash, err := tx.Get(ctx, key).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					return common.ErrInvalidToken
				}
				return err
			}
			if !Matches(hash, oldToken) {
				return common.ErrInvalidToken
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, HashToken(newToken), s.ttl)
				return nil
			})
			return err
		}, key)

		switch {
		case err == nil:
			return nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case errors.Is(err, common.ErrInvalidToken):
			return err
		default:
			return fmt.Errorf("redis error: %w", err)
		}
	}
	return common.ErrInvalidToken
}

func (s *RedisStore) Revoke(ctx context.Context, userID string) error {
	if err := s.redis.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}
