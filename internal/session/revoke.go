package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoker remembers tokens that were logged out before they expired.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedis creates a new Redis client
func NewRedis(opts RedisOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

// RedisRevoker keeps revoked token ids as keys that expire with the token.
type RedisRevoker struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisRevoker(rdb *redis.Client) *RedisRevoker {
	return &RedisRevoker{rdb: rdb, prefix: "session:revoked:"}
}

func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, r.prefix+tokenID, 1, ttl).Err()
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	err := r.rdb.Get(ctx, r.prefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
