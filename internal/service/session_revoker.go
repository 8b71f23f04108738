package service

import (
	"context"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// SessionRevoker remembers logged-out session ids until they would have expired anyway.
type SessionRevoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type RedisSessionRevoker struct {
	rdb *redis.Client
}

// NewSessionRevoker returns a Redis-backed revoker, or a no-op one when rdb is nil.
func NewSessionRevoker(rdb *redis.Client) SessionRevoker {
	if rdb == nil {
		return noopRevoker{}
	}
	return &RedisSessionRevoker{rdb: rdb}
}

func revokedKey(jti string) string {
	return "session_revoked:" + jti
}

func (r *RedisSessionRevoker) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, revokedKey(jti), 1, ttl).Err()
}

func (r *RedisSessionRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := r.rdb.Get(ctx, revokedKey(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// noopRevoker is used without Redis: logout only clears the cookie.
type noopRevoker struct{}

func (noopRevoker) Revoke(context.Context, string, time.Time) error { return nil }

func (noopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }
