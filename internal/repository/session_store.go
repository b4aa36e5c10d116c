package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps a revocation list for session tokens in Redis.
// Logout writes the token's jti with a TTL matching the token's
// remaining lifetime; the session middleware rejects any token whose
// jti is present. With a nil Redis client the store degrades to a
// no-op: logout still clears the cookie, it just cannot invalidate a
// stolen copy of the token early.
type SessionStore struct{ rdb *redis.Client }

func NewSessionStore(rdb *redis.Client) *SessionStore { return &SessionStore{rdb: rdb} }

const revokePrefix = "session:revoked:"

// Revoke marks a session token id as invalid until it would have
// expired anyway. Revoking an already-revoked or unknown jti is a
// no-op, which makes logout idempotent.
func (s *SessionStore) Revoke(ctx context.Context, jti string, until time.Time) error {
	if s == nil || s.rdb == nil || jti == "" {
		return nil
	}
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revokePrefix+jti, 1, ttl).Err()
}

// IsRevoked reports whether a session token id has been revoked. Redis
// errors are treated as "not revoked" so an unavailable Redis does not
// lock every user out.
func (s *SessionStore) IsRevoked(ctx context.Context, jti string) bool {
	if s == nil || s.rdb == nil || jti == "" {
		return false
	}
	n, err := s.rdb.Exists(ctx, revokePrefix+jti).Result()
	if err != nil {
		return false
	}
	return n > 0
}
