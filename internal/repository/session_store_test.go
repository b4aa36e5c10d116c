package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionStoreDegradesWithoutRedis(t *testing.T) {
	// Both a nil receiver and a store built over a nil client must act
	// as a no-op revocation list rather than panic or error: logout
	// stays available even when Redis is not configured.
	for _, store := range []*SessionStore{nil, NewSessionStore(nil)} {
		assert.NoError(t, store.Revoke(context.Background(), "abc123", time.Now().Add(time.Hour)))
		assert.False(t, store.IsRevoked(context.Background(), "abc123"))
	}
}
