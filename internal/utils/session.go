package utils // package utils provides helper functions for session tokens and hashing

import (
	"crypto/rand"  // secure random number generation for token IDs
	"encoding/hex" // hex encoding for random token IDs
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionToken represents a signed HS256 session token and its claims.
// The Token field carries the serialized JWT that is set as the session
// cookie. JTI is a random identifier used for server-side revocation of
// a single session; Exp is the UTC expiry of the token.
type SessionToken struct {
	Token string    // the serialized JWT string
	JTI   string    // random token identifier (revocation key)
	Exp   time.Time // the UTC expiration time
}

// SessionClaims are the values extracted from a parsed session token.
type SessionClaims struct {
	UserID uint64
	JTI    string
	Exp    time.Time
}

// ErrInvalidSession is returned by ParseSessionToken for any token that
// cannot be verified: bad signature, wrong algorithm, expired, or claims
// of an unexpected shape.
var ErrInvalidSession = errors.New("invalid session token")

// NewSessionToken builds and signs an HS256 JWT identifying a user for
// the given lifetime. The JWT includes the subject (sub), a random jti
// for revocation, expiration (exp) and issued at (iat) claims. The
// caller decides the TTL: the login handler passes a longer one when
// the user ticked "remember me".
func NewSessionToken(secret string, userID uint64, ttl time.Duration) (SessionToken, error) {
	jti, err := randomHex(16)
	if err != nil {
		return SessionToken{}, err
	}
	exp := time.Now().UTC().Add(ttl)
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": jti,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, JTI: jti, Exp: exp}, nil
}

// ParseSessionToken verifies a raw session token and returns its claims.
// Only HMAC-signed tokens are accepted; anything else is rejected with
// ErrInvalidSession. Expiry is enforced by the jwt library via the exp
// claim.
func ParseSessionToken(secret, raw string) (SessionClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return SessionClaims{}, ErrInvalidSession
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, ErrInvalidSession
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return SessionClaims{}, ErrInvalidSession
	}
	out := SessionClaims{UserID: uint64(sub)}
	if jti, ok := claims["jti"].(string); ok {
		out.JTI = jti
	}
	if exp, ok := claims["exp"].(float64); ok {
		out.Exp = time.Unix(int64(exp), 0).UTC()
	}
	return out, nil
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
