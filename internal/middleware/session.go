package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farahelsenaryyy/Autofixer/internal/utils"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "af_session"

// RevocationChecker reports whether a session token id has been
// revoked by logout. The Redis-backed session store implements it; a
// nil-backed store never reports revocation.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) bool
}

// RequireSession returns an Echo middleware that authenticates the
// request from the session cookie and injects the user id into the
// request context under "user_id". The boundary behavior for any
// failure (missing cookie, bad signature, expired token, revoked
// session) is a redirect to the login page, never an error surfaced
// to the business logic.
func RequireSession(secret string, revoked RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(SessionCookie)
			if err != nil || ck.Value == "" {
				return c.Redirect(http.StatusFound, "/login")
			}
			claims, err := utils.ParseSessionToken(secret, ck.Value)
			if err != nil {
				return c.Redirect(http.StatusFound, "/login")
			}
			if revoked != nil && revoked.IsRevoked(c.Request().Context(), claims.JTI) {
				return c.Redirect(http.StatusFound, "/login")
			}
			c.Set("user_id", claims.UserID)
			c.Set("session_jti", claims.JTI)
			c.Set("session_exp", claims.Exp)
			return next(c)
		}
	}
}

// CurrentUserID returns the authenticated user id stored by
// RequireSession, or 0 when the request is unauthenticated.
func CurrentUserID(c echo.Context) uint64 {
	if v, ok := c.Get("user_id").(uint64); ok {
		return v
	}
	return 0
}
