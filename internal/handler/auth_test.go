package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpThenLogin(t *testing.T) {
	app := newTestApp()

	ck := app.signUp("Alice", "a@x.com", "pw1")
	require.NotNil(t, ck, "sign-up should start a session")
	assert.Equal(t, 1, app.users.count())

	rec := app.request(http.MethodPost, "/login", url.Values{
		"email": {"a@x.com"}, "password": {"pw1"},
	}, nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/services_intro", rec.Header().Get("Location"))
	assert.NotNil(t, sessionCookie(rec), "login should issue a session cookie")
}

func TestSignUpPasswordMismatch(t *testing.T) {
	app := newTestApp()

	rec := app.request(http.MethodPost, "/sign_up", url.Values{
		"name": {"Alice"}, "email": {"a@x.com"}, "phone": {"1"},
		"address": {"x"}, "gender": {"Other"},
		"password": {"pw1"}, "confirm": {"pw2"},
	}, nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/sign_up", rec.Header().Get("Location"))
	assert.Equal(t, 0, app.users.count(), "no user record on password mismatch")

	notices := flashNotices(rec)
	require.Len(t, notices, 1)
	assert.Equal(t, "Passwords do not match!", notices[0].Message)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	app := newTestApp()
	require.NotNil(t, app.signUp("Alice", "a@x.com", "pw1"))

	rec := app.request(http.MethodPost, "/sign_up", url.Values{
		"name": {"Mallory"}, "email": {"a@x.com"}, "phone": {"2"},
		"address": {"y"}, "gender": {"Other"},
		"password": {"pw9"}, "confirm": {"pw9"},
	}, nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"), "duplicate email redirects to login, not back to the form")
	assert.Equal(t, 1, app.users.count(), "no duplicate record created")
}

func TestLoginInvalidCredentials(t *testing.T) {
	app := newTestApp()
	app.signUp("Alice", "a@x.com", "pw1")

	for _, form := range []url.Values{
		{"email": {"a@x.com"}, "password": {"wrong"}},
		{"email": {"nobody@x.com"}, "password": {"pw1"}},
	} {
		rec := app.request(http.MethodPost, "/login", form, nil)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
		assert.Nil(t, sessionCookie(rec), "no session on bad credentials")
	}
}

func TestLoginRememberExtendsSession(t *testing.T) {
	app := newTestApp()
	app.signUp("Alice", "a@x.com", "pw1")

	short := sessionCookie(app.request(http.MethodPost, "/login", url.Values{
		"email": {"a@x.com"}, "password": {"pw1"},
	}, nil))
	long := sessionCookie(app.request(http.MethodPost, "/login", url.Values{
		"email": {"a@x.com"}, "password": {"pw1"}, "rememberMe": {"on"},
	}, nil))

	require.NotNil(t, short)
	require.NotNil(t, long)
	assert.Greater(t, long.MaxAge, short.MaxAge, "remember-me cookie must outlive the default session")
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	app := newTestApp()

	for _, target := range []string{"/add_car", "/ev_service_booking", "/car_service_history", "/logout"} {
		rec := app.request(http.MethodGet, target, nil, nil)
		assert.Equal(t, http.StatusFound, rec.Code, target)
		assert.Equal(t, "/login", rec.Header().Get("Location"), target)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	app := newTestApp()
	ck := app.signUp("Alice", "a@x.com", "pw1")
	require.NotNil(t, ck)

	rec := app.request(http.MethodGet, "/logout", nil, []*http.Cookie{ck})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	var cleared bool
	for _, out := range rec.Result().Cookies() {
		if out.Name == ck.Name && out.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "logout must expire the session cookie")
}

func TestLogoutRevokesToken(t *testing.T) {
	app := newTestApp()
	ck := app.signUp("Alice", "a@x.com", "pw1")
	require.NotNil(t, ck)

	rec := app.request(http.MethodGet, "/logout", nil, []*http.Cookie{ck})
	require.Equal(t, http.StatusFound, rec.Code)

	// The token itself is still cryptographically valid, but replaying
	// it after logout must bounce to the login page.
	rec = app.request(http.MethodGet, "/car_service_history", nil, []*http.Cookie{ck})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
