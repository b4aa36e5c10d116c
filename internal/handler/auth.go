package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/farahelsenaryyy/Autofixer/internal/config"
	"github.com/farahelsenaryyy/Autofixer/internal/flash"
	"github.com/farahelsenaryyy/Autofixer/internal/middleware"
	"github.com/farahelsenaryyy/Autofixer/internal/model"
	"github.com/farahelsenaryyy/Autofixer/internal/repository"
	"github.com/farahelsenaryyy/Autofixer/internal/utils"
)

// AuthHandler bundles dependencies for the sign-up, login and logout
// workflows.
type AuthHandler struct {
	Cfg      config.Config
	Users    UserStore
	Sessions SessionRevoker
}

func NewAuthHandler(cfg config.Config, users UserStore, sessions SessionRevoker) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Sessions: sessions}
}

// SignUpForm renders the registration form.
func (h *AuthHandler) SignUpForm(c echo.Context) error {
	return renderPage(c, "Sign up", `<h1>Sign up</h1>
<form method="post" action="/sign_up">
<input name="name" placeholder="Name">
<input name="email" placeholder="Email">
<input name="phone" placeholder="Phone">
<input name="address" placeholder="Address">
<select name="gender"><option>Female</option><option>Male</option><option>Other</option></select>
<input name="password" type="password" placeholder="Password">
<input name="confirm" type="password" placeholder="Confirm password">
<button type="submit">Create account</button>
</form>`)
}

// SignUp creates a new account from the registration form. Password and
// confirmation must match; a duplicate email sends the visitor to the
// login page instead of back to the form. On success the new user gets
// a session cookie right away and is redirected to login with a success
// notice.
func (h *AuthHandler) SignUp(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	phone := strings.TrimSpace(c.FormValue("phone"))
	address := strings.TrimSpace(c.FormValue("address"))
	gender := strings.TrimSpace(c.FormValue("gender"))
	password := c.FormValue("password")
	confirm := c.FormValue("confirm")

	if email == "" || password == "" {
		flash.Add(c, flash.LevelError, "Email and password are required.")
		return c.Redirect(http.StatusFound, "/sign_up")
	}
	if password != confirm {
		flash.Add(c, flash.LevelError, "Passwords do not match!")
		return c.Redirect(http.StatusFound, "/sign_up")
	}

	hash, err := utils.HashPassword(password, h.Cfg.BcryptCost)
	if err != nil {
		flash.Add(c, flash.LevelError, "Could not create your account. Please try again.")
		return c.Redirect(http.StatusFound, "/sign_up")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, model.User{
		Name: name, Email: email, Phone: phone,
		Address: address, Gender: gender, PasswordHash: hash,
	})
	if err != nil {
		if err == repository.ErrEmailExists {
			flash.Add(c, flash.LevelWarning, "Email already exists. Please log in.")
			return c.Redirect(http.StatusFound, "/login")
		}
		flash.Add(c, flash.LevelError, "Could not create your account. Please try again.")
		return c.Redirect(http.StatusFound, "/sign_up")
	}

	// The new account starts an authenticated session immediately.
	h.beginSession(c, uid, false)
	flash.Add(c, flash.LevelSuccess, "Account created successfully!")
	return c.Redirect(http.StatusFound, "/login")
}

// LoginForm renders the login form.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return renderPage(c, "Log in", `<h1>Log in</h1>
<form method="post" action="/login">
<input name="email" placeholder="Email">
<input name="password" type="password" placeholder="Password">
<label><input name="rememberMe" type="checkbox" value="on"> Remember me</label>
<button type="submit">Log in</button>
</form>`)
}

// Login verifies credentials and starts a session. Unknown emails and
// wrong passwords get the same notice so the form does not leak which
// accounts exist. Ticking "remember me" extends the session from hours
// to days.
func (h *AuthHandler) Login(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")
	remember := c.FormValue("rememberMe") != ""

	if email == "" || password == "" {
		flash.Add(c, flash.LevelError, "Please check your login details and try again.")
		return c.Redirect(http.StatusFound, "/login")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if err != sql.ErrNoRows {
			c.Logger().Warnf("login: query failed: %v", err)
		}
		flash.Add(c, flash.LevelError, "Please check your login details and try again.")
		return c.Redirect(http.StatusFound, "/login")
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		flash.Add(c, flash.LevelError, "Please check your login details and try again.")
		return c.Redirect(http.StatusFound, "/login")
	}

	h.beginSession(c, u.ID, remember)
	return c.Redirect(http.StatusFound, "/services_intro")
}

// Logout revokes the current session token and clears the cookie. It is
// idempotent: revoking an already-revoked token is a no-op, and a
// request without a valid session never reaches this handler (the
// session middleware redirects it to login first).
func (h *AuthHandler) Logout(c echo.Context) error {
	jti, _ := c.Get("session_jti").(string)
	exp, _ := c.Get("session_exp").(time.Time)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if h.Sessions != nil {
		if err := h.Sessions.Revoke(ctx, jti, exp); err != nil {
			c.Logger().Warnf("logout: revoke failed: %v", err)
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusFound, "/")
}

// beginSession issues a session token for the user and sets it as an
// httpOnly cookie. The remember flag selects the long-lived TTL.
func (h *AuthHandler) beginSession(c echo.Context, uid uint64, remember bool) {
	ttl := time.Duration(h.Cfg.SessionTTLHours) * time.Hour
	if remember {
		ttl = time.Duration(h.Cfg.RememberTTLDays) * 24 * time.Hour
	}
	tok, err := utils.NewSessionToken(h.Cfg.SessionSecret, uid, ttl)
	if err != nil {
		c.Logger().Errorf("session: issue token failed: %v", err)
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tok.Token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
