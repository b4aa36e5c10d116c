// Package flash implements one-shot notices carried between a redirect
// and the next rendered page via a short-lived cookie. A handler adds a
// notice before redirecting; the page handler pops all pending notices,
// which also clears the cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

const cookieName = "af_flash"

// Notice levels mirror the categories the pages know how to style.
const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelWarning = "warning"
	LevelDanger  = "danger"
)

// Notice is a single user-visible message with a severity level.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Add appends a notice to the pending set on the response. Multiple
// notices added during one request are all delivered on the next page.
func Add(c echo.Context, level, message string) {
	notices := pending(c)
	notices = append(notices, Notice{Level: level, Message: message})
	raw, err := json.Marshal(notices)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
	})
}

// Pop returns all pending notices and expires the cookie so they are
// shown exactly once. A request without notices yields an empty slice.
func Pop(c echo.Context) []Notice {
	notices := pending(c)
	if len(notices) > 0 {
		c.SetCookie(&http.Cookie{
			Name:     cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}
	return notices
}

// pending decodes notices from the request cookie, then from any cookie
// already staged on the response during this request (Add before Pop in
// the same handler chain).
func pending(c echo.Context) []Notice {
	var raw string
	if ck, err := c.Cookie(cookieName); err == nil {
		raw = ck.Value
	}
	for _, ck := range c.Response().Header()["Set-Cookie"] {
		if parsed := parseSetCookie(ck); parsed != nil && parsed.Name == cookieName {
			raw = parsed.Value
		}
	}
	if raw == "" {
		return nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var notices []Notice
	if err := json.Unmarshal(decoded, &notices); err != nil {
		return nil
	}
	return notices
}

func parseSetCookie(header string) *http.Cookie {
	resp := http.Response{Header: http.Header{"Set-Cookie": {header}}}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return nil
	}
	return cookies[0]
}
