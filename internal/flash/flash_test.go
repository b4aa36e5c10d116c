package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func flashCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "af_flash" && ck.Value != "" {
			return ck
		}
	}
	return nil
}

func TestAddThenPopAcrossRequests(t *testing.T) {
	c1, rec1 := newContext()
	Add(c1, LevelSuccess, "Car added successfully!")
	ck := flashCookie(rec1)
	require.NotNil(t, ck, "Add must stage a cookie on the response")

	// The next request carries the cookie; Pop drains it.
	c2, rec2 := newContext(ck)
	notices := Pop(c2)
	require.Len(t, notices, 1)
	assert.Equal(t, LevelSuccess, notices[0].Level)
	assert.Equal(t, "Car added successfully!", notices[0].Message)

	var expired bool
	for _, out := range rec2.Result().Cookies() {
		if out.Name == "af_flash" && out.MaxAge < 0 {
			expired = true
		}
	}
	assert.True(t, expired, "Pop must expire the cookie")
}

func TestAddThenPopSameRequest(t *testing.T) {
	// A handler that fails validation adds a notice and re-renders the
	// page within the same request; Pop must see the staged notice.
	c, _ := newContext()
	Add(c, LevelError, "All fields are required")
	notices := Pop(c)
	require.Len(t, notices, 1)
	assert.Equal(t, "All fields are required", notices[0].Message)
}

func TestMultipleNoticesAccumulate(t *testing.T) {
	c, rec := newContext()
	Add(c, LevelWarning, "first")
	Add(c, LevelDanger, "second")
	require.NotNil(t, flashCookie(rec))

	notices := Pop(c)
	require.Len(t, notices, 2)
	assert.Equal(t, "first", notices[0].Message)
	assert.Equal(t, "second", notices[1].Message)
}

func TestPopWithoutNotices(t *testing.T) {
	c, rec := newContext()
	assert.Empty(t, Pop(c))
	assert.Nil(t, flashCookie(rec))
}

func TestPopIgnoresCorruptCookie(t *testing.T) {
	c, _ := newContext(&http.Cookie{Name: "af_flash", Value: "%%%not-base64%%%"})
	assert.Empty(t, Pop(c))
}
