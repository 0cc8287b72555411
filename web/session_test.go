package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pevans/detikscraper/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper: a gin context for a request carrying the given cookies
func newContext(cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		c.Request.AddCookie(cookie)
	}
	return c, w
}

// TestSessionStore_NewSession verifies defaults and the cookie
func TestSessionStore_NewSession(t *testing.T) {
	store := NewSessionStore(time.Minute, 3, export.XLSX)

	c, w := newContext()
	session := store.Get(c)

	assert.Equal(t, 3, session.Pages)
	assert.Equal(t, export.XLSX, session.Format)
	assert.Nil(t, session.Outcome)
	assert.Equal(t, 1, store.Len())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.ID.String(), cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

// TestSessionStore_SaveAndReload verifies state survives between requests
func TestSessionStore_SaveAndReload(t *testing.T) {
	store := NewSessionStore(time.Minute, 1, export.CSV)

	c, w := newContext()
	session := store.Get(c)
	session.Keyword = "banjir"
	session.Pages = 5
	store.Save(session)

	c, _ = newContext(w.Result().Cookies()...)
	reloaded := store.Get(c)

	assert.Equal(t, session.ID, reloaded.ID)
	assert.Equal(t, "banjir", reloaded.Keyword)
	assert.Equal(t, 5, reloaded.Pages)
	assert.Equal(t, 1, store.Len())
}

// TestSessionStore_RefreshesCookie verifies a live session gets its cookie
// lifetime renewed on each request
func TestSessionStore_RefreshesCookie(t *testing.T) {
	store := NewSessionStore(30*time.Minute, 1, export.CSV)
	now := time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	c, w := newContext()
	first := store.Get(c)

	now = now.Add(20 * time.Minute)

	c, w = newContext(w.Result().Cookies()...)
	second := store.Get(c)
	require.Equal(t, first.ID, second.ID)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, first.ID.String(), cookies[0].Value)
	assert.Equal(t, int((30 * time.Minute).Seconds()), cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
}

// TestSessionStore_Expiry verifies idle sessions are replaced and dropped
func TestSessionStore_Expiry(t *testing.T) {
	store := NewSessionStore(time.Minute, 1, export.CSV)
	now := time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	c, w := newContext()
	first := store.Get(c)
	first.Keyword = "banjir"
	store.Save(first)

	now = now.Add(2 * time.Minute)

	c, _ = newContext(w.Result().Cookies()...)
	second := store.Get(c)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Empty(t, second.Keyword)
	assert.Equal(t, 1, store.Len(), "expired session should be removed")
}

// TestSessionStore_UnknownCookie verifies a garbage cookie starts a new session
func TestSessionStore_UnknownCookie(t *testing.T) {
	store := NewSessionStore(time.Minute, 1, export.CSV)

	c, _ := newContext(&http.Cookie{Name: SessionCookie, Value: "not-a-uuid"})
	session := store.Get(c)

	assert.NotEmpty(t, session.ID.String())
	assert.Equal(t, 1, store.Len())
}
