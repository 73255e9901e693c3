package sessions

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	token, err := m.Issue("user-1", "ADMIN", "09121234567")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "09121234567", claims.Phone)
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	issuer, _ := NewTokenManager("one", time.Hour)
	verifier, _ := NewTokenManager("two", time.Hour)

	token, err := issuer.Issue("user-1", "USER", "")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m, _ := NewTokenManager("secret", -time.Minute)
	token, err := m.Issue("user-1", "USER", "")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.Error(t, err)
}

func TestCookieSessionStore_RoundTrip(t *testing.T) {
	store := NewCookieSessionStore(false, []byte("0123456789abcdef0123456789abcdef"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, store.SetToken(w, r, "tok"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	assert.Equal(t, "tok", store.GetToken(next))

	w = httptest.NewRecorder()
	require.NoError(t, store.ClearSession(w, next))
	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestCookieSessionStore_GarbageCookie(t *testing.T) {
	store := NewCookieSessionStore(false, []byte("0123456789abcdef0123456789abcdef"))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "garbage"})
	assert.Equal(t, "", store.GetToken(r))
}
