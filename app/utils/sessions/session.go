package sessions

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "storefront-session"

	tokenSessionKey = "token"

	SessionTTL = 30 * 24 * time.Hour
)

type SessionStore interface {
	GetToken(r *http.Request) string
	SetToken(w http.ResponseWriter, r *http.Request, token string) error
	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store *sessions.CookieStore
}

func NewCookieSessionStore(secure bool, keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

// getSession always returns a usable session; a cookie that fails to decode
// (rotated keys, tampering) yields a fresh one.
func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil || session == nil {
		return sessions.NewSession(c.store, sessionCookieName)
	}
	return session
}

func (c *CookieSessionStore) GetToken(r *http.Request) string {
	session := c.getSession(r)
	token, ok := session.Values[tokenSessionKey].(string)
	if !ok {
		return ""
	}
	return token
}

func (c *CookieSessionStore) SetToken(w http.ResponseWriter, r *http.Request, token string) error {
	session := c.getSession(r)
	session.Options = c.store.Options
	session.Values[tokenSessionKey] = token
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	session.Values = make(map[interface{}]interface{})
	opts := *c.store.Options
	opts.MaxAge = -1
	session.Options = &opts
	return session.Save(r, w)
}
