package middlewares

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/repositories/mocks"
	"github.com/farsishop/storefront/app/utils/renderer"
	"github.com/farsishop/storefront/app/utils/sessions"
	"github.com/gorilla/csrf"
	"github.com/gorilla/securecookie"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestRecover_AnswersJSON500(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	handler := Recover(renderer.New(false), zerolog.Nop())(panicking)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"`+helpers.MsgInternal+`"}`, rec.Body.String())
}

func TestRequestLogging_PropagatesRequestID(t *testing.T) {
	var seen string
	handler := RequestLogging(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = helpers.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 2, renderer.New(false), zerolog.Nop())
	handler := rl.Middleware()(okHandler)

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2"))
}

func TestRateLimiter_ForgetsIdleClients(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 1, renderer.New(false), zerolog.Nop())
	now := time.Now()
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("a"))
	assert.False(t, rl.allow("a"))

	now = now.Add(2 * clientIdleTTL)
	assert.True(t, rl.allow("b"))
	rl.mu.Lock()
	_, kept := rl.clients["a"]
	rl.mu.Unlock()
	assert.False(t, kept)
}

func TestRateLimiter_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	rl := NewRateLimiter(rate.Every(12*time.Second), 5, renderer.New(false), zerolog.Nop())
	handler := rl.Middleware()(okHandler)

	allowed := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/phone-login", nil)
		req.RemoteAddr = "203.0.113.9:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.1.0.%d", i))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusNoContent {
			allowed++
		}
	}

	assert.Equal(t, 5, allowed)
}

func TestRateLimiter_ClientIP(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 1, renderer.New(false), zerolog.Nop())
	require.NoError(t, rl.TrustProxies("10.0.0.0/8", "192.0.2.7"))

	tests := []struct {
		name      string
		remote    string
		forwarded string
		realIP    string
		want      string
	}{
		{name: "untrusted peer", remote: "198.51.100.4:1234", forwarded: "203.0.113.9", want: "198.51.100.4"},
		{name: "trusted peer without headers", remote: "192.0.2.7:1234", want: "192.0.2.7"},
		{name: "trusted peer", remote: "192.0.2.7:1234", forwarded: "203.0.113.9", want: "203.0.113.9"},
		{name: "spoofed left hop", remote: "10.0.0.5:1234", forwarded: "1.2.3.4, 203.0.113.9, 10.0.0.6", want: "203.0.113.9"},
		{name: "real ip header", remote: "10.0.0.5:1234", realIP: "203.0.113.10", want: "203.0.113.10"},
		{name: "all hops trusted", remote: "10.0.0.5:1234", forwarded: "10.0.0.9", want: "10.0.0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			assert.Equal(t, tt.want, rl.clientIP(req))
		})
	}
}

func TestRateLimiter_TrustProxiesRejectsGarbage(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 1, renderer.New(false), zerolog.Nop())
	assert.Error(t, rl.TrustProxies("not-an-ip"))
	assert.Error(t, rl.TrustProxies("10.0.0.0/99"))
}

func TestMethodOverrideMiddleware(t *testing.T) {
	var method string
	handler := MethodOverrideMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-HTTP-Method-Override", "delete")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, http.MethodDelete, method)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-HTTP-Method-Override", "CONNECT")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, http.MethodPost, method)
}

type fakeStore struct {
	token string
}

func (f *fakeStore) GetToken(r *http.Request) string { return f.token }
func (f *fakeStore) SetToken(w http.ResponseWriter, r *http.Request, token string) error {
	f.token = token
	return nil
}
func (f *fakeStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	f.token = ""
	return nil
}

func TestAuthenticate(t *testing.T) {
	tokens, err := sessions.NewTokenManager("mw-secret", time.Hour)
	require.NoError(t, err)
	token, err := tokens.Issue("u1", models.RoleUser, "09121234567")
	require.NoError(t, err)

	var claims *sessions.Claims
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims = helpers.GetClaims(r.Context())
	})

	t.Run("cookie token", func(t *testing.T) {
		claims = nil
		Authenticate(&fakeStore{token: token}, tokens, zerolog.Nop())(capture).
			ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.NotNil(t, claims)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "09121234567", claims.Phone)
	})

	t.Run("bearer wins over cookie", func(t *testing.T) {
		claims = nil
		other, err := tokens.Issue("u2", models.RoleUser, "")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+other)
		Authenticate(&fakeStore{token: token}, tokens, zerolog.Nop())(capture).ServeHTTP(httptest.NewRecorder(), req)
		require.NotNil(t, claims)
		assert.Equal(t, "u2", claims.UserID)
	})

	t.Run("garbage token stays anonymous", func(t *testing.T) {
		claims = &sessions.Claims{}
		Authenticate(&fakeStore{token: "not-a-jwt"}, tokens, zerolog.Nop())(capture).
			ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Nil(t, claims)
	})
}

func TestAdminAuthMiddleware(t *testing.T) {
	rnd := renderer.New(false)

	serve := func(users *mocks.UserRepository, claims *sessions.Claims) (*httptest.ResponseRecorder, *models.User) {
		var seen *models.User
		handler := AdminAuthMiddleware(users, rnd, zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = helpers.GetUser(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		if claims != nil {
			req = req.WithContext(helpers.WithClaims(req.Context(), claims))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec, seen
	}

	rec, _ := serve(new(mocks.UserRepository), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serve(new(mocks.UserRepository), &sessions.Claims{UserID: "u1", Role: models.RoleUser})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	gone := new(mocks.UserRepository)
	gone.On("FindByID", mock.Anything, "a1").Return(nil, nil)
	rec, _ = serve(gone, &sessions.Claims{UserID: "a1", Role: models.RoleAdmin})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	users := new(mocks.UserRepository)
	users.On("FindByID", mock.Anything, "a1").Return(&models.User{ID: "a1", Role: models.RoleAdmin}, nil)
	rec, seen := serve(users, &sessions.Claims{UserID: "a1", Role: models.RoleAdmin})
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "a1", seen.ID)
}

func TestCSRF(t *testing.T) {
	handler := CSRF(securecookie.GenerateRandomKey(32), false, renderer.New(false), zerolog.Nop())(okHandler)

	t.Run("cookie request without token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader("{}")))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("bearer request skips the check", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader("{}"))
		req.Header.Set("Authorization", "Bearer abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("token round trip", func(t *testing.T) {
		var token string
		issuer := CSRF(securecookie.GenerateRandomKey(32), false, renderer.New(false), zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token = csrf.Token(r)
		}))
		getRec := httptest.NewRecorder()
		issuer.ServeHTTP(getRec, httptest.NewRequest(http.MethodGet, "/api/auth/csrf", nil))
		require.NotEmpty(t, token)

		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader("{}"))
		req.Header.Set("X-CSRF-Token", token)
		for _, c := range getRec.Result().Cookies() {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		issuer.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
