package middlewares

import (
	"net/http"
	"strings"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/repositories"
	"github.com/farsishop/storefront/app/utils/sessions"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

// Authenticate puts the session claims into the request context. The token
// comes from the Authorization header or, failing that, the session cookie.
// Requests without a valid token continue anonymously.
func Authenticate(store sessions.SessionStore, tokens *sessions.TokenManager, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				token = store.GetToken(r)
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				logger.Debug().Err(err).Str("path", r.URL.Path).Msg("ignoring invalid session token")
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(helpers.WithClaims(r.Context(), claims)))
		})
	}
}

// AdminAuthMiddleware re-loads the user behind the session and requires the
// ADMIN role on both the token and the stored account.
func AdminAuthMiddleware(userRepo repositories.UserRepositoryImpl, rnd *render.Render, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := helpers.GetClaims(r.Context())
			if claims == nil {
				helpers.WriteError(rnd, w, logger, helpers.NewUnauthorized(helpers.MsgUnauthorized))
				return
			}
			if claims.Role != models.RoleAdmin {
				logger.Warn().Str("user_id", claims.UserID).Str("path", r.URL.Path).Msg("non-admin session on admin route")
				helpers.WriteError(rnd, w, logger, helpers.NewForbidden(helpers.MsgForbidden))
				return
			}

			user, err := userRepo.FindByID(r.Context(), claims.UserID)
			if err != nil {
				helpers.WriteError(rnd, w, logger, err)
				return
			}
			if user == nil {
				helpers.WriteError(rnd, w, logger, helpers.NewUnauthorized(helpers.MsgUnauthorized))
				return
			}
			if !user.IsAdmin() {
				logger.Warn().Str("user_id", user.ID).Str("email", user.Email).Msg("admin role revoked since session was issued")
				helpers.WriteError(rnd, w, logger, helpers.NewForbidden(helpers.MsgForbidden))
				return
			}

			next.ServeHTTP(w, r.WithContext(helpers.WithUser(r.Context(), user)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
