package middlewares

import (
	"net/http"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/gorilla/csrf"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

const msgCSRFInvalid = "توکن امنیتی درخواست نامعتبر است، صفحه را دوباره بارگذاری کنید"

// CSRF protects cookie-authenticated unsafe requests. Requests carrying a
// bearer token are not cookie-bound and skip the check.
func CSRF(key []byte, secure bool, rnd *render.Render, logger zerolog.Logger) func(http.Handler) http.Handler {
	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn().Err(csrf.FailureReason(r)).Str("path", r.URL.Path).Msg("csrf check failed")
			helpers.WriteError(rnd, w, logger, helpers.NewForbidden(msgCSRFInvalid))
		})),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bearerToken(r) != "" {
				r = csrf.UnsafeSkipCheck(r)
			}
			protected.ServeHTTP(w, r)
		})
	}
}
