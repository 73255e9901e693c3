package handlers

import (
	"net/http"
	"time"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/services"
	"github.com/farsishop/storefront/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render       *render.Render
	validator    *validator.Validate
	auth         *services.AuthService
	sessionStore sessions.SessionStore
	logger       zerolog.Logger
}

func NewAuthHandler(r *render.Render, v *validator.Validate, auth *services.AuthService, sessionStore sessions.SessionStore, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		render:       r,
		validator:    v,
		auth:         auth,
		sessionStore: sessionStore,
		logger:       logger.With().Str("handler", "auth").Logger(),
	}
}

type SessionResponse struct {
	User    *models.User `json:"user"`
	Role    string       `json:"role,omitempty"`
	Expires *time.Time   `json:"expires,omitempty"`
}

type CSRFResponse struct {
	CSRFToken string `json:"csrfToken"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := helpers.BindJSON(r, h.validator, &in); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}

	session, err := h.auth.LoginAdmin(r.Context(), in)
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	h.startSession(w, r, session)
}

func (h *AuthHandler) PhoneLogin(w http.ResponseWriter, r *http.Request) {
	var in services.PhoneLoginInput
	if err := helpers.BindJSON(r, h.validator, &in); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}

	session, err := h.auth.LoginPhone(r.Context(), in)
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	h.startSession(w, r, session)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, session *services.Session) {
	if err := h.sessionStore.SetToken(w, r, session.Token); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, session)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		h.logger.Warn().Err(err).Msg("failed to clear session cookie")
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, helpers.MessageResponse{Message: msgLoggedOut})
}

// Session answers {"user": null} for anonymous requests and for sessions
// whose account no longer exists.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims := helpers.GetClaims(r.Context())
	if claims == nil {
		helpers.WriteJSON(h.render, w, http.StatusOK, SessionResponse{})
		return
	}

	user, err := h.auth.CurrentUser(r.Context(), claims)
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	if user == nil {
		helpers.WriteJSON(h.render, w, http.StatusOK, SessionResponse{})
		return
	}

	resp := SessionResponse{User: user, Role: claims.Role}
	if claims.ExpiresAt != nil {
		expires := claims.ExpiresAt.Time
		resp.Expires = &expires
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, resp)
}

// CSRF returns the masked token for unsafe requests; empty when protection is off.
func (h *AuthHandler) CSRF(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(h.render, w, http.StatusOK, CSRFResponse{CSRFToken: csrf.Token(r)})
}
