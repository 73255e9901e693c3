package handlers

import (
	"net/http"

	"github.com/farsishop/storefront/app/configs"
	"github.com/farsishop/storefront/app/helpers"
	"github.com/unrolled/render"
)

type HomeHandler struct {
	render *render.Render
	env    configs.ENV
}

func NewHomeHandler(r *render.Render, env configs.ENV) *HomeHandler {
	return &HomeHandler{
		render: r,
		env:    env,
	}
}

type SiteConfig struct {
	BaseURL                string `json:"baseUrl"`
	GoogleSiteVerification string `json:"googleSiteVerification"`
}

func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(h.render, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Site hands the frontend what it needs for the document head.
func (h *HomeHandler) Site(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(h.render, w, http.StatusOK, SiteConfig{
		BaseURL:                h.env.AppURL,
		GoogleSiteVerification: h.env.GoogleSiteVerification,
	})
}

func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(h.render, w, http.StatusNotFound, helpers.ErrorResponse{Error: msgRouteNotFound})
}

func (h *HomeHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(h.render, w, http.StatusMethodNotAllowed, helpers.ErrorResponse{Error: msgMethodNotAllowed})
}
