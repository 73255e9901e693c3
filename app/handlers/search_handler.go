package handlers

import (
	"net/http"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/services"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

type SearchHandler struct {
	render *render.Render
	search *services.SearchService
	logger zerolog.Logger
}

func NewSearchHandler(r *render.Render, search *services.SearchService, logger zerolog.Logger) *SearchHandler {
	return &SearchHandler{
		render: r,
		search: search,
		logger: logger.With().Str("handler", "search").Logger(),
	}
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	result, err := h.search.Search(r.Context(), r.URL.Query().Get("q"), helpers.QueryInt(r, "limit", 0))
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, result)
}
