package handlers

import (
	"net/http"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

type ArticleHandler struct {
	render    *render.Render
	validator *validator.Validate
	articles  *services.ArticleService
	logger    zerolog.Logger
}

func NewArticleHandler(r *render.Render, v *validator.Validate, articles *services.ArticleService, logger zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		render:    r,
		validator: v,
		articles:  articles,
		logger:    logger.With().Str("handler", "article").Logger(),
	}
}

func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.List(r.Context(), helpers.QueryBool(r, "active"))
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, articles)
}

func (h *ArticleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	article, err := h.articles.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, article)
}

func (h *ArticleHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	article, err := h.articles.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, article)
}

func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ArticleInput
	if err := helpers.BindJSON(r, h.validator, &in); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}

	article, err := h.articles.Create(r.Context(), in)
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusCreated, article)
}

func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.ArticleInput
	if err := helpers.BindJSON(r, h.validator, &in); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}

	article, err := h.articles.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, article)
}

func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.articles.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, helpers.MessageResponse{Message: msgArticleDeleted})
}
