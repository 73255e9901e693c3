package handlers

import (
	"net/http"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/repositories"
	"github.com/farsishop/storefront/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

type CategoryHandler struct {
	render     *render.Render
	validator  *validator.Validate
	categories *services.CategoryService
	logger     zerolog.Logger
}

func NewCategoryHandler(r *render.Render, v *validator.Validate, categories *services.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		render:     r,
		validator:  v,
		categories: categories,
		logger:     logger.With().Str("handler", "category").Logger(),
	}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context(), repositories.CategoryFilter{
		HomeOnly:   helpers.QueryBool(r, "home"),
		ActiveOnly: helpers.QueryBool(r, "active"),
	})
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, categories)
}

func (h *CategoryHandler) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.categories.Tree(r.Context())
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, tree)
}

func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, category)
}

// GetBySlug answers with the category, its breadcrumb and its active children.
func (h *CategoryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	detail, err := h.categories.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, detail)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CategoryInput
	if err := helpers.BindJSON(r, h.validator, &in); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}

	category, err := h.categories.Create(r.Context(), in)
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.CategoryInput
	if err := helpers.BindJSON(r, h.validator, &in); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}

	category, err := h.categories.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, helpers.MessageResponse{Message: msgCategoryDeleted})
}
