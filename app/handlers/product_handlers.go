package handlers

import (
	"net/http"
	"strings"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	render     *render.Render
	validator  *validator.Validate
	products   *services.ProductService
	categories *services.CategoryService
	logger     zerolog.Logger
}

func NewProductHandler(r *render.Render, v *validator.Validate, products *services.ProductService, categories *services.CategoryService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		render:     r,
		validator:  v,
		products:   products,
		categories: categories,
		logger:     logger.With().Str("handler", "product").Logger(),
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, err := h.products.List(r.Context(), services.ProductQuery{
		CategoryID: query.Get("categoryId"),
		Search:     query.Get("search"),
		Page:       helpers.QueryInt(r, "page", 1),
		Limit:      helpers.QueryInt(r, "limit", 0),
	})
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, page)
}

func (h *ProductHandler) BestSelling(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.BestSelling(r.Context(), helpers.QueryInt(r, "limit", 0))
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, products)
}

func (h *ProductHandler) Newest(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.Newest(r.Context(), helpers.QueryInt(r, "limit", 0))
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, products)
}

// RelatedCategories lists products of a category, its parent and its active children.
func (h *ProductHandler) RelatedCategories(w http.ResponseWriter, r *http.Request) {
	categoryID := strings.TrimSpace(r.URL.Query().Get("categoryId"))
	if categoryID == "" {
		helpers.WriteError(h.render, w, h.logger, helpers.NewBadRequest(msgCategoryRequired))
		return
	}

	products, err := h.categories.RelatedProducts(r.Context(), categoryID, helpers.QueryInt(r, "limit", 0), r.URL.Query().Get("excludeId"))
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, products)
}

func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	detail, err := h.products.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, detail)
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if err := helpers.BindJSON(r, h.validator, &in); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}

	product, err := h.products.Create(r.Context(), in)
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if err := helpers.BindJSON(r, h.validator, &in); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}

	product, err := h.products.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, helpers.MessageResponse{Message: msgProductDeleted})
}
