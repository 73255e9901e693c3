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

type OrderHandler struct {
	render    *render.Render
	validator *validator.Validate
	orders    *services.OrderService
	logger    zerolog.Logger
}

func NewOrderHandler(r *render.Render, v *validator.Validate, orders *services.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		render:    r,
		validator: v,
		orders:    orders,
		logger:    logger.With().Str("handler", "order").Logger(),
	}
}

// Create is public: guests order with a name and phone number.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.OrderInput
	if err := helpers.BindJSON(r, h.validator, &in); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}

	receipt, err := h.orders.Create(r.Context(), helpers.GetClaims(r.Context()), in)
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusCreated, receipt)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, err := h.orders.List(r.Context(), helpers.GetClaims(r.Context()), services.OrderQuery{
		UserID: query.Get("userId"),
		Status: query.Get("status"),
		Page:   helpers.QueryInt(r, "page", 1),
		Limit:  helpers.QueryInt(r, "limit", 0),
	})
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, page)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), helpers.GetClaims(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, order)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.OrderUpdateInput
	if err := helpers.BindJSON(r, h.validator, &in); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}

	order, err := h.orders.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, order)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, helpers.MessageResponse{Message: msgOrderDeleted})
}
