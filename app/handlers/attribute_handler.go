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

type AttributeHandler struct {
	render     *render.Render
	validator  *validator.Validate
	attributes *services.AttributeService
	logger     zerolog.Logger
}

func NewAttributeHandler(r *render.Render, v *validator.Validate, attributes *services.AttributeService, logger zerolog.Logger) *AttributeHandler {
	return &AttributeHandler{
		render:     r,
		validator:  v,
		attributes: attributes,
		logger:     logger.With().Str("handler", "attribute").Logger(),
	}
}

func (h *AttributeHandler) List(w http.ResponseWriter, r *http.Request) {
	attributes, err := h.attributes.List(r.Context(), r.URL.Query().Get("categoryId"))
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, attributes)
}

func (h *AttributeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.AttributeInput
	if err := helpers.BindJSON(r, h.validator, &in); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}

	attribute, err := h.attributes.Create(r.Context(), in)
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusCreated, attribute)
}

func (h *AttributeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.AttributeInput
	if err := helpers.BindJSON(r, h.validator, &in); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}

	attribute, err := h.attributes.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, attribute)
}

func (h *AttributeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.attributes.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, helpers.MessageResponse{Message: msgAttributeDeleted})
}
