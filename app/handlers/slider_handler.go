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

type SliderHandler struct {
	render    *render.Render
	validator *validator.Validate
	sliders   *services.SliderService
	logger    zerolog.Logger
}

func NewSliderHandler(r *render.Render, v *validator.Validate, sliders *services.SliderService, logger zerolog.Logger) *SliderHandler {
	return &SliderHandler{
		render:    r,
		validator: v,
		sliders:   sliders,
		logger:    logger.With().Str("handler", "slider").Logger(),
	}
}

func (h *SliderHandler) List(w http.ResponseWriter, r *http.Request) {
	sliders, err := h.sliders.List(r.Context(), helpers.QueryBool(r, "active"))
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, sliders)
}

func (h *SliderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.SliderInput
	if err := helpers.BindJSON(r, h.validator, &in); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}

	slider, err := h.sliders.Create(r.Context(), in)
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusCreated, slider)
}

func (h *SliderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.SliderInput
	if err := helpers.BindJSON(r, h.validator, &in); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}

	slider, err := h.sliders.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, slider)
}

func (h *SliderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sliders.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, helpers.MessageResponse{Message: msgSliderDeleted})
}
