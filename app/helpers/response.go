package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(rnd *render.Render, w http.ResponseWriter, status int, v interface{}) {
	_ = rnd.JSON(w, status, v)
}

// WriteError answers an AppError with its own status. Anything else is
// logged and hidden behind a generic 500.
func WriteError(rnd *render.Render, w http.ResponseWriter, logger zerolog.Logger, err error) {
	if appErr, ok := AsAppError(err); ok {
		if appErr.Err != nil {
			logger.Debug().Err(appErr.Err).Int("status", appErr.Status).Msg(appErr.Message)
		}
		WriteJSON(rnd, w, appErr.Status, ErrorResponse{Error: appErr.Message, Fields: appErr.Fields})
		return
	}

	logger.Error().Err(err).Msg("unhandled error")
	WriteJSON(rnd, w, http.StatusInternalServerError, ErrorResponse{Error: MsgInternal})
}

// DecodeJSON reads a JSON body into dst, rejecting unknown trailing data.
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return NewBadRequest(MsgInvalidBody)
		}
		return &AppError{Status: http.StatusBadRequest, Message: MsgInvalidBody, Err: err}
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return &AppError{Status: http.StatusBadRequest, Message: MsgInvalidBody, Err: errors.New("trailing data after JSON body")}
	}
	return nil
}

// BindJSON decodes the body into dto and validates it.
func BindJSON(r *http.Request, v *validator.Validate, dto interface{}) error {
	if err := DecodeJSON(r, dto); err != nil {
		return err
	}
	return ValidateStruct(v, dto)
}
