package admin

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/services"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

const (
	msgUploadBody  = "فرم بارگذاری معتبر نیست"
	msgUploadField = "فایلی برای بارگذاری انتخاب نشده است"
	msgUploadLarge = "حجم فایل نباید بیشتر از ۵ مگابایت باشد"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// multipart framing allowance on top of the file ceiling
	uploadFormOverhead = 1 << 20
)

type AdminHandler struct {
	render  *render.Render
	stats   *services.StatsService
	orders  *services.OrderService
	uploads *services.UploadService
	logger  zerolog.Logger
	now     func() time.Time
}

func NewAdminHandler(
	render *render.Render,
	stats *services.StatsService,
	orders *services.OrderService,
	uploads *services.UploadService,
	logger zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{
		render:  render,
		stats:   stats,
		orders:  orders,
		uploads: uploads,
		logger:  logger.With().Str("handler", "admin").Logger(),
		now:     time.Now,
	}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Dashboard(r.Context())
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, stats)
}

// ExportOrders streams the orders workbook. It is built in memory first so a
// failure can still be answered as JSON.
func (h *AdminHandler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.orders.Export(r.Context(), &buf, r.URL.Query().Get("status")); err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", h.now().Format("20060102-150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn().Err(err).Msg("orders export interrupted")
	}
}

// Upload accepts a multipart form with "file" and "type" and stores the image.
func (h *AdminHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxUploadSize+uploadFormOverhead)

	if err := r.ParseMultipartForm(services.MaxUploadSize + uploadFormOverhead); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			helpers.WriteError(h.render, w, h.logger, helpers.NewBadRequest(msgUploadLarge))
			return
		}
		helpers.WriteError(h.render, w, h.logger, &helpers.AppError{Status: http.StatusBadRequest, Message: msgUploadBody, Err: err})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, helpers.NewBadRequest(msgUploadField))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxUploadSize+1))
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}

	result, err := h.uploads.Upload(r.Context(), services.UploadInput{
		Kind:        r.FormValue("type"),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		helpers.WriteError(h.render, w, h.logger, err)
		return
	}
	helpers.WriteJSON(h.render, w, http.StatusOK, result)
}
