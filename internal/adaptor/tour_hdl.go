package adaptor

import (
	"net/http"

	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TourHandler serves the public availability surface of the catalog.
type TourHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewTourHandler(service usecase.BookingService, log *zap.Logger) *TourHandler {
	return &TourHandler{
		service: service,
		log:     log.With(zap.String("handler", "tour")),
	}
}

// GetDepartures handles GET /api/v1/tours/{id}/departures
func (h *TourHandler) GetDepartures(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "id")

	departures, err := h.service.GetDepartures(r.Context(), tourID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Departures retrieved", departures)
}
