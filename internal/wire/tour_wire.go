package wire

import (
	"tour-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// TourRoutes expose departure availability publicly; browsing needs no login.
func TourRoutes(r chi.Router, h *adaptor.Handler) {
	r.Get("/tours/{id}/departures", h.Tour.GetDepartures)
}
