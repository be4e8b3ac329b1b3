package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func BookingRoutes(r chi.Router, h *adaptor.Handler, repo *repository.Repository, log *zap.Logger) {
	r.Route("/bookings", func(br chi.Router) {
		br.Use(middleware.AuthSession(repo.Session, log))

		br.Post("/", h.Booking.CreateBooking)
		br.Get("/", h.Booking.GetMyBookings)
		br.Get("/{id}", h.Booking.GetBooking)
		br.Post("/{id}/cancel", h.Booking.CancelBooking)
	})

	r.Route("/admin/bookings", func(ar chi.Router) {
		ar.Use(middleware.AuthSession(repo.Session, log))
		ar.Use(middleware.Admin(repo.User, log))

		ar.Get("/{id}", h.Booking.GetBooking)
		ar.Post("/{id}/cancel", h.Booking.CancelBooking)
		ar.Patch("/{id}/status", h.Booking.UpdateStatus)
	})
}
