package adaptor

import (
	"encoding/json"
	"net/http"

	"tour-booking/internal/dto/request"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID.String(), &req)
	if err != nil {
		h.log.Warn("Create booking failed", zap.Error(err), zap.String("user_id", userID.String()))
		handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Booking created", booking)
}

// GetMyBookings handles GET /api/v1/bookings
func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	page := request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}

	bookings, err := h.service.GetUserBookings(r.Context(), userID.String(), page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved", bookings)
}

// GetBooking handles GET /api/v1/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	bookingID := chi.URLParam(r, "id")
	booking, err := h.service.GetBooking(r.Context(), userID.String(), bookingID, utils.IsAdminContext(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Booking retrieved", booking)
}

// CancelBooking handles POST /api/v1/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.CancelBookingRequest
	if r.Body != nil {
		// An empty body is a cancellation without a reason.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if verrs := utils.ValidateStruct(&req); verrs != nil {
		utils.ResponseBadRequest(w, "Validation failed", verrs)
		return
	}

	bookingID := chi.URLParam(r, "id")
	err := h.service.CancelBooking(r.Context(), userID.String(), bookingID, req.Reason, utils.IsAdminContext(r.Context()))
	if err != nil {
		h.log.Warn("Cancel booking failed", zap.Error(err), zap.String("booking_id", bookingID))
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", nil)
}

// UpdateStatus handles PATCH /api/v1/admin/bookings/{id}/status
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.AdminBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if verrs := utils.ValidateStruct(&req); verrs != nil {
		utils.ResponseBadRequest(w, "Validation failed", verrs)
		return
	}

	bookingID := chi.URLParam(r, "id")
	if err := h.service.UpdateStatus(r.Context(), bookingID, req.Status); err != nil {
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Booking status updated", nil)
}
