package adaptor

import (
	"errors"
	"net/http"

	"tour-booking/internal/usecase"
	"tour-booking/pkg/payments"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking *BookingHandler
	Payment *PaymentHandler
	Tour    *TourHandler
	Webhook *WebhookHandler
}

func NewHandler(service *usecase.Service, processor payments.Processor, log *zap.Logger) *Handler {
	return &Handler{
		Booking: NewBookingHandler(service.Booking, log),
		Payment: NewPaymentHandler(service.Payment, log),
		Tour:    NewTourHandler(service.Booking, log),
		Webhook: NewWebhookHandler(service.Payment, processor, log),
	}
}

// handleServiceError maps the service error taxonomy onto HTTP statuses.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		utils.ResponseBadRequest(w, err.Error(), nil)
	case errors.Is(err, usecase.ErrTourNotFound),
		errors.Is(err, usecase.ErrDepartureNotFound),
		errors.Is(err, usecase.ErrBookingNotFound),
		errors.Is(err, usecase.ErrPaymentNotFound):
		utils.ResponseNotFound(w, err.Error())
	case errors.Is(err, usecase.ErrNotAuthorized):
		utils.ResponseForbidden(w, err.Error())
	case errors.Is(err, usecase.ErrAlreadyBooked),
		errors.Is(err, usecase.ErrAlreadyCancelled),
		errors.Is(err, usecase.ErrBookingAlreadyPaid),
		errors.Is(err, usecase.ErrInsufficientCapacity),
		errors.Is(err, usecase.ErrInvalidPaymentState):
		utils.ResponseConflict(w, err.Error())
	case errors.Is(err, usecase.ErrInvalidAmount),
		errors.Is(err, usecase.ErrPaymentNotCompleted):
		utils.ResponseUnprocessable(w, err.Error())
	case errors.Is(err, usecase.ErrExternalService):
		utils.ResponseBadGateway(w, "payment processor unavailable, please try again")
	default:
		utils.ResponseInternalError(w, "something went wrong")
	}
}
