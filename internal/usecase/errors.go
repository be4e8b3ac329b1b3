package usecase

import (
	"errors"
)

// Service-level error taxonomy. Handlers map these onto HTTP statuses with
// errors.Is; messages sent to clients never include raw processor errors.
var (
	ErrTourNotFound      = errors.New("tour not found")
	ErrDepartureNotFound = errors.New("departure not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrPaymentNotFound   = errors.New("payment not found")

	ErrAlreadyBooked        = errors.New("tour already booked")
	ErrAlreadyCancelled     = errors.New("booking already cancelled")
	ErrBookingAlreadyPaid   = errors.New("booking already paid")
	ErrInsufficientCapacity = errors.New("not enough available slots")
	ErrInvalidPaymentState  = errors.New("payment is not in a state that allows this operation")

	ErrNotAuthorized       = errors.New("not authorized for this booking")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidAmount       = errors.New("charge amount does not match the booking")
	ErrPaymentNotCompleted = errors.New("payment has not completed")
	ErrExternalService     = errors.New("payment processor unavailable")
)
