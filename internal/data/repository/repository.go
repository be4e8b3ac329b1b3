package repository

import (
	"errors"

	"tour-booking/pkg/database"

	"go.uber.org/zap"
)

// Sentinel errors surfaced from conditional statements so services can map
// them onto the user-facing taxonomy.
var (
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	ErrDuplicateBooking     = errors.New("duplicate active booking")
)

type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Tour     TourRepository
	TourDate TourDateRepository
	Booking  BookingRepository
	Payment  PaymentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Tour:     NewTourRepository(db, log),
		TourDate: NewTourDateRepository(db, log),
		Booking:  NewBookingRepository(db, log),
		Payment:  NewPaymentRepository(db, log),
	}
}
