package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// CanTransitionTo enforces the booking state machine.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCancelled || next == BookingStatusCompleted
	default:
		return false
	}
}

type Booking struct {
	Base
	BookingNumber      string        `db:"booking_number"`
	UserID             uuid.UUID     `db:"user_id"`
	TourID             uuid.UUID     `db:"tour_id"`
	TourDateID         uuid.UUID     `db:"tour_date_id"`
	Adults             int           `db:"adults"`
	Children           int           `db:"children"`
	Infants            int           `db:"infants"`
	FlightIncluded     bool          `db:"flight_included"`
	TotalPrice         float64       `db:"total_price"`
	AddOnsTotal        float64       `db:"add_ons_total"`
	IsDepositPayment   bool          `db:"is_deposit_payment"`
	DepositAmount      *float64      `db:"deposit_amount"`
	RemainingBalance   *float64      `db:"remaining_balance"`
	Status             BookingStatus `db:"status"`
	SpecialRequests    string        `db:"special_requests"`
	CancellationReason *string       `db:"cancellation_reason"`
	CancelledAt        *time.Time    `db:"cancelled_at"`
}

// NumberOfTravelers is the seat count reserved on the departure.
func (b *Booking) NumberOfTravelers() int {
	return b.Adults + b.Children + b.Infants
}
