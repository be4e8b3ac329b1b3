package entity

import (
	"time"

	"github.com/google/uuid"
)

type TourDateStatus string

const (
	TourDateStatusAvailable TourDateStatus = "available"
	TourDateStatusFull      TourDateStatus = "full"
)

// TourDate is a dated departure of a tour with its own capacity counters.
// Invariant: 0 <= BookedSlots <= AvailableSlots; status is full iff
// BookedSlots == AvailableSlots. Both counters are mutated only through
// the conditional reserve/release statements in the repository.
type TourDate struct {
	Base
	TourID         uuid.UUID      `db:"tour_id"`
	StartDate      time.Time      `db:"start_date"`
	EndDate        time.Time      `db:"end_date"`
	AvailableSlots int            `db:"available_slots"`
	BookedSlots    int            `db:"booked_slots"`
	Status         TourDateStatus `db:"status"`
}

func (d *TourDate) RemainingSlots() int {
	return d.AvailableSlots - d.BookedSlots
}
