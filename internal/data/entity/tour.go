package entity

import (
	"github.com/google/uuid"
)

// Tour is catalog data owned by the catalog service. Read-only here;
// only price and identity matter to the booking engine.
type Tour struct {
	Base
	Name     string  `db:"name"`
	Price    float64 `db:"price"` // per traveler
	IsActive bool    `db:"is_active"`
}

// TourAddOn is an optional extra sold with a tour. Bookings snapshot
// the price at creation time instead of referencing these rows.
type TourAddOn struct {
	Base
	TourID   uuid.UUID `db:"tour_id"`
	Name     string    `db:"name"`
	Price    float64   `db:"price"`
	IsActive bool      `db:"is_active"`
}
