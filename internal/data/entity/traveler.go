package entity

import (
	"github.com/google/uuid"
)

type TravelerType string

const (
	TravelerTypeAdult  TravelerType = "adult"
	TravelerTypeChild  TravelerType = "child"
	TravelerTypeInfant TravelerType = "infant"
)

type Traveler struct {
	BaseSimple
	BookingID      uuid.UUID    `db:"booking_id"`
	FullName       string       `db:"full_name"`
	Type           TravelerType `db:"type"`
	PassportNumber *string      `db:"passport_number"`
}

// BookingAddOn is a quantity+price snapshot of a catalog add-on taken at
// booking time, so later catalog edits never change a booked price.
type BookingAddOn struct {
	BaseSimple
	BookingID uuid.UUID `db:"booking_id"`
	AddOnID   uuid.UUID `db:"add_on_id"`
	Name      string    `db:"name"`
	UnitPrice float64   `db:"unit_price"`
	Quantity  int       `db:"quantity"`
}
