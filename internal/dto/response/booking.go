package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type TravelerResponse struct {
	ID             string  `json:"id"`
	FullName       string  `json:"full_name"`
	Type           string  `json:"type"`
	PassportNumber *string `json:"passport_number,omitempty"`
}

type BookingAddOnResponse struct {
	AddOnID   string  `json:"add_on_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type BookingResponse struct {
	ID            string `json:"id"`
	BookingNumber string `json:"booking_number"`
	TourID        string `json:"tour_id"`
	TourDateID    string `json:"tour_date_id"`

	Adults         int  `json:"adults"`
	Children       int  `json:"children"`
	Infants        int  `json:"infants"`
	FlightIncluded bool `json:"flight_included"`

	TotalPrice       float64  `json:"total_price"`
	AddOnsTotal      float64  `json:"add_ons_total"`
	IsDepositPayment bool     `json:"is_deposit_payment"`
	DepositAmount    *float64 `json:"deposit_amount,omitempty"`
	RemainingBalance *float64 `json:"remaining_balance,omitempty"`

	Status             string     `json:"status"`
	SpecialRequests    string     `json:"special_requests,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`

	Travelers []TravelerResponse     `json:"travelers,omitempty"`
	AddOns    []BookingAddOnResponse `json:"add_ons,omitempty"`
	Payment   *PaymentResponse       `json:"payment,omitempty"`
}

func NewBookingResponse(booking *entity.Booking) *BookingResponse {
	return &BookingResponse{
		ID:               booking.ID.String(),
		BookingNumber:    booking.BookingNumber,
		TourID:           booking.TourID.String(),
		TourDateID:       booking.TourDateID.String(),
		Adults:           booking.Adults,
		Children:         booking.Children,
		Infants:          booking.Infants,
		FlightIncluded:   booking.FlightIncluded,
		TotalPrice:       booking.TotalPrice,
		AddOnsTotal:      booking.AddOnsTotal,
		IsDepositPayment: booking.IsDepositPayment,
		DepositAmount:    booking.DepositAmount,
		RemainingBalance: booking.RemainingBalance,
		Status:           string(booking.Status),
		SpecialRequests:  booking.SpecialRequests,

		CancellationReason: booking.CancellationReason,
		CancelledAt:        booking.CancelledAt,
		CreatedAt:          booking.CreatedAt,
	}
}

func (r *BookingResponse) WithTravelers(travelers []*entity.Traveler) *BookingResponse {
	for _, t := range travelers {
		r.Travelers = append(r.Travelers, TravelerResponse{
			ID:             t.ID.String(),
			FullName:       t.FullName,
			Type:           string(t.Type),
			PassportNumber: t.PassportNumber,
		})
	}
	return r
}

func (r *BookingResponse) WithAddOns(addOns []*entity.BookingAddOn) *BookingResponse {
	for _, a := range addOns {
		r.AddOns = append(r.AddOns, BookingAddOnResponse{
			AddOnID:   a.AddOnID.String(),
			Name:      a.Name,
			UnitPrice: a.UnitPrice,
			Quantity:  a.Quantity,
			Subtotal:  a.UnitPrice * float64(a.Quantity),
		})
	}
	return r
}
