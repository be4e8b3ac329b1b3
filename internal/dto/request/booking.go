package request

type TravelerRequest struct {
	FullName       string  `json:"full_name" validate:"required,min=2,max=200"`
	Type           string  `json:"type" validate:"required,oneof=adult child infant"`
	PassportNumber *string `json:"passport_number,omitempty" validate:"omitempty,max=20"`
}

type AddOnSelection struct {
	AddOnID  string `json:"add_on_id" validate:"required,uuid4"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type CreateBookingRequest struct {
	TourID     string `json:"tour_id" validate:"required,uuid4"`
	TourDateID string `json:"tour_date_id,omitempty" validate:"omitempty,uuid4"`
	// StartDate resolves the departure when no explicit tour_date_id is given
	StartDate string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`

	Adults   int `json:"adults" validate:"required,min=1"`
	Children int `json:"children" validate:"min=0"`
	Infants  int `json:"infants" validate:"min=0"`

	FlightIncluded bool              `json:"flight_included"`
	Travelers      []TravelerRequest `json:"travelers" validate:"required,min=1,dive"`
	AddOns         []AddOnSelection  `json:"add_ons,omitempty" validate:"omitempty,dive"`

	IsDepositPayment bool     `json:"is_deposit_payment"`
	DepositAmount    *float64 `json:"deposit_amount,omitempty" validate:"omitempty,gt=0"`

	SpecialRequests string `json:"special_requests,omitempty" validate:"max=2000"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

type AdminBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}
