package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type TourDateResponse struct {
	ID             string    `json:"id"`
	TourID         string    `json:"tour_id"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	AvailableSlots int       `json:"available_slots"`
	BookedSlots    int       `json:"booked_slots"`
	RemainingSlots int       `json:"remaining_slots"`
	Status         string    `json:"status"`
}

func NewTourDateResponse(date *entity.TourDate) *TourDateResponse {
	return &TourDateResponse{
		ID:             date.ID.String(),
		TourID:         date.TourID.String(),
		StartDate:      date.StartDate,
		EndDate:        date.EndDate,
		AvailableSlots: date.AvailableSlots,
		BookedSlots:    date.BookedSlots,
		RemainingSlots: date.RemainingSlots(),
		Status:         string(date.Status),
	}
}
