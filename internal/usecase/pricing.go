package usecase

import (
	"math"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/dto/request"

	"github.com/google/uuid"
)

// CardFeeRate is the surcharge applied when charging by card.
const CardFeeRate = 0.03

// PriceQuote is the computed cost of a booking before any payment.
type PriceQuote struct {
	Base        float64
	AddOnsTotal float64
	Total       float64
	AddOns      []*entity.BookingAddOn
}

// CalculatePrice prices a booking: tour price per traveler times party size
// plus selected add-ons. Selections that do not match an active add-on of
// the tour are silently dropped. Pure function, no I/O.
func CalculatePrice(tourPrice float64, travelers int, activeAddOns []*entity.TourAddOn, selections []request.AddOnSelection) PriceQuote {
	quote := PriceQuote{
		Base: round2(tourPrice * float64(travelers)),
	}

	byID := make(map[uuid.UUID]*entity.TourAddOn, len(activeAddOns))
	for _, addOn := range activeAddOns {
		byID[addOn.ID] = addOn
	}

	for _, sel := range selections {
		addOnID, err := uuid.Parse(sel.AddOnID)
		if err != nil {
			continue
		}
		addOn, ok := byID[addOnID]
		if !ok || sel.Quantity < 1 {
			continue
		}

		quote.AddOnsTotal = round2(quote.AddOnsTotal + addOn.Price*float64(sel.Quantity))
		quote.AddOns = append(quote.AddOns, &entity.BookingAddOn{
			AddOnID:   addOn.ID,
			Name:      addOn.Name,
			UnitPrice: addOn.Price,
			Quantity:  sel.Quantity,
		})
	}

	quote.Total = round2(quote.Base + quote.AddOnsTotal)
	return quote
}

// ChargeBase is the amount a payment attempt charges: the deposit when the
// booking elected a deposit payment, otherwise the full total.
func ChargeBase(booking *entity.Booking) float64 {
	if booking.IsDepositPayment && booking.DepositAmount != nil {
		return *booking.DepositAmount
	}
	return booking.TotalPrice
}

// CardSurcharge returns the card fee and the total charged for a base amount.
func CardSurcharge(chargeBase float64) (fee, totalCharged float64) {
	fee = round2(chargeBase * CardFeeRate)
	totalCharged = round2(chargeBase + fee)
	return fee, totalCharged
}

// MinorUnits converts a dollar amount to integer cents for the processor.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
