package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type PaymentResponse struct {
	ID            string     `json:"id"`
	PaymentNumber string     `json:"payment_number"`
	BookingID     string     `json:"booking_id"`
	Amount        float64    `json:"amount"`
	BaseAmount    float64    `json:"base_amount"`
	FeeAmount     float64    `json:"fee_amount"`
	Currency      string     `json:"currency"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	ReceiptURL    *string    `json:"receipt_url,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func NewPaymentResponse(payment *entity.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            payment.ID.String(),
		PaymentNumber: payment.PaymentNumber,
		BookingID:     payment.BookingID.String(),
		Amount:        payment.Amount,
		BaseAmount:    payment.BaseAmount,
		FeeAmount:     payment.FeeAmount,
		Currency:      payment.Currency,
		Method:        string(payment.Method),
		Status:        string(payment.Status),
		ReceiptURL:    payment.ReceiptURL,
		PaidAt:        payment.PaidAt,
		CreatedAt:     payment.CreatedAt,
	}
}

// PaymentIntentResponse is returned when a card payment intent is created
// or reused. The client secret lets the frontend complete the charge.
type PaymentIntentResponse struct {
	PaymentID    string  `json:"payment_id"`
	IntentID     string  `json:"intent_id"`
	ClientSecret string  `json:"client_secret"`
	Amount       float64 `json:"amount"`
	BaseAmount   float64 `json:"base_amount"`
	FeeAmount    float64 `json:"fee_amount"`
	AmountCents  int64   `json:"amount_cents"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"`
}

// BankTransferInvoiceResponse is returned when a bank transfer invoice is
// issued. No card surcharge applies to bank transfers.
type BankTransferInvoiceResponse struct {
	PaymentID  string  `json:"payment_id"`
	InvoiceID  string  `json:"invoice_id"`
	InvoiceURL string  `json:"invoice_url,omitempty"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Status     string  `json:"status"`
}
