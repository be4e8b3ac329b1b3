package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending              PaymentStatus = "pending"
	PaymentStatusAwaitingVerification PaymentStatus = "awaiting_verification"
	PaymentStatusCompleted            PaymentStatus = "completed"
	PaymentStatusFailed               PaymentStatus = "failed"
	PaymentStatusRefunded             PaymentStatus = "refunded"
)

// IsTerminal reports whether no further charge attempts are allowed.
// failed is not terminal: a rejected bank transfer can be resubmitted.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusRefunded
}

type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// Payment is the single charge record of a booking (1:1). IntentID is the
// processor's payment-intent reference and is unique, which is what makes
// the webhook and client-confirm paths idempotent against each other.
type Payment struct {
	Base
	PaymentNumber string        `db:"payment_number"`
	BookingID     uuid.UUID     `db:"booking_id"`
	Amount        float64       `db:"amount"`
	BaseAmount    float64       `db:"base_amount"`
	FeeAmount     float64       `db:"fee_amount"`
	Currency      string        `db:"currency"`
	Method        PaymentMethod `db:"method"`
	Status        PaymentStatus `db:"status"`
	IntentID      *string       `db:"intent_id"`
	InvoiceID     *string       `db:"invoice_id"`
	ReceiptURL    *string       `db:"receipt_url"`
	PaidAt        *time.Time    `db:"paid_at"`
}
