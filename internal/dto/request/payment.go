package request

type CreatePaymentIntentRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
	Method    string `json:"method" validate:"required,oneof=card bank_transfer"`
	// AmountCents is optional and only cross-checked against the
	// server-computed charge; the server figure is always the one charged.
	AmountCents *int64 `json:"amount_cents,omitempty" validate:"omitempty,gt=0"`
}

type ConfirmPaymentRequest struct {
	IntentID string `json:"intent_id" validate:"required"`
}

type BankTransferInvoiceRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}

type SubmitReceiptRequest struct {
	ReceiptURL string `json:"receipt_url" validate:"required,url"`
}

type RejectPaymentRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}
