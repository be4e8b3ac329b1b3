package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/notify"
	"tour-booking/pkg/payments"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// clientAmountTolerance is the accepted drift, in minor units, between the
// amount a client believes it is paying and the server-computed charge.
const clientAmountTolerance = 1

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, userID string, req *request.CreatePaymentIntentRequest) (*response.PaymentIntentResponse, error)
	ConfirmPayment(ctx context.Context, userID, intentID string) (*response.PaymentResponse, error)
	HandleProcessorEvent(ctx context.Context, event *payments.Event) error

	CreateBankTransferInvoice(ctx context.Context, userID string, req *request.BankTransferInvoiceRequest) (*response.BankTransferInvoiceResponse, error)
	SubmitReceipt(ctx context.Context, userID, paymentID, receiptURL string) (*response.PaymentResponse, error)
	ApprovePayment(ctx context.Context, paymentID string) (*response.PaymentResponse, error)
	RejectPayment(ctx context.Context, paymentID, reason string) error

	RefundPayment(ctx context.Context, paymentID string) (*response.PaymentResponse, error)
	GetPayment(ctx context.Context, userID, paymentID string, isAdmin bool) (*response.PaymentResponse, error)
}

type paymentService struct {
	repo      *repository.Repository
	processor payments.Processor
	notifier  notify.Notifier
	cfg       utils.PaymentsConfig
	log       *zap.Logger
}

func NewPaymentService(repo *repository.Repository, processor payments.Processor, notifier notify.Notifier, cfg utils.PaymentsConfig, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:      repo,
		processor: processor,
		notifier:  notifier,
		cfg:       cfg,
		log:       log.With(zap.String("service", "payment")),
	}
}

// CreatePaymentIntent computes the charge server-side, cross-checks any
// client-declared amount, and creates or reuses a processor intent for the
// booking's payment record.
func (s *paymentService) CreatePaymentIntent(ctx context.Context, userID string, req *request.CreatePaymentIntentRequest) (*response.PaymentIntentResponse, error) {
	if verrs := utils.ValidateStruct(req); verrs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(verrs))
	}
	if req.Method != string(entity.PaymentMethodCard) {
		return nil, fmt.Errorf("%w: bank transfers are paid through an invoice, not a card intent", ErrValidation)
	}

	booking, payment, err := s.loadChargeableBooking(ctx, userID, req.BookingID)
	if err != nil {
		return nil, err
	}

	chargeBase := ChargeBase(booking)
	fee, totalCharged := CardSurcharge(chargeBase)
	amountCents := MinorUnits(totalCharged)

	if amountCents < s.cfg.MinChargeCents {
		return nil, fmt.Errorf("%w: charge of %d cents is below the %d cent minimum", ErrInvalidAmount, amountCents, s.cfg.MinChargeCents)
	}
	if req.AmountCents != nil && absDiff(*req.AmountCents, amountCents) > clientAmountTolerance {
		s.log.Warn("Client amount mismatch on intent creation",
			zap.String("booking_id", booking.ID.String()),
			zap.Int64("client_cents", *req.AmountCents),
			zap.Int64("server_cents", amountCents),
		)
		return nil, fmt.Errorf("%w: expected %d cents", ErrInvalidAmount, amountCents)
	}

	intent, err := s.resolveIntent(ctx, booking, payment, amountCents)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if payment == nil {
		payment = &entity.Payment{
			Base:          entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
			PaymentNumber: utils.GeneratePaymentNumber(),
			BookingID:     booking.ID,
		}
	}
	payment.Amount = totalCharged
	payment.BaseAmount = chargeBase
	payment.FeeAmount = fee
	payment.Currency = s.cfg.Currency
	payment.Method = entity.PaymentMethodCard
	payment.Status = entity.PaymentStatusPending
	payment.IntentID = &intent.ID

	if err := s.repo.Payment.Upsert(ctx, payment); err != nil {
		return nil, err
	}

	s.log.Info("Payment intent ready",
		zap.String("booking_id", booking.ID.String()),
		zap.String("intent_id", intent.ID),
		zap.Int64("amount_cents", amountCents),
	)

	return &response.PaymentIntentResponse{
		PaymentID:    payment.ID.String(),
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       totalCharged,
		BaseAmount:   chargeBase,
		FeeAmount:    fee,
		AmountCents:  amountCents,
		Currency:     s.cfg.Currency,
		Status:       string(intent.Status),
	}, nil
}

// resolveIntent reuses the booking's existing intent when it is still open,
// refreshing its amount if the charge changed, and creates a new one
// otherwise. A succeeded intent means a confirmation was missed; it is
// reconciled on the spot.
func (s *paymentService) resolveIntent(ctx context.Context, booking *entity.Booking, payment *entity.Payment, amountCents int64) (*payments.Intent, error) {
	if payment != nil && payment.IntentID != nil {
		existing, err := s.processor.GetIntent(ctx, *payment.IntentID)
		if err != nil && !errors.Is(err, payments.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrExternalService, err.Error())
		}
		if err == nil {
			switch existing.Status {
			case payments.IntentSucceeded:
				s.log.Warn("Intent already succeeded at processor, reconciling",
					zap.String("intent_id", existing.ID),
					zap.String("booking_id", booking.ID.String()),
				)
				if _, recErr := s.repo.Payment.CompleteAndConfirm(ctx, existing.ID, booking.ID); recErr != nil {
					return nil, recErr
				}
				return nil, fmt.Errorf("booking %s: %w", booking.BookingNumber, ErrBookingAlreadyPaid)
			case payments.IntentCanceled:
				// fall through to create a fresh intent
			default:
				if existing.Amount != amountCents {
					updated, updErr := s.processor.UpdateIntentAmount(ctx, existing.ID, amountCents)
					if updErr != nil {
						return nil, fmt.Errorf("%w: %s", ErrExternalService, updErr.Error())
					}
					return updated, nil
				}
				return existing, nil
			}
		}
	}

	intent, err := s.processor.CreateIntent(ctx, payments.CreateIntentParams{
		Amount:            amountCents,
		Currency:          s.cfg.Currency,
		PaymentMethodType: string(entity.PaymentMethodCard),
		Metadata:          map[string]string{"booking_id": booking.ID.String()},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExternalService, err.Error())
	}
	return intent, nil
}

// ConfirmPayment is the client-driven confirmation path. The processor is
// the source of truth: the intent must have succeeded there before any local
// state moves. Both writes are conditional, so a concurrent webhook delivery
// for the same intent cannot double-apply.
func (s *paymentService) ConfirmPayment(ctx context.Context, userID, intentID string) (*response.PaymentResponse, error) {
	payment, err := s.repo.Payment.FindByIntentID(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	booking, err := s.repo.Booking.FindByID(ctx, payment.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID.String() != userID {
		return nil, ErrNotAuthorized
	}

	intent, err := s.processor.GetIntent(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExternalService, err.Error())
	}
	if intent.Status != payments.IntentSucceeded {
		return nil, fmt.Errorf("intent %s is %s: %w", intentID, intent.Status, ErrPaymentNotCompleted)
	}

	completed, err := s.repo.Payment.MarkCompletedByIntentID(ctx, intentID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Booking.ConfirmPending(ctx, booking.ID); err != nil {
		// The payment row already moved; this must reach an operator.
		s.log.Error("Payment completed but booking confirmation failed, manual reconciliation required",
			zap.Error(err),
			zap.String("intent_id", intentID),
			zap.String("booking_id", booking.ID.String()),
		)
		return nil, fmt.Errorf("payment completed but booking %s not confirmed: %w", booking.BookingNumber, err)
	}

	if completed {
		s.log.Info("Payment confirmed by client",
			zap.String("intent_id", intentID),
			zap.String("booking_number", booking.BookingNumber),
		)
		s.notifyBookingConfirmed(booking.ID)
	}

	refreshed, err := s.repo.Payment.FindByIntentID(ctx, intentID)
	if err != nil {
		return nil, err
	}
	return response.NewPaymentResponse(refreshed), nil
}

// HandleProcessorEvent applies a verified webhook delivery. Redeliveries and
// races with the client-confirm path collapse into no-ops because every
// transition is conditional. Returning nil acknowledges the event.
func (s *paymentService) HandleProcessorEvent(ctx context.Context, event *payments.Event) error {
	intent := event.Data.Object
	bookingIDStr := intent.Metadata["booking_id"]
	if bookingIDStr == "" {
		s.log.Warn("Processor event without booking metadata, ignoring",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type),
		)
		return nil
	}
	bookingID, err := uuid.Parse(bookingIDStr)
	if err != nil {
		s.log.Warn("Processor event with malformed booking metadata, ignoring",
			zap.String("event_id", event.ID),
			zap.String("booking_id", bookingIDStr),
		)
		return nil
	}

	switch event.Type {
	case payments.EventIntentSucceeded:
		completed, err := s.repo.Payment.CompleteAndConfirm(ctx, intent.ID, bookingID)
		if err != nil {
			return err
		}
		if completed {
			s.log.Info("Payment confirmed by webhook",
				zap.String("event_id", event.ID),
				zap.String("intent_id", intent.ID),
				zap.String("booking_id", bookingID.String()),
			)
			s.notifyBookingConfirmed(bookingID)
		} else {
			s.log.Debug("Webhook redelivery for already-completed payment",
				zap.String("event_id", event.ID),
				zap.String("intent_id", intent.ID),
			)
		}

	case payments.EventIntentFailed:
		failed, err := s.repo.Payment.MarkFailedByIntentID(ctx, intent.ID)
		if err != nil {
			return err
		}
		if failed {
			s.log.Info("Payment marked failed by webhook",
				zap.String("event_id", event.ID),
				zap.String("intent_id", intent.ID),
			)
			s.notifyPaymentFailed(bookingID)
		}

	default:
		s.log.Debug("Ignoring unhandled processor event type",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type),
		)
	}

	return nil
}

// CreateBankTransferInvoice issues a processor invoice for the charge base.
// Bank transfers carry no card surcharge.
func (s *paymentService) CreateBankTransferInvoice(ctx context.Context, userID string, req *request.BankTransferInvoiceRequest) (*response.BankTransferInvoiceResponse, error) {
	if verrs := utils.ValidateStruct(req); verrs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(verrs))
	}

	booking, payment, err := s.loadChargeableBooking(ctx, userID, req.BookingID)
	if err != nil {
		return nil, err
	}
	if payment != nil && payment.IntentID != nil {
		if err := s.cancelStaleIntent(ctx, booking, *payment.IntentID); err != nil {
			return nil, err
		}
	}

	amount := ChargeBase(booking)
	amountCents := MinorUnits(amount)
	if amountCents < s.cfg.MinChargeCents {
		return nil, fmt.Errorf("%w: charge of %d cents is below the %d cent minimum", ErrInvalidAmount, amountCents, s.cfg.MinChargeCents)
	}

	user, err := s.repo.User.FindByID(ctx, booking.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s for booking %s not found", booking.UserID.String(), booking.BookingNumber)
	}

	customer, err := s.processor.CreateCustomer(ctx, user.Email, user.FullName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExternalService, err.Error())
	}
	invoice, err := s.processor.CreateInvoice(ctx, customer.ID, amountCents, s.cfg.Currency,
		map[string]string{"booking_id": booking.ID.String()})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExternalService, err.Error())
	}

	now := time.Now()
	if payment == nil {
		payment = &entity.Payment{
			Base:          entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
			PaymentNumber: utils.GeneratePaymentNumber(),
			BookingID:     booking.ID,
		}
	}
	payment.Amount = amount
	payment.BaseAmount = amount
	payment.FeeAmount = 0
	payment.Currency = s.cfg.Currency
	payment.Method = entity.PaymentMethodBankTransfer
	payment.Status = entity.PaymentStatusPending
	payment.IntentID = nil
	payment.InvoiceID = &invoice.ID

	if err := s.repo.Payment.Upsert(ctx, payment); err != nil {
		return nil, err
	}

	s.log.Info("Bank transfer invoice created",
		zap.String("booking_number", booking.BookingNumber),
		zap.String("invoice_id", invoice.ID),
	)

	return &response.BankTransferInvoiceResponse{
		PaymentID:  payment.ID.String(),
		InvoiceID:  invoice.ID,
		InvoiceURL: invoice.HostedURL,
		Amount:     amount,
		Currency:   s.cfg.Currency,
		Status:     string(payment.Status),
	}, nil
}

// cancelStaleIntent voids a card intent left behind when the booking switches
// to bank transfer, so its client secret cannot charge the card alongside the
// invoice. A success the webhook missed is reconciled instead of cancelled.
func (s *paymentService) cancelStaleIntent(ctx context.Context, booking *entity.Booking, intentID string) error {
	intent, err := s.processor.GetIntent(ctx, intentID)
	if errors.Is(err, payments.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s", ErrExternalService, err.Error())
	}

	switch intent.Status {
	case payments.IntentSucceeded:
		s.log.Warn("Intent already succeeded at processor, reconciling",
			zap.String("intent_id", intent.ID),
			zap.String("booking_id", booking.ID.String()),
		)
		if _, recErr := s.repo.Payment.CompleteAndConfirm(ctx, intent.ID, booking.ID); recErr != nil {
			return recErr
		}
		return fmt.Errorf("booking %s: %w", booking.BookingNumber, ErrBookingAlreadyPaid)
	case payments.IntentCanceled:
		return nil
	default:
		if _, cancelErr := s.processor.CancelIntent(ctx, intent.ID); cancelErr != nil {
			// The invoice can still go out; the orphaned intent is left for
			// manual cleanup.
			s.log.Warn("Failed to cancel stale card intent",
				zap.Error(cancelErr),
				zap.String("intent_id", intent.ID),
				zap.String("booking_id", booking.ID.String()),
			)
		}
		return nil
	}
}

// SubmitReceipt records a transfer receipt and queues the payment for admin
// verification. Allowed from pending or failed, so a rejected transfer can
// be resubmitted.
func (s *paymentService) SubmitReceipt(ctx context.Context, userID, paymentID, receiptURL string) (*response.PaymentResponse, error) {
	payment, booking, err := s.loadOwnedPayment(ctx, userID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Method != entity.PaymentMethodBankTransfer {
		return nil, fmt.Errorf("payment %s is a %s payment: %w", payment.PaymentNumber, payment.Method, ErrInvalidPaymentState)
	}

	ok, err := s.repo.Payment.SetReceipt(ctx, payment.ID, receiptURL)
	if err != nil {
		return nil, err
	}
	if !ok {
		if payment.Status.IsTerminal() {
			return nil, fmt.Errorf("booking %s: %w", booking.BookingNumber, ErrBookingAlreadyPaid)
		}
		return nil, fmt.Errorf("payment %s is %s: %w", payment.PaymentNumber, payment.Status, ErrInvalidPaymentState)
	}

	s.log.Info("Bank transfer receipt submitted",
		zap.String("payment_number", payment.PaymentNumber),
		zap.String("booking_number", booking.BookingNumber),
	)
	s.notifyAsync(booking.ID, "Receipt received",
		"We received your transfer receipt for booking "+booking.BookingNumber+". We will verify it shortly.")

	refreshed, err := s.repo.Payment.FindByID(ctx, payment.ID)
	if err != nil {
		return nil, err
	}
	return response.NewPaymentResponse(refreshed), nil
}

// ApprovePayment is the admin approval of a verified bank transfer. Payment
// completion and booking confirmation commit together; approving an
// already-completed payment is a no-op.
func (s *paymentService) ApprovePayment(ctx context.Context, paymentID string) (*response.PaymentResponse, error) {
	payment, err := s.findPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.Status == entity.PaymentStatusCompleted {
		return response.NewPaymentResponse(payment), nil
	}

	ok, err := s.repo.Payment.ApproveAndConfirm(ctx, payment.ID, payment.BookingID)
	if err != nil {
		return nil, err
	}

	refreshed, err := s.repo.Payment.FindByID(ctx, payment.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a race with another approval, or the payment never reached
		// awaiting_verification.
		if refreshed != nil && refreshed.Status == entity.PaymentStatusCompleted {
			return response.NewPaymentResponse(refreshed), nil
		}
		return nil, fmt.Errorf("payment %s is %s: %w", payment.PaymentNumber, payment.Status, ErrInvalidPaymentState)
	}

	s.log.Info("Bank transfer approved",
		zap.String("payment_number", payment.PaymentNumber),
		zap.String("booking_id", payment.BookingID.String()),
	)
	s.notifyBookingConfirmed(payment.BookingID)

	return response.NewPaymentResponse(refreshed), nil
}

func (s *paymentService) RejectPayment(ctx context.Context, paymentID, reason string) error {
	payment, err := s.findPayment(ctx, paymentID)
	if err != nil {
		return err
	}

	ok, err := s.repo.Payment.RejectAwaiting(ctx, payment.ID)
	if err != nil {
		return err
	}
	if !ok {
		if payment.Status.IsTerminal() {
			return fmt.Errorf("payment %s: %w", payment.PaymentNumber, ErrBookingAlreadyPaid)
		}
		return fmt.Errorf("payment %s is %s: %w", payment.PaymentNumber, payment.Status, ErrInvalidPaymentState)
	}

	s.log.Info("Bank transfer rejected",
		zap.String("payment_number", payment.PaymentNumber),
		zap.String("reason", reason),
	)
	s.notifyAsync(payment.BookingID, "Payment verification failed",
		"Your transfer receipt could not be verified: "+reason+". Please submit a new receipt.")

	return nil
}

// RefundPayment refunds a completed payment. Card refunds go through the
// processor; bank transfer refunds are settled out of band and only recorded.
func (s *paymentService) RefundPayment(ctx context.Context, paymentID string) (*response.PaymentResponse, error) {
	payment, err := s.findPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != entity.PaymentStatusCompleted {
		return nil, fmt.Errorf("payment %s is %s: %w", payment.PaymentNumber, payment.Status, ErrInvalidPaymentState)
	}

	if payment.Method == entity.PaymentMethodCard && payment.IntentID != nil {
		if _, err := s.processor.CreateRefund(ctx, *payment.IntentID); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrExternalService, err.Error())
		}
	}

	if err := s.repo.Payment.UpdateStatus(ctx, payment.ID, entity.PaymentStatusRefunded); err != nil {
		return nil, err
	}

	s.log.Info("Payment refunded",
		zap.String("payment_number", payment.PaymentNumber),
		zap.String("method", string(payment.Method)),
	)

	refreshed, err := s.repo.Payment.FindByID(ctx, payment.ID)
	if err != nil {
		return nil, err
	}
	return response.NewPaymentResponse(refreshed), nil
}

func (s *paymentService) GetPayment(ctx context.Context, userID, paymentID string, isAdmin bool) (*response.PaymentResponse, error) {
	payment, err := s.findPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if !isAdmin {
		booking, err := s.repo.Booking.FindByID(ctx, payment.BookingID)
		if err != nil {
			return nil, err
		}
		if booking == nil || booking.UserID.String() != userID {
			return nil, ErrNotAuthorized
		}
	}

	return response.NewPaymentResponse(payment), nil
}

func (s *paymentService) findPayment(ctx context.Context, paymentID string) (*entity.Payment, error) {
	id, err := utils.ParseUUID(paymentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment id", ErrValidation)
	}
	payment, err := s.repo.Payment.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// loadChargeableBooking fetches a booking the user owns and its payment row,
// rejecting bookings that cannot take another charge attempt.
func (s *paymentService) loadChargeableBooking(ctx context.Context, userID, bookingID string) (*entity.Booking, *entity.Payment, error) {
	id, err := utils.ParseUUID(bookingID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid booking id", ErrValidation)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if booking == nil {
		return nil, nil, ErrBookingNotFound
	}
	if booking.UserID.String() != userID {
		return nil, nil, ErrNotAuthorized
	}
	if booking.Status == entity.BookingStatusCancelled {
		return nil, nil, fmt.Errorf("booking %s: %w", booking.BookingNumber, ErrAlreadyCancelled)
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, nil, err
	}
	if payment != nil && payment.Status.IsTerminal() {
		return nil, nil, fmt.Errorf("booking %s: %w", booking.BookingNumber, ErrBookingAlreadyPaid)
	}

	return booking, payment, nil
}

func (s *paymentService) loadOwnedPayment(ctx context.Context, userID, paymentID string) (*entity.Payment, *entity.Booking, error) {
	payment, err := s.findPayment(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	booking, err := s.repo.Booking.FindByID(ctx, payment.BookingID)
	if err != nil {
		return nil, nil, err
	}
	if booking == nil {
		return nil, nil, ErrBookingNotFound
	}
	if booking.UserID.String() != userID {
		return nil, nil, ErrNotAuthorized
	}
	return payment, booking, nil
}

func (s *paymentService) notifyBookingConfirmed(bookingID uuid.UUID) {
	s.notifyAsync(bookingID, "Booking confirmed",
		"Your payment was received and your booking is confirmed. See you on tour!")
}

func (s *paymentService) notifyPaymentFailed(bookingID uuid.UUID) {
	s.notifyAsync(bookingID, "Payment failed",
		"Your payment did not go through. Please try again from your booking page.")
}

// notifyAsync delivers an email without blocking or failing the calling
// operation; delivery problems are only logged.
func (s *paymentService) notifyAsync(bookingID uuid.UUID, subject, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		booking, err := s.repo.Booking.FindByID(ctx, bookingID)
		if err != nil || booking == nil {
			s.log.Warn("Skipping notification, booking lookup failed",
				zap.Error(err),
				zap.String("booking_id", bookingID.String()),
			)
			return
		}
		user, err := s.repo.User.FindByID(ctx, booking.UserID)
		if err != nil || user == nil {
			s.log.Warn("Skipping notification, user lookup failed",
				zap.Error(err),
				zap.String("user_id", booking.UserID.String()),
			)
			return
		}

		msg := notify.Message{
			To:      user.Email,
			Subject: subject + " - " + booking.BookingNumber,
			HTML:    "<p>Hi " + user.FullName + ",</p><p>" + body + "</p>",
			Text:    body,
		}
		if err := s.notifier.Send(ctx, msg); err != nil {
			s.log.Warn("Notification delivery failed",
				zap.Error(err),
				zap.String("booking_number", booking.BookingNumber),
			)
		}
	}()
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
