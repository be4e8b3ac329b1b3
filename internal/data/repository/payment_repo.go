package repository

import (
	"context"
	"fmt"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
	FindByIntentID(ctx context.Context, intentID string) (*entity.Payment, error)

	// Upsert keys the payment on its booking (1:1); re-running intent
	// creation refreshes amount and intent reference instead of adding rows.
	Upsert(ctx context.Context, payment *entity.Payment) error

	// MarkCompletedByIntentID is the idempotent completion transition keyed
	// on the unique processor intent id. False means the payment was
	// already completed or refunded.
	MarkCompletedByIntentID(ctx context.Context, intentID string) (bool, error)
	MarkFailedByIntentID(ctx context.Context, intentID string) (bool, error)

	// CompleteAndConfirm runs both the payment completion and the booking
	// confirmation in one transaction. Used by the webhook path.
	CompleteAndConfirm(ctx context.Context, intentID string, bookingID uuid.UUID) (bool, error)

	SetReceipt(ctx context.Context, paymentID uuid.UUID, receiptURL string) (bool, error)
	UpdateStatus(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus) error

	// Bank-transfer admin decisions, both conditional on
	// awaiting_verification so a double click cannot apply twice.
	ApproveAndConfirm(ctx context.Context, paymentID, bookingID uuid.UUID) (bool, error)
	RejectAwaiting(ctx context.Context, paymentID uuid.UUID) (bool, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, payment_number, booking_id, amount, base_amount, fee_amount, currency,
	method, status, intent_id, invoice_id, receipt_url, paid_at, created_at, updated_at`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.PaymentNumber,
		&payment.BookingID,
		&payment.Amount,
		&payment.BaseAmount,
		&payment.FeeAmount,
		&payment.Currency,
		&payment.Method,
		&payment.Status,
		&payment.IntentID,
		&payment.InvoiceID,
		&payment.ReceiptURL,
		&payment.PaidAt,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, bookingID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payment by booking ID %s: %w", bookingID.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByIntentID(ctx context.Context, intentID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE intent_id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, intentID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by intent ID",
			zap.Error(err),
			zap.String("intent_id", intentID),
		)
		return nil, fmt.Errorf("find payment by intent ID %s: %w", intentID, err)
	}

	return payment, nil
}

func (r *paymentRepository) Upsert(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (booking_id) DO UPDATE
		SET amount = EXCLUDED.amount,
		    base_amount = EXCLUDED.base_amount,
		    fee_amount = EXCLUDED.fee_amount,
		    method = EXCLUDED.method,
		    status = EXCLUDED.status,
		    intent_id = EXCLUDED.intent_id,
		    invoice_id = EXCLUDED.invoice_id,
		    updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.PaymentNumber,
		payment.BookingID,
		payment.Amount,
		payment.BaseAmount,
		payment.FeeAmount,
		payment.Currency,
		payment.Method,
		payment.Status,
		payment.IntentID,
		payment.InvoiceID,
		payment.ReceiptURL,
		payment.PaidAt,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert payment",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
		)
		return fmt.Errorf("upsert payment for booking %s: %w", payment.BookingID.String(), err)
	}

	return nil
}

const markCompletedSQL = `
	UPDATE payments
	SET status = 'completed', paid_at = NOW(), updated_at = NOW()
	WHERE intent_id = $1 AND status NOT IN ('completed', 'refunded')
`

const confirmBookingSQL = `
	UPDATE bookings
	SET status = 'confirmed', updated_at = NOW()
	WHERE id = $1 AND status = 'pending'
`

const completedPaymentExistsSQL = `
	SELECT EXISTS (
		SELECT 1 FROM payments WHERE intent_id = $1 AND status IN ('completed', 'refunded')
	)
`

func (r *paymentRepository) MarkCompletedByIntentID(ctx context.Context, intentID string) (bool, error) {
	result, err := r.db.Exec(ctx, markCompletedSQL, intentID)
	if err != nil {
		r.log.Error("Failed to mark payment completed",
			zap.Error(err),
			zap.String("intent_id", intentID),
		)
		return false, fmt.Errorf("mark payment completed for intent %s: %w", intentID, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *paymentRepository) MarkFailedByIntentID(ctx context.Context, intentID string) (bool, error) {
	query := `
		UPDATE payments
		SET status = 'failed', updated_at = NOW()
		WHERE intent_id = $1 AND status NOT IN ('completed', 'refunded')
	`

	result, err := r.db.Exec(ctx, query, intentID)
	if err != nil {
		r.log.Error("Failed to mark payment failed",
			zap.Error(err),
			zap.String("intent_id", intentID),
		)
		return false, fmt.Errorf("mark payment failed for intent %s: %w", intentID, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *paymentRepository) CompleteAndConfirm(ctx context.Context, intentID string, bookingID uuid.UUID) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin complete payment tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, markCompletedSQL, intentID)
	if err != nil {
		r.log.Error("Failed to mark payment completed in tx",
			zap.Error(err),
			zap.String("intent_id", intentID),
		)
		return false, fmt.Errorf("mark payment completed for intent %s: %w", intentID, err)
	}
	completed := result.RowsAffected() > 0

	if !completed {
		// Zero rows is either a redelivery for an already-terminal payment
		// or an intent this system never recorded. Only the former may
		// confirm the booking.
		var known bool
		if err := tx.QueryRow(ctx, completedPaymentExistsSQL, intentID).Scan(&known); err != nil {
			r.log.Error("Failed to check payment for intent",
				zap.Error(err),
				zap.String("intent_id", intentID),
			)
			return false, fmt.Errorf("check payment for intent %s: %w", intentID, err)
		}
		if !known {
			r.log.Error("Succeeded intent matches no recorded payment, booking left unconfirmed for manual reconciliation",
				zap.String("intent_id", intentID),
				zap.String("booking_id", bookingID.String()),
			)
			return false, nil
		}
	}

	if _, err := tx.Exec(ctx, confirmBookingSQL, bookingID); err != nil {
		r.log.Error("Failed to confirm booking in tx",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("confirm booking %s: %w", bookingID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit complete payment tx: %w", err)
	}

	return completed, nil
}

func (r *paymentRepository) ApproveAndConfirm(ctx context.Context, paymentID, bookingID uuid.UUID) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin approve payment tx: %w", err)
	}
	defer tx.Rollback(ctx)

	approveQuery := `
		UPDATE payments
		SET status = 'completed', paid_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'awaiting_verification'
	`
	result, err := tx.Exec(ctx, approveQuery, paymentID)
	if err != nil {
		r.log.Error("Failed to approve payment",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
		)
		return false, fmt.Errorf("approve payment %s: %w", paymentID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, confirmBookingSQL, bookingID); err != nil {
		r.log.Error("Failed to confirm booking on approval",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("confirm booking %s: %w", bookingID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit approve payment tx: %w", err)
	}

	return true, nil
}

func (r *paymentRepository) RejectAwaiting(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	query := `
		UPDATE payments
		SET status = 'failed', updated_at = NOW()
		WHERE id = $1 AND status = 'awaiting_verification'
	`

	result, err := r.db.Exec(ctx, query, paymentID)
	if err != nil {
		r.log.Error("Failed to reject payment",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
		)
		return false, fmt.Errorf("reject payment %s: %w", paymentID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *paymentRepository) SetReceipt(ctx context.Context, paymentID uuid.UUID, receiptURL string) (bool, error) {
	query := `
		UPDATE payments
		SET receipt_url = $2, status = 'awaiting_verification', updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'failed')
	`

	result, err := r.db.Exec(ctx, query, paymentID, receiptURL)
	if err != nil {
		r.log.Error("Failed to set payment receipt",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
		)
		return false, fmt.Errorf("set receipt for payment %s: %w", paymentID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus) error {
	query := `UPDATE payments SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, paymentID, status)
	if err != nil {
		r.log.Error("Failed to update payment status",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update payment %s status to %s: %w", paymentID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s not found", paymentID.String())
	}

	return nil
}
