package repository

import (
	"context"
	"errors"
	"fmt"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const uniqueViolationCode = "23505"

type BookingRepository interface {
	// CreateWithReservation reserves departure seats and persists the
	// booking with its travelers and add-on snapshots in one transaction.
	// Returns ErrInsufficientCapacity when the departure cannot hold the
	// party, ErrDuplicateBooking when a concurrent identical request won
	// the unique index race.
	CreateWithReservation(ctx context.Context, booking *entity.Booking, travelers []*entity.Traveler, addOns []*entity.BookingAddOn) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindActiveByUserTourDate(ctx context.Context, userID, tourID, tourDateID uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindTravelers(ctx context.Context, bookingID uuid.UUID) ([]*entity.Traveler, error)
	FindAddOns(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingAddOn, error)

	// Business mutations
	UpdateDepositElection(ctx context.Context, bookingID uuid.UUID, isDeposit bool, depositAmount, remainingBalance *float64) error
	ConfirmPending(ctx context.Context, bookingID uuid.UUID) (bool, error)
	CancelWithRelease(ctx context.Context, bookingID uuid.UUID, reason string, seats int, tourDateID uuid.UUID) error
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_number, user_id, tour_id, tour_date_id, adults, children, infants,
	flight_included, total_price, add_ons_total, is_deposit_payment, deposit_amount, remaining_balance,
	status, special_requests, cancellation_reason, cancelled_at, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.BookingNumber,
		&booking.UserID,
		&booking.TourID,
		&booking.TourDateID,
		&booking.Adults,
		&booking.Children,
		&booking.Infants,
		&booking.FlightIncluded,
		&booking.TotalPrice,
		&booking.AddOnsTotal,
		&booking.IsDepositPayment,
		&booking.DepositAmount,
		&booking.RemainingBalance,
		&booking.Status,
		&booking.SpecialRequests,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) CreateWithReservation(ctx context.Context, booking *entity.Booking, travelers []*entity.Traveler, addOns []*entity.BookingAddOn) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Seat reservation first: the capacity predicate fails fast before any
	// booking row exists.
	seats := booking.NumberOfTravelers()
	result, err := tx.Exec(ctx, reserveSlotsSQL, booking.TourDateID, seats)
	if err != nil {
		r.log.Error("Failed to reserve slots in booking tx",
			zap.Error(err),
			zap.String("tour_date_id", booking.TourDateID.String()),
			zap.Int("seats", seats),
		)
		return fmt.Errorf("reserve %d slots for booking %s: %w", seats, booking.BookingNumber, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("reserve %d slots for booking %s: %w", seats, booking.BookingNumber, ErrInsufficientCapacity)
	}

	insertBooking := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`
	_, err = tx.Exec(ctx, insertBooking,
		booking.ID,
		booking.BookingNumber,
		booking.UserID,
		booking.TourID,
		booking.TourDateID,
		booking.Adults,
		booking.Children,
		booking.Infants,
		booking.FlightIncluded,
		booking.TotalPrice,
		booking.AddOnsTotal,
		booking.IsDepositPayment,
		booking.DepositAmount,
		booking.RemainingBalance,
		booking.Status,
		booking.SpecialRequests,
		booking.CancellationReason,
		booking.CancelledAt,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		// Partial unique index on (user_id, tour_id, tour_date_id) for
		// pending/confirmed rows closes the find-then-create race: the
		// loser rolls back, which also undoes its seat reservation.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("create booking %s: %w", booking.BookingNumber, ErrDuplicateBooking)
		}
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("booking_number", booking.BookingNumber),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingNumber, err)
	}

	insertTraveler := `
		INSERT INTO travelers (id, booking_id, full_name, type, passport_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, traveler := range travelers {
		_, err = tx.Exec(ctx, insertTraveler,
			traveler.ID,
			traveler.BookingID,
			traveler.FullName,
			traveler.Type,
			traveler.PassportNumber,
			traveler.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to insert traveler",
				zap.Error(err),
				zap.String("booking_number", booking.BookingNumber),
			)
			return fmt.Errorf("create travelers for booking %s: %w", booking.BookingNumber, err)
		}
	}

	insertAddOn := `
		INSERT INTO booking_add_ons (id, booking_id, add_on_id, name, unit_price, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, addOn := range addOns {
		_, err = tx.Exec(ctx, insertAddOn,
			addOn.ID,
			addOn.BookingID,
			addOn.AddOnID,
			addOn.Name,
			addOn.UnitPrice,
			addOn.Quantity,
			addOn.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to insert booking add-on",
				zap.Error(err),
				zap.String("booking_number", booking.BookingNumber),
			)
			return fmt.Errorf("create add-ons for booking %s: %w", booking.BookingNumber, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking tx: %w", err)
	}

	r.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_number", booking.BookingNumber),
		zap.Int("seats", seats),
	)
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindActiveByUserTourDate(ctx context.Context, userID, tourID, tourDateID uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1 AND tour_id = $2 AND tour_date_id = $3 AND status IN ('pending', 'confirmed')
		ORDER BY created_at DESC
		LIMIT 1
	`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, userID, tourID, tourDateID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active booking",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("tour_date_id", tourDateID.String()),
		)
		return nil, fmt.Errorf("find active booking for user %s: %w", userID.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindTravelers(ctx context.Context, bookingID uuid.UUID) ([]*entity.Traveler, error) {
	query := `
		SELECT id, booking_id, full_name, type, passport_number, created_at
		FROM travelers
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find travelers",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find travelers for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var travelers []*entity.Traveler
	for rows.Next() {
		var traveler entity.Traveler
		err := rows.Scan(
			&traveler.ID,
			&traveler.BookingID,
			&traveler.FullName,
			&traveler.Type,
			&traveler.PassportNumber,
			&traveler.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan traveler row", zap.Error(err))
			return nil, fmt.Errorf("scan traveler row: %w", err)
		}
		travelers = append(travelers, &traveler)
	}

	return travelers, nil
}

func (r *bookingRepository) FindAddOns(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingAddOn, error) {
	query := `
		SELECT id, booking_id, add_on_id, name, unit_price, quantity, created_at
		FROM booking_add_ons
		WHERE booking_id = $1
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking add-ons",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find add-ons for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var addOns []*entity.BookingAddOn
	for rows.Next() {
		var addOn entity.BookingAddOn
		err := rows.Scan(
			&addOn.ID,
			&addOn.BookingID,
			&addOn.AddOnID,
			&addOn.Name,
			&addOn.UnitPrice,
			&addOn.Quantity,
			&addOn.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking add-on row", zap.Error(err))
			return nil, fmt.Errorf("scan booking add-on row: %w", err)
		}
		addOns = append(addOns, &addOn)
	}

	return addOns, nil
}

func (r *bookingRepository) UpdateDepositElection(ctx context.Context, bookingID uuid.UUID, isDeposit bool, depositAmount, remainingBalance *float64) error {
	query := `
		UPDATE bookings
		SET is_deposit_payment = $2, deposit_amount = $3, remaining_balance = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, bookingID, isDeposit, depositAmount, remainingBalance)
	if err != nil {
		r.log.Error("Failed to update deposit election",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("update deposit election for booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found or not pending", bookingID.String())
	}

	return nil
}

// ConfirmPending is the single idempotent confirmation transition shared by
// the client-confirm, webhook, and admin-approval paths. A false return
// means the booking was already out of pending, which callers treat as a
// successful no-op.
func (r *bookingRepository) ConfirmPending(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'confirmed', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to confirm booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("confirm booking %s: %w", bookingID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

// CancelWithRelease moves the booking to cancelled and returns its seats to
// the departure in one transaction; both commit or neither does.
func (r *bookingRepository) CancelWithRelease(ctx context.Context, bookingID uuid.UUID, reason string, seats int, tourDateID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin cancel booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	cancelQuery := `
		UPDATE bookings
		SET status = 'cancelled', cancellation_reason = $2, cancelled_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status <> 'cancelled'
	`
	result, err := tx.Exec(ctx, cancelQuery, bookingID, reason)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("cancel booking %s: %w", bookingID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found or already cancelled", bookingID.String())
	}

	if _, err := tx.Exec(ctx, releaseSlotsSQL, tourDateID, seats); err != nil {
		r.log.Error("Failed to release slots on cancel",
			zap.Error(err),
			zap.String("tour_date_id", tourDateID.String()),
			zap.Int("seats", seats),
		)
		return fmt.Errorf("release %d slots for cancelled booking %s: %w", seats, bookingID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit cancel booking tx: %w", err)
	}

	r.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.Int("seats_released", seats),
	)
	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}
