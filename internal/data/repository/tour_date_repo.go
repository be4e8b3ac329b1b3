package repository

import (
	"context"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Conditional check-and-increment statements. The capacity predicate makes
// concurrent over-reservation impossible without row locks; a zero row
// count means the departure is missing or lacks capacity. Executed by the
// booking repository so creation and cancellation move the counters inside
// their transactions.
const reserveSlotsSQL = `
	UPDATE tour_dates
	SET booked_slots = booked_slots + $2,
	    status = CASE WHEN booked_slots + $2 >= available_slots THEN 'full' ELSE status END,
	    updated_at = NOW()
	WHERE id = $1 AND available_slots - booked_slots >= $2
`

const releaseSlotsSQL = `
	UPDATE tour_dates
	SET booked_slots = GREATEST(booked_slots - $2, 0),
	    status = 'available',
	    updated_at = NOW()
	WHERE id = $1
`

// TourDateRepository reads departure inventory. The capacity counters only
// move through the slot SQL above, inside booking-repository transactions.
type TourDateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TourDate, error)
	FindByTourAndStartDate(ctx context.Context, tourID uuid.UUID, startDate time.Time) (*entity.TourDate, error)
	FindByTourID(ctx context.Context, tourID uuid.UUID) ([]*entity.TourDate, error)
}

type tourDateRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTourDateRepository(db database.PgxIface, log *zap.Logger) TourDateRepository {
	return &tourDateRepository{
		db:  db,
		log: log.With(zap.String("repository", "tour_date")),
	}
}

func (r *tourDateRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TourDate, error) {
	query := `
		SELECT id, tour_id, start_date, end_date, available_slots, booked_slots, status, created_at, updated_at
		FROM tour_dates
		WHERE id = $1
	`

	var date entity.TourDate
	err := r.db.QueryRow(ctx, query, id).Scan(
		&date.ID,
		&date.TourID,
		&date.StartDate,
		&date.EndDate,
		&date.AvailableSlots,
		&date.BookedSlots,
		&date.Status,
		&date.CreatedAt,
		&date.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tour date by ID",
			zap.Error(err),
			zap.String("tour_date_id", id.String()),
		)
		return nil, fmt.Errorf("find tour date by ID %s: %w", id.String(), err)
	}

	return &date, nil
}

func (r *tourDateRepository) FindByTourAndStartDate(ctx context.Context, tourID uuid.UUID, startDate time.Time) (*entity.TourDate, error) {
	query := `
		SELECT id, tour_id, start_date, end_date, available_slots, booked_slots, status, created_at, updated_at
		FROM tour_dates
		WHERE tour_id = $1 AND start_date >= $2 AND start_date < $2 + INTERVAL '1 day'
		ORDER BY start_date
		LIMIT 1
	`

	var date entity.TourDate
	err := r.db.QueryRow(ctx, query, tourID, startDate).Scan(
		&date.ID,
		&date.TourID,
		&date.StartDate,
		&date.EndDate,
		&date.AvailableSlots,
		&date.BookedSlots,
		&date.Status,
		&date.CreatedAt,
		&date.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tour date by start date",
			zap.Error(err),
			zap.String("tour_id", tourID.String()),
			zap.Time("start_date", startDate),
		)
		return nil, fmt.Errorf("find tour date for tour %s: %w", tourID.String(), err)
	}

	return &date, nil
}

func (r *tourDateRepository) FindByTourID(ctx context.Context, tourID uuid.UUID) ([]*entity.TourDate, error) {
	query := `
		SELECT id, tour_id, start_date, end_date, available_slots, booked_slots, status, created_at, updated_at
		FROM tour_dates
		WHERE tour_id = $1
		ORDER BY start_date
	`

	rows, err := r.db.Query(ctx, query, tourID)
	if err != nil {
		r.log.Error("Failed to find tour dates by tour ID",
			zap.Error(err),
			zap.String("tour_id", tourID.String()),
		)
		return nil, fmt.Errorf("find tour dates by tour ID %s: %w", tourID.String(), err)
	}
	defer rows.Close()

	var dates []*entity.TourDate
	for rows.Next() {
		var date entity.TourDate
		err := rows.Scan(
			&date.ID,
			&date.TourID,
			&date.StartDate,
			&date.EndDate,
			&date.AvailableSlots,
			&date.BookedSlots,
			&date.Status,
			&date.CreatedAt,
			&date.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan tour date row", zap.Error(err))
			return nil, fmt.Errorf("scan tour date row: %w", err)
		}
		dates = append(dates, &date)
	}

	return dates, nil
}

