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

// TourRepository reads catalog data. Tours and add-ons are owned by the
// catalog service; this engine never writes them.
type TourRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error)
	FindActiveAddOns(ctx context.Context, tourID uuid.UUID) ([]*entity.TourAddOn, error)
}

type tourRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTourRepository(db database.PgxIface, log *zap.Logger) TourRepository {
	return &tourRepository{
		db:  db,
		log: log.With(zap.String("repository", "tour")),
	}
}

func (r *tourRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error) {
	query := `
		SELECT id, name, price, is_active, created_at, updated_at
		FROM tours
		WHERE id = $1
	`

	var tour entity.Tour
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tour.ID,
		&tour.Name,
		&tour.Price,
		&tour.IsActive,
		&tour.CreatedAt,
		&tour.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tour by ID",
			zap.Error(err),
			zap.String("tour_id", id.String()),
		)
		return nil, fmt.Errorf("find tour by ID %s: %w", id.String(), err)
	}

	return &tour, nil
}

func (r *tourRepository) FindActiveAddOns(ctx context.Context, tourID uuid.UUID) ([]*entity.TourAddOn, error) {
	query := `
		SELECT id, tour_id, name, price, is_active, created_at, updated_at
		FROM tour_add_ons
		WHERE tour_id = $1 AND is_active = true
	`

	rows, err := r.db.Query(ctx, query, tourID)
	if err != nil {
		r.log.Error("Failed to find add-ons by tour ID",
			zap.Error(err),
			zap.String("tour_id", tourID.String()),
		)
		return nil, fmt.Errorf("find add-ons by tour ID %s: %w", tourID.String(), err)
	}
	defer rows.Close()

	var addOns []*entity.TourAddOn
	for rows.Next() {
		var addOn entity.TourAddOn
		err := rows.Scan(
			&addOn.ID,
			&addOn.TourID,
			&addOn.Name,
			&addOn.Price,
			&addOn.IsActive,
			&addOn.CreatedAt,
			&addOn.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan add-on row", zap.Error(err))
			return nil, fmt.Errorf("scan add-on row: %w", err)
		}
		addOns = append(addOns, &addOn)
	}

	return addOns, nil
}
