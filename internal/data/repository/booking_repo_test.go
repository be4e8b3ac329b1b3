package repository

import (
	"context"
	"testing"
	"time"

	"tour-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func newBookingRepoTest(t *testing.T) (BookingRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewBookingRepository(mock, zap.NewNop()), mock
}

func testBooking() (*entity.Booking, []*entity.Traveler, []*entity.BookingAddOn) {
	now := time.Now()
	booking := &entity.Booking{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		BookingNumber: "TRB-20260831-120000-0001",
		UserID:        uuid.New(),
		TourID:        uuid.New(),
		TourDateID:    uuid.New(),
		Adults:        2,
		Children:      1,
		TotalPrice:    320.00,
		Status:        entity.BookingStatusPending,
	}
	travelers := []*entity.Traveler{
		{BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now}, BookingID: booking.ID, FullName: "Ann Tan", Type: entity.TravelerTypeAdult},
		{BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now}, BookingID: booking.ID, FullName: "Ben Tan", Type: entity.TravelerTypeAdult},
		{BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now}, BookingID: booking.ID, FullName: "Cal Tan", Type: entity.TravelerTypeChild},
	}
	addOns := []*entity.BookingAddOn{
		{BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now}, BookingID: booking.ID, AddOnID: uuid.New(), Name: "Airport pickup", UnitPrice: 20.00, Quantity: 1},
	}
	return booking, travelers, addOns
}

func TestCreateWithReservation(t *testing.T) {
	t.Run("commits reservation, booking, travelers and add-ons together", func(t *testing.T) {
		repo, mock := newBookingRepoTest(t)
		booking, travelers, addOns := testBooking()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE tour_dates").
			WithArgs(booking.TourDateID, 3).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec("INSERT INTO bookings").
			WithArgs(anyArgs(20)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		for range travelers {
			mock.ExpectExec("INSERT INTO travelers").
				WithArgs(anyArgs(6)...).
				WillReturnResult(pgxmock.NewResult("INSERT", 1))
		}
		mock.ExpectExec("INSERT INTO booking_add_ons").
			WithArgs(anyArgs(7)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		err := repo.CreateWithReservation(context.Background(), booking, travelers, addOns)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the departure lacks capacity", func(t *testing.T) {
		repo, mock := newBookingRepoTest(t)
		booking, travelers, addOns := testBooking()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE tour_dates").
			WithArgs(booking.TourDateID, 3).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		err := repo.CreateWithReservation(context.Background(), booking, travelers, addOns)

		assert.ErrorIs(t, err, ErrInsufficientCapacity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps unique violation to duplicate booking and undoes the reservation", func(t *testing.T) {
		repo, mock := newBookingRepoTest(t)
		booking, travelers, addOns := testBooking()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE tour_dates").
			WithArgs(booking.TourDateID, 3).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec("INSERT INTO bookings").
			WithArgs(anyArgs(20)...).
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})
		mock.ExpectRollback()

		err := repo.CreateWithReservation(context.Background(), booking, travelers, addOns)

		assert.ErrorIs(t, err, ErrDuplicateBooking)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConfirmPending(t *testing.T) {
	t.Run("confirms a pending booking", func(t *testing.T) {
		repo, mock := newBookingRepoTest(t)
		bookingID := uuid.New()

		mock.ExpectExec("UPDATE bookings").
			WithArgs(bookingID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		confirmed, err := repo.ConfirmPending(context.Background(), bookingID)

		require.NoError(t, err)
		assert.True(t, confirmed)
	})

	t.Run("is a no-op when the booking already left pending", func(t *testing.T) {
		repo, mock := newBookingRepoTest(t)
		bookingID := uuid.New()

		mock.ExpectExec("UPDATE bookings").
			WithArgs(bookingID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		confirmed, err := repo.ConfirmPending(context.Background(), bookingID)

		require.NoError(t, err)
		assert.False(t, confirmed)
	})
}

func TestCancelWithRelease(t *testing.T) {
	t.Run("cancels and releases seats in one transaction", func(t *testing.T) {
		repo, mock := newBookingRepoTest(t)
		bookingID := uuid.New()
		tourDateID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE bookings").
			WithArgs(bookingID, "change of plans").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec("UPDATE tour_dates").
			WithArgs(tourDateID, 4).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		err := repo.CancelWithRelease(context.Background(), bookingID, "change of plans", 4, tourDateID)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the booking is already cancelled", func(t *testing.T) {
		repo, mock := newBookingRepoTest(t)
		bookingID := uuid.New()
		tourDateID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE bookings").
			WithArgs(bookingID, "").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		err := repo.CancelWithRelease(context.Background(), bookingID, "", 4, tourDateID)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
