package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testTour() *entity.Tour {
	return &entity.Tour{
		Base:     entity.Base{ID: uuid.New()},
		Name:     "Bali Highlights",
		Price:    100.00,
		IsActive: true,
	}
}

func testDeparture(tourID uuid.UUID) *entity.TourDate {
	return &entity.TourDate{
		Base:           entity.Base{ID: uuid.New()},
		TourID:         tourID,
		StartDate:      time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
		AvailableSlots: 20,
		BookedSlots:    10,
		Status:         entity.TourDateStatusAvailable,
	}
}

func validCreateRequest(tourID, tourDateID uuid.UUID) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		TourID:     tourID.String(),
		TourDateID: tourDateID.String(),
		Adults:     2,
		Travelers: []request.TravelerRequest{
			{FullName: "Ann Tan", Type: "adult"},
			{FullName: "Ben Tan", Type: "adult"},
		},
	}
}

func TestCreateBookingNew(t *testing.T) {
	m, repo := newTestMocks()
	svc := NewBookingService(repo, zap.NewNop())

	userID := uuid.New()
	tour := testTour()
	departure := testDeparture(tour.ID)
	req := validCreateRequest(tour.ID, departure.ID)

	m.tour.On("FindByID", mock.Anything, tour.ID).Return(tour, nil)
	m.tourDate.On("FindByID", mock.Anything, departure.ID).Return(departure, nil)
	m.booking.On("FindActiveByUserTourDate", mock.Anything, userID, tour.ID, departure.ID).Return(nil, nil)
	m.tour.On("FindActiveAddOns", mock.Anything, tour.ID).Return(nil, nil)
	m.booking.On("CreateWithReservation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.CreateBooking(context.Background(), userID.String(), req)

	require.NoError(t, err)
	assert.Equal(t, 200.00, resp.TotalPrice)
	assert.Equal(t, string(entity.BookingStatusPending), resp.Status)
	assert.Len(t, resp.Travelers, 2)
	assert.NotEmpty(t, resp.BookingNumber)
	m.booking.AssertExpectations(t)
}

func TestCreateBookingReturnsExistingPending(t *testing.T) {
	m, repo := newTestMocks()
	svc := NewBookingService(repo, zap.NewNop())

	userID := uuid.New()
	tour := testTour()
	departure := testDeparture(tour.ID)
	req := validCreateRequest(tour.ID, departure.ID)

	existing := &entity.Booking{
		Base:          entity.Base{ID: uuid.New()},
		BookingNumber: "TRB-20260831-090000-0042",
		UserID:        userID,
		TourID:        tour.ID,
		TourDateID:    departure.ID,
		Adults:        2,
		TotalPrice:    200.00,
		Status:        entity.BookingStatusPending,
	}

	m.tour.On("FindByID", mock.Anything, tour.ID).Return(tour, nil)
	m.tourDate.On("FindByID", mock.Anything, departure.ID).Return(departure, nil)
	m.booking.On("FindActiveByUserTourDate", mock.Anything, userID, tour.ID, departure.ID).Return(existing, nil)
	m.booking.On("FindTravelers", mock.Anything, existing.ID).Return(nil, nil)
	m.booking.On("FindAddOns", mock.Anything, existing.ID).Return(nil, nil)

	resp, err := svc.CreateBooking(context.Background(), userID.String(), req)

	require.NoError(t, err)
	assert.Equal(t, existing.BookingNumber, resp.BookingNumber)
	m.booking.AssertNotCalled(t, "CreateWithReservation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBookingConfirmedConflict(t *testing.T) {
	m, repo := newTestMocks()
	svc := NewBookingService(repo, zap.NewNop())

	userID := uuid.New()
	tour := testTour()
	departure := testDeparture(tour.ID)
	req := validCreateRequest(tour.ID, departure.ID)

	existing := &entity.Booking{
		Base:   entity.Base{ID: uuid.New()},
		UserID: userID,
		Status: entity.BookingStatusConfirmed,
	}

	m.tour.On("FindByID", mock.Anything, tour.ID).Return(tour, nil)
	m.tourDate.On("FindByID", mock.Anything, departure.ID).Return(departure, nil)
	m.booking.On("FindActiveByUserTourDate", mock.Anything, userID, tour.ID, departure.ID).Return(existing, nil)

	_, err := svc.CreateBooking(context.Background(), userID.String(), req)

	assert.ErrorIs(t, err, ErrAlreadyBooked)
}

func TestCreateBookingInsufficientCapacity(t *testing.T) {
	m, repo := newTestMocks()
	svc := NewBookingService(repo, zap.NewNop())

	userID := uuid.New()
	tour := testTour()
	departure := testDeparture(tour.ID)
	departure.BookedSlots = 19 // one seat left

	req := validCreateRequest(tour.ID, departure.ID)

	m.tour.On("FindByID", mock.Anything, tour.ID).Return(tour, nil)
	m.tourDate.On("FindByID", mock.Anything, departure.ID).Return(departure, nil)
	m.booking.On("FindActiveByUserTourDate", mock.Anything, userID, tour.ID, departure.ID).Return(nil, nil)

	_, err := svc.CreateBooking(context.Background(), userID.String(), req)

	assert.ErrorIs(t, err, ErrInsufficientCapacity)
	m.booking.AssertNotCalled(t, "CreateWithReservation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBookingLosesRaceToDuplicate(t *testing.T) {
	m, repo := newTestMocks()
	svc := NewBookingService(repo, zap.NewNop())

	userID := uuid.New()
	tour := testTour()
	departure := testDeparture(tour.ID)
	req := validCreateRequest(tour.ID, departure.ID)

	winner := &entity.Booking{
		Base:          entity.Base{ID: uuid.New()},
		BookingNumber: "TRB-20260831-090001-0001",
		UserID:        userID,
		TourID:        tour.ID,
		TourDateID:    departure.ID,
		Status:        entity.BookingStatusPending,
	}

	m.tour.On("FindByID", mock.Anything, tour.ID).Return(tour, nil)
	m.tourDate.On("FindByID", mock.Anything, departure.ID).Return(departure, nil)
	// First lookup sees nothing; after losing the insert race the winner row
	// is visible.
	m.booking.On("FindActiveByUserTourDate", mock.Anything, userID, tour.ID, departure.ID).Return(nil, nil).Once()
	m.tour.On("FindActiveAddOns", mock.Anything, tour.ID).Return(nil, nil)
	m.booking.On("CreateWithReservation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(fmt.Errorf("create booking: %w", repository.ErrDuplicateBooking))
	m.booking.On("FindActiveByUserTourDate", mock.Anything, userID, tour.ID, departure.ID).Return(winner, nil).Once()
	m.booking.On("FindTravelers", mock.Anything, winner.ID).Return(nil, nil)
	m.booking.On("FindAddOns", mock.Anything, winner.ID).Return(nil, nil)

	resp, err := svc.CreateBooking(context.Background(), userID.String(), req)

	require.NoError(t, err)
	assert.Equal(t, winner.BookingNumber, resp.BookingNumber)
}

func TestCreateBookingTravelerCountMismatch(t *testing.T) {
	_, repo := newTestMocks()
	svc := NewBookingService(repo, zap.NewNop())

	tourID := uuid.New()
	req := validCreateRequest(tourID, uuid.New())
	req.Adults = 3 // three declared, two listed

	_, err := svc.CreateBooking(context.Background(), uuid.New().String(), req)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCancelBooking(t *testing.T) {
	t.Run("owner cancels and seats are released", func(t *testing.T) {
		m, repo := newTestMocks()
		svc := NewBookingService(repo, zap.NewNop())

		userID := uuid.New()
		booking := &entity.Booking{
			Base:       entity.Base{ID: uuid.New()},
			UserID:     userID,
			TourDateID: uuid.New(),
			Adults:     2,
			Children:   2,
			Status:     entity.BookingStatusConfirmed,
		}

		m.booking.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
		m.booking.On("CancelWithRelease", mock.Anything, booking.ID, "illness", 4, booking.TourDateID).Return(nil)

		err := svc.CancelBooking(context.Background(), userID.String(), booking.ID.String(), "illness", false)

		require.NoError(t, err)
		m.booking.AssertExpectations(t)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		m, repo := newTestMocks()
		svc := NewBookingService(repo, zap.NewNop())

		booking := &entity.Booking{
			Base:   entity.Base{ID: uuid.New()},
			UserID: uuid.New(),
			Status: entity.BookingStatusPending,
		}

		m.booking.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

		err := svc.CancelBooking(context.Background(), uuid.New().String(), booking.ID.String(), "", false)

		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("cancelling twice is a conflict", func(t *testing.T) {
		m, repo := newTestMocks()
		svc := NewBookingService(repo, zap.NewNop())

		userID := uuid.New()
		booking := &entity.Booking{
			Base:   entity.Base{ID: uuid.New()},
			UserID: userID,
			Status: entity.BookingStatusCancelled,
		}

		m.booking.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

		err := svc.CancelBooking(context.Background(), userID.String(), booking.ID.String(), "", false)

		assert.ErrorIs(t, err, ErrAlreadyCancelled)
		m.booking.AssertNotCalled(t, "CancelWithRelease", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetBookingOwnership(t *testing.T) {
	m, repo := newTestMocks()
	svc := NewBookingService(repo, zap.NewNop())

	owner := uuid.New()
	booking := &entity.Booking{
		Base:   entity.Base{ID: uuid.New()},
		UserID: owner,
		Status: entity.BookingStatusPending,
	}
	m.booking.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	m.booking.On("FindTravelers", mock.Anything, booking.ID).Return(nil, nil)
	m.booking.On("FindAddOns", mock.Anything, booking.ID).Return(nil, nil)
	m.payment.On("FindByBookingID", mock.Anything, booking.ID).Return(nil, nil)

	t.Run("stranger is rejected", func(t *testing.T) {
		_, err := svc.GetBooking(context.Background(), uuid.New().String(), booking.ID.String(), false)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("admin bypasses ownership", func(t *testing.T) {
		resp, err := svc.GetBooking(context.Background(), uuid.New().String(), booking.ID.String(), true)
		require.NoError(t, err)
		assert.Equal(t, booking.ID.String(), resp.ID)
	})
}
