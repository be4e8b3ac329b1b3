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
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// CreateBooking is idempotent per (user, tour, departure): a repeated
	// request while an active booking exists returns that booking instead
	// of reserving seats twice.
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, userID, bookingID string, isAdmin bool) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, page request.PaginatedRequest) (*response.PaginatedResponse, error)
	CancelBooking(ctx context.Context, userID, bookingID, reason string, isAdmin bool) error
	GetDepartures(ctx context.Context, tourID string) ([]*response.TourDateResponse, error)
	UpdateStatus(ctx context.Context, bookingID, status string) error
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if verrs := utils.ValidateStruct(req); verrs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(verrs))
	}

	userUUID, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	tourID, err := utils.ParseUUID(req.TourID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid tour id", ErrValidation)
	}

	if len(req.Travelers) != req.Adults+req.Children+req.Infants {
		return nil, fmt.Errorf("%w: traveler list does not match the declared party size", ErrValidation)
	}

	tour, err := s.repo.Tour.FindByID(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if tour == nil || !tour.IsActive {
		return nil, ErrTourNotFound
	}

	departure, err := s.resolveDeparture(ctx, tourID, req)
	if err != nil {
		return nil, err
	}

	// Idempotency fast path: an active booking for the same departure is
	// returned as-is, with only the deposit election refreshed while it is
	// still pending.
	existing, err := s.repo.Booking.FindActiveByUserTourDate(ctx, userUUID, tourID, departure.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.reuseExistingBooking(ctx, existing, req)
	}

	seats := req.Adults + req.Children + req.Infants
	if departure.RemainingSlots() < seats {
		return nil, fmt.Errorf("departure %s has %d remaining slots, need %d: %w",
			departure.ID.String(), departure.RemainingSlots(), seats, ErrInsufficientCapacity)
	}

	addOns, err := s.repo.Tour.FindActiveAddOns(ctx, tourID)
	if err != nil {
		return nil, err
	}
	quote := CalculatePrice(tour.Price, seats, addOns, req.AddOns)

	depositAmount, remainingBalance, err := resolveDeposit(req.IsDepositPayment, req.DepositAmount, quote.Total)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingNumber:    utils.GenerateBookingNumber(),
		UserID:           userUUID,
		TourID:           tourID,
		TourDateID:       departure.ID,
		Adults:           req.Adults,
		Children:         req.Children,
		Infants:          req.Infants,
		FlightIncluded:   req.FlightIncluded,
		TotalPrice:       quote.Total,
		AddOnsTotal:      quote.AddOnsTotal,
		IsDepositPayment: req.IsDepositPayment,
		DepositAmount:    depositAmount,
		RemainingBalance: remainingBalance,
		Status:           entity.BookingStatusPending,
		SpecialRequests:  req.SpecialRequests,
	}

	travelers := make([]*entity.Traveler, 0, len(req.Travelers))
	for _, t := range req.Travelers {
		travelers = append(travelers, &entity.Traveler{
			BaseSimple: entity.BaseSimple{
				ID:        utils.GenerateUUID(),
				CreatedAt: now,
			},
			BookingID:      booking.ID,
			FullName:       t.FullName,
			Type:           entity.TravelerType(t.Type),
			PassportNumber: t.PassportNumber,
		})
	}

	bookingAddOns := make([]*entity.BookingAddOn, 0, len(quote.AddOns))
	for _, a := range quote.AddOns {
		a.BaseSimple = entity.BaseSimple{ID: utils.GenerateUUID(), CreatedAt: now}
		a.BookingID = booking.ID
		bookingAddOns = append(bookingAddOns, a)
	}

	err = s.repo.Booking.CreateWithReservation(ctx, booking, travelers, bookingAddOns)
	if errors.Is(err, repository.ErrDuplicateBooking) {
		// Lost the unique index race to a concurrent identical request.
		// Its row is the canonical booking now.
		s.log.Info("Duplicate booking request resolved to existing booking",
			zap.String("user_id", userID),
			zap.String("tour_date_id", departure.ID.String()),
		)
		winner, findErr := s.repo.Booking.FindActiveByUserTourDate(ctx, userUUID, tourID, departure.ID)
		if findErr != nil {
			return nil, findErr
		}
		if winner == nil {
			return nil, err
		}
		return s.buildBookingResponse(ctx, winner)
	}
	if errors.Is(err, repository.ErrInsufficientCapacity) {
		return nil, fmt.Errorf("departure %s: %w", departure.ID.String(), ErrInsufficientCapacity)
	}
	if err != nil {
		return nil, err
	}

	resp := response.NewBookingResponse(booking)
	resp.WithTravelers(travelers)
	resp.WithAddOns(bookingAddOns)
	return resp, nil
}

// resolveDeparture locates the departure by explicit id or by start date.
func (s *bookingService) resolveDeparture(ctx context.Context, tourID uuid.UUID, req *request.CreateBookingRequest) (*entity.TourDate, error) {
	if req.TourDateID != "" {
		tourDateID, err := utils.ParseUUID(req.TourDateID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid tour date id", ErrValidation)
		}
		departure, err := s.repo.TourDate.FindByID(ctx, tourDateID)
		if err != nil {
			return nil, err
		}
		if departure == nil || departure.TourID != tourID {
			return nil, ErrDepartureNotFound
		}
		return departure, nil
	}

	if req.StartDate == "" {
		return nil, fmt.Errorf("%w: tour_date_id or start_date is required", ErrValidation)
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date", ErrValidation)
	}
	departure, err := s.repo.TourDate.FindByTourAndStartDate(ctx, tourID, startDate)
	if err != nil {
		return nil, err
	}
	if departure == nil {
		return nil, ErrDepartureNotFound
	}
	return departure, nil
}

func (s *bookingService) reuseExistingBooking(ctx context.Context, existing *entity.Booking, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if existing.Status == entity.BookingStatusConfirmed {
		return nil, fmt.Errorf("booking %s is confirmed: %w", existing.BookingNumber, ErrAlreadyBooked)
	}

	depositAmount, remainingBalance, err := resolveDeposit(req.IsDepositPayment, req.DepositAmount, existing.TotalPrice)
	if err != nil {
		return nil, err
	}

	if existing.IsDepositPayment != req.IsDepositPayment || !floatPtrEqual(existing.DepositAmount, depositAmount) {
		if err := s.repo.Booking.UpdateDepositElection(ctx, existing.ID, req.IsDepositPayment, depositAmount, remainingBalance); err != nil {
			return nil, err
		}
		existing.IsDepositPayment = req.IsDepositPayment
		existing.DepositAmount = depositAmount
		existing.RemainingBalance = remainingBalance
	}

	s.log.Info("Returning existing pending booking for repeated request",
		zap.String("booking_number", existing.BookingNumber),
	)
	return s.buildBookingResponse(ctx, existing)
}

// resolveDeposit validates a deposit election against the booking total.
func resolveDeposit(isDeposit bool, deposit *float64, total float64) (depositAmount, remainingBalance *float64, err error) {
	if !isDeposit {
		return nil, nil, nil
	}
	if deposit == nil {
		return nil, nil, fmt.Errorf("%w: deposit_amount is required for a deposit payment", ErrValidation)
	}
	if *deposit <= 0 || *deposit > total {
		return nil, nil, fmt.Errorf("%w: deposit must be positive and no more than the total price", ErrValidation)
	}
	remaining := round2(total - *deposit)
	return deposit, &remaining, nil
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID string, isAdmin bool) (*response.BookingResponse, error) {
	id, err := utils.ParseUUID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id", ErrValidation)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if !isAdmin && booking.UserID.String() != userID {
		return nil, ErrNotAuthorized
	}

	resp, err := s.buildBookingResponse(ctx, booking)
	if err != nil {
		return nil, err
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if payment != nil {
		resp.Payment = response.NewPaymentResponse(payment)
	}

	return resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, page request.PaginatedRequest) (*response.PaginatedResponse, error) {
	userUUID, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	items := make([]*response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		items = append(items, response.NewBookingResponse(booking))
	}

	return &response.PaginatedResponse{
		Items: items,
		Pagination: response.Pagination{
			Page:       page.Page,
			PerPage:    page.Limit(),
			TotalItems: int(total),
			TotalPages: utils.CalculateTotalPages(total, page.Limit()),
		},
	}, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID, reason string, isAdmin bool) error {
	id, err := utils.ParseUUID(bookingID)
	if err != nil {
		return fmt.Errorf("%w: invalid booking id", ErrValidation)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	if !isAdmin && booking.UserID.String() != userID {
		return ErrNotAuthorized
	}
	if booking.Status == entity.BookingStatusCancelled {
		return fmt.Errorf("booking %s: %w", booking.BookingNumber, ErrAlreadyCancelled)
	}
	if !booking.Status.CanTransitionTo(entity.BookingStatusCancelled) {
		return fmt.Errorf("booking %s is %s: %w", booking.BookingNumber, booking.Status, ErrAlreadyCancelled)
	}

	if err := s.repo.Booking.CancelWithRelease(ctx, booking.ID, reason, booking.NumberOfTravelers(), booking.TourDateID); err != nil {
		return err
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_number", booking.BookingNumber),
		zap.String("cancelled_by", userID),
		zap.Bool("by_admin", isAdmin),
	)
	return nil
}

func (s *bookingService) GetDepartures(ctx context.Context, tourID string) ([]*response.TourDateResponse, error) {
	id, err := utils.ParseUUID(tourID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid tour id", ErrValidation)
	}

	tour, err := s.repo.Tour.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tour == nil || !tour.IsActive {
		return nil, ErrTourNotFound
	}

	dates, err := s.repo.TourDate.FindByTourID(ctx, id)
	if err != nil {
		return nil, err
	}

	responses := make([]*response.TourDateResponse, 0, len(dates))
	for _, date := range dates {
		responses = append(responses, response.NewTourDateResponse(date))
	}
	return responses, nil
}

// UpdateStatus is the admin override; it still honors the state machine.
func (s *bookingService) UpdateStatus(ctx context.Context, bookingID, status string) error {
	id, err := utils.ParseUUID(bookingID)
	if err != nil {
		return fmt.Errorf("%w: invalid booking id", ErrValidation)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	next := entity.BookingStatus(status)
	if booking.Status == next {
		return nil
	}
	if !booking.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: cannot move booking from %s to %s", ErrValidation, booking.Status, next)
	}

	if next == entity.BookingStatusCancelled {
		return s.repo.Booking.CancelWithRelease(ctx, booking.ID, "cancelled by admin", booking.NumberOfTravelers(), booking.TourDateID)
	}
	return s.repo.Booking.UpdateStatus(ctx, booking.ID, next)
}

func (s *bookingService) buildBookingResponse(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	travelers, err := s.repo.Booking.FindTravelers(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	addOns, err := s.repo.Booking.FindAddOns(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	resp := response.NewBookingResponse(booking)
	resp.WithTravelers(travelers)
	resp.WithAddOns(addOns)
	return resp, nil
}
