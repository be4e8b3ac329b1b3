package usecase

import (
	"context"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/notify"
	"tour-booking/pkg/payments"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}

type mockTourRepo struct{ mock.Mock }

func (m *mockTourRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tour), args.Error(1)
}

func (m *mockTourRepo) FindActiveAddOns(ctx context.Context, tourID uuid.UUID) ([]*entity.TourAddOn, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.TourAddOn), args.Error(1)
}

type mockTourDateRepo struct{ mock.Mock }

func (m *mockTourDateRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.TourDate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TourDate), args.Error(1)
}

func (m *mockTourDateRepo) FindByTourAndStartDate(ctx context.Context, tourID uuid.UUID, startDate time.Time) (*entity.TourDate, error) {
	args := m.Called(ctx, tourID, startDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TourDate), args.Error(1)
}

func (m *mockTourDateRepo) FindByTourID(ctx context.Context, tourID uuid.UUID) ([]*entity.TourDate, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.TourDate), args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) CreateWithReservation(ctx context.Context, booking *entity.Booking, travelers []*entity.Traveler, addOns []*entity.BookingAddOn) error {
	return m.Called(ctx, booking, travelers, addOns).Error(0)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindActiveByUserTourDate(ctx context.Context, userID, tourID, tourDateID uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, userID, tourID, tourDateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) FindTravelers(ctx context.Context, bookingID uuid.UUID) ([]*entity.Traveler, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Traveler), args.Error(1)
}

func (m *mockBookingRepo) FindAddOns(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingAddOn, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BookingAddOn), args.Error(1)
}

func (m *mockBookingRepo) UpdateDepositElection(ctx context.Context, bookingID uuid.UUID, isDeposit bool, depositAmount, remainingBalance *float64) error {
	return m.Called(ctx, bookingID, isDeposit, depositAmount, remainingBalance).Error(0)
}

func (m *mockBookingRepo) ConfirmPending(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) CancelWithRelease(ctx context.Context, bookingID uuid.UUID, reason string, seats int, tourDateID uuid.UUID) error {
	return m.Called(ctx, bookingID, reason, seats, tourDateID).Error(0)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	return m.Called(ctx, bookingID, status).Error(0)
}

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *mockPaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *mockPaymentRepo) FindByIntentID(ctx context.Context, intentID string) (*entity.Payment, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *mockPaymentRepo) Upsert(ctx context.Context, payment *entity.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *mockPaymentRepo) MarkCompletedByIntentID(ctx context.Context, intentID string) (bool, error) {
	args := m.Called(ctx, intentID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPaymentRepo) MarkFailedByIntentID(ctx context.Context, intentID string) (bool, error) {
	args := m.Called(ctx, intentID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPaymentRepo) CompleteAndConfirm(ctx context.Context, intentID string, bookingID uuid.UUID) (bool, error) {
	args := m.Called(ctx, intentID, bookingID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPaymentRepo) SetReceipt(ctx context.Context, paymentID uuid.UUID, receiptURL string) (bool, error) {
	args := m.Called(ctx, paymentID, receiptURL)
	return args.Bool(0), args.Error(1)
}

func (m *mockPaymentRepo) UpdateStatus(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus) error {
	return m.Called(ctx, paymentID, status).Error(0)
}

func (m *mockPaymentRepo) ApproveAndConfirm(ctx context.Context, paymentID, bookingID uuid.UUID) (bool, error) {
	args := m.Called(ctx, paymentID, bookingID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPaymentRepo) RejectAwaiting(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	args := m.Called(ctx, paymentID)
	return args.Bool(0), args.Error(1)
}

type mockProcessor struct{ mock.Mock }

func (m *mockProcessor) CreateIntent(ctx context.Context, params payments.CreateIntentParams) (*payments.Intent, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Intent), args.Error(1)
}

func (m *mockProcessor) GetIntent(ctx context.Context, intentID string) (*payments.Intent, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Intent), args.Error(1)
}

func (m *mockProcessor) UpdateIntentAmount(ctx context.Context, intentID string, amount int64) (*payments.Intent, error) {
	args := m.Called(ctx, intentID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Intent), args.Error(1)
}

func (m *mockProcessor) CancelIntent(ctx context.Context, intentID string) (*payments.Intent, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Intent), args.Error(1)
}

func (m *mockProcessor) CreateCustomer(ctx context.Context, email, name string) (*payments.Customer, error) {
	args := m.Called(ctx, email, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Customer), args.Error(1)
}

func (m *mockProcessor) CreateInvoice(ctx context.Context, customerID string, amount int64, currency string, metadata map[string]string) (*payments.Invoice, error) {
	args := m.Called(ctx, customerID, amount, currency, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Invoice), args.Error(1)
}

func (m *mockProcessor) CreateRefund(ctx context.Context, intentID string) (*payments.Refund, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Refund), args.Error(1)
}

func (m *mockProcessor) ConstructEvent(payload []byte, sigHeader string) (*payments.Event, error) {
	args := m.Called(payload, sigHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Event), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Send(ctx context.Context, msg notify.Message) error {
	return m.Called(ctx, msg).Error(0)
}

// testMocks bundles every mock behind a wired *repository.Repository.
type testMocks struct {
	user     *mockUserRepo
	session  *mockSessionRepo
	tour     *mockTourRepo
	tourDate *mockTourDateRepo
	booking  *mockBookingRepo
	payment  *mockPaymentRepo

	processor *mockProcessor
	notifier  *mockNotifier
}

func newTestMocks() (*testMocks, *repository.Repository) {
	m := &testMocks{
		user:      new(mockUserRepo),
		session:   new(mockSessionRepo),
		tour:      new(mockTourRepo),
		tourDate:  new(mockTourDateRepo),
		booking:   new(mockBookingRepo),
		payment:   new(mockPaymentRepo),
		processor: new(mockProcessor),
		notifier:  new(mockNotifier),
	}
	repo := &repository.Repository{
		User:     m.user,
		Session:  m.session,
		Tour:     m.tour,
		TourDate: m.tourDate,
		Booking:  m.booking,
		Payment:  m.payment,
	}
	return m, repo
}
