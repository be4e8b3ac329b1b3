package usecase

import (
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/notify"
	"tour-booking/pkg/payments"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking BookingService
	Payment PaymentService
}

func NewService(repo *repository.Repository, processor payments.Processor, notifier notify.Notifier, cfg *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Booking: NewBookingService(repo, log),
		Payment: NewPaymentService(repo, processor, notifier, cfg.Payments, log),
	}
}
