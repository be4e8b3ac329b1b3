package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func PaymentRoutes(r chi.Router, h *adaptor.Handler, repo *repository.Repository, log *zap.Logger) {
	r.Route("/payments", func(pr chi.Router) {
		pr.Use(middleware.AuthSession(repo.Session, log))

		pr.Post("/intent", h.Payment.CreateIntent)
		pr.Post("/confirm", h.Payment.Confirm)
		pr.Post("/bank-transfer", h.Payment.CreateBankTransfer)
		pr.Post("/{id}/receipt", h.Payment.SubmitReceipt)
		pr.Get("/{id}", h.Payment.GetPayment)
	})

	r.Route("/admin/payments", func(ar chi.Router) {
		ar.Use(middleware.AuthSession(repo.Session, log))
		ar.Use(middleware.Admin(repo.User, log))

		ar.Get("/{id}", h.Payment.GetPayment)
		ar.Post("/{id}/approve", h.Payment.Approve)
		ar.Post("/{id}/reject", h.Payment.Reject)
		ar.Post("/{id}/refund", h.Payment.Refund)
	})
}

// WebhookRoutes are unauthenticated; the signature check inside the handler
// is the authentication.
func WebhookRoutes(r chi.Router, h *adaptor.Handler) {
	r.Post("/webhooks/payments", h.Webhook.HandleEvent)
}
