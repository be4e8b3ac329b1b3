package wire

import (
	"net/http"

	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/database"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/notify"
	"tour-booking/pkg/payments"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SetupRouter wires repositories, services and handlers and mounts every
// route group on a chi router.
func SetupRouter(db database.PgxIface, cfg *utils.Config, log *zap.Logger, processor payments.Processor, notifier notify.Notifier) *chi.Mux {
	repo := repository.NewRepository(db, log)
	service := usecase.NewService(repo, processor, notifier, cfg, log)
	handler := adaptor.NewHandler(service, processor, log)

	r := chi.NewRouter()
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			utils.ResponseInternalError(w, "database unreachable")
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	})

	r.Route("/api/v1", func(api chi.Router) {
		TourRoutes(api, handler)
		WebhookRoutes(api, handler)
		BookingRoutes(api, handler, repo, log)
		PaymentRoutes(api, handler, repo, log)
	})

	return r
}
