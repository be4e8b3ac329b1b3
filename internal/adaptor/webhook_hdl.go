package adaptor

import (
	"errors"
	"io"
	"net/http"

	"tour-booking/internal/usecase"
	"tour-booking/pkg/payments"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

// maxWebhookBody caps the payload read from the processor.
const maxWebhookBody = 64 << 10

// WebhookHandler receives processor event deliveries. The raw body must be
// read before any decoding because the signature covers the exact bytes.
type WebhookHandler struct {
	service   usecase.PaymentService
	processor payments.Processor
	log       *zap.Logger
}

func NewWebhookHandler(service usecase.PaymentService, processor payments.Processor, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service:   service,
		processor: processor,
		log:       log.With(zap.String("handler", "webhook")),
	}
}

// HandleEvent handles POST /api/v1/webhooks/payments
func (h *WebhookHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		utils.ResponseBadRequest(w, "Failed to read payload", nil)
		return
	}

	event, err := h.processor.ConstructEvent(payload, r.Header.Get("Processor-Signature"))
	if err != nil {
		h.log.Warn("Rejected webhook delivery",
			zap.Error(err),
			zap.String("remote_addr", r.RemoteAddr),
		)
		if errors.Is(err, payments.ErrInvalidSignature) ||
			errors.Is(err, payments.ErrSignatureTooOld) ||
			errors.Is(err, payments.ErrMalformedSigHeader) {
			utils.ResponseBadRequest(w, "Invalid signature", nil)
			return
		}
		utils.ResponseBadRequest(w, "Invalid payload", nil)
		return
	}

	if err := h.service.HandleProcessorEvent(r.Context(), event); err != nil {
		// Non-2xx makes the processor redeliver; transitions are
		// conditional so the retry is safe.
		h.log.Error("Failed to apply processor event",
			zap.Error(err),
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type),
		)
		utils.ResponseInternalError(w, "Event processing failed")
		return
	}

	utils.ResponseSuccess(w, "Event received", nil)
}
