package adaptor

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tour-booking/internal/usecase"
	"tour-booking/pkg/payments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubPaymentService records delivered events; the embedded interface covers
// the methods this handler never touches.
type stubPaymentService struct {
	usecase.PaymentService
	events []*payments.Event
}

func (s *stubPaymentService) HandleProcessorEvent(_ context.Context, event *payments.Event) error {
	s.events = append(s.events, event)
	return nil
}

func TestWebhookHandleEvent(t *testing.T) {
	const secret = "whsec_test"
	client := payments.NewClient("sk_test", secret)
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","metadata":{"booking_id":"b-1"}}}}`)

	newRequest := func(body []byte, sig string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payments", bytes.NewReader(body))
		req.Header.Set("Processor-Signature", sig)
		return req
	}

	t.Run("valid delivery is applied and acknowledged", func(t *testing.T) {
		service := &stubPaymentService{}
		handler := NewWebhookHandler(service, client, zap.NewNop())

		rec := httptest.NewRecorder()
		sig := payments.SignPayload(secret, time.Now().Unix(), payload)
		handler.HandleEvent(rec, newRequest(payload, sig))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, service.events, 1)
		assert.Equal(t, "evt_1", service.events[0].ID)
		assert.Equal(t, "pi_1", service.events[0].Data.Object.ID)
	})

	t.Run("bad signature is rejected before the service sees it", func(t *testing.T) {
		service := &stubPaymentService{}
		handler := NewWebhookHandler(service, client, zap.NewNop())

		rec := httptest.NewRecorder()
		sig := payments.SignPayload("whsec_wrong", time.Now().Unix(), payload)
		handler.HandleEvent(rec, newRequest(payload, sig))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, service.events)
	})

	t.Run("stale signature is rejected", func(t *testing.T) {
		service := &stubPaymentService{}
		handler := NewWebhookHandler(service, client, zap.NewNop())

		rec := httptest.NewRecorder()
		sig := payments.SignPayload(secret, time.Now().Add(-time.Hour).Unix(), payload)
		handler.HandleEvent(rec, newRequest(payload, sig))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, service.events)
	})
}
