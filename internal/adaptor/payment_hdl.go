package adaptor

import (
	"encoding/json"
	"net/http"

	"tour-booking/internal/dto/request"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// CreateIntent handles POST /api/v1/payments/intent
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.CreatePaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	intent, err := h.service.CreatePaymentIntent(r.Context(), userID.String(), &req)
	if err != nil {
		h.log.Warn("Create payment intent failed", zap.Error(err), zap.String("booking_id", req.BookingID))
		handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Payment intent created", intent)
}

// Confirm handles POST /api/v1/payments/confirm
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if verrs := utils.ValidateStruct(&req); verrs != nil {
		utils.ResponseBadRequest(w, "Validation failed", verrs)
		return
	}

	payment, err := h.service.ConfirmPayment(r.Context(), userID.String(), req.IntentID)
	if err != nil {
		h.log.Warn("Confirm payment failed", zap.Error(err), zap.String("intent_id", req.IntentID))
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Payment confirmed", payment)
}

// CreateBankTransfer handles POST /api/v1/payments/bank-transfer
func (h *PaymentHandler) CreateBankTransfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.BankTransferInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	invoice, err := h.service.CreateBankTransferInvoice(r.Context(), userID.String(), &req)
	if err != nil {
		h.log.Warn("Create bank transfer invoice failed", zap.Error(err), zap.String("booking_id", req.BookingID))
		handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Invoice created", invoice)
}

// SubmitReceipt handles POST /api/v1/payments/{id}/receipt
func (h *PaymentHandler) SubmitReceipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.SubmitReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if verrs := utils.ValidateStruct(&req); verrs != nil {
		utils.ResponseBadRequest(w, "Validation failed", verrs)
		return
	}

	paymentID := chi.URLParam(r, "id")
	payment, err := h.service.SubmitReceipt(r.Context(), userID.String(), paymentID, req.ReceiptURL)
	if err != nil {
		h.log.Warn("Submit receipt failed", zap.Error(err), zap.String("payment_id", paymentID))
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Receipt submitted for verification", payment)
}

// GetPayment handles GET /api/v1/payments/{id}
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	paymentID := chi.URLParam(r, "id")
	payment, err := h.service.GetPayment(r.Context(), userID.String(), paymentID, utils.IsAdminContext(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Payment retrieved", payment)
}

// Approve handles POST /api/v1/admin/payments/{id}/approve
func (h *PaymentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "id")

	payment, err := h.service.ApprovePayment(r.Context(), paymentID)
	if err != nil {
		h.log.Warn("Approve payment failed", zap.Error(err), zap.String("payment_id", paymentID))
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Payment approved", payment)
}

// Reject handles POST /api/v1/admin/payments/{id}/reject
func (h *PaymentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req request.RejectPaymentRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if verrs := utils.ValidateStruct(&req); verrs != nil {
		utils.ResponseBadRequest(w, "Validation failed", verrs)
		return
	}

	paymentID := chi.URLParam(r, "id")
	if err := h.service.RejectPayment(r.Context(), paymentID, req.Reason); err != nil {
		h.log.Warn("Reject payment failed", zap.Error(err), zap.String("payment_id", paymentID))
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Payment rejected", nil)
}

// Refund handles POST /api/v1/admin/payments/{id}/refund
func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "id")

	payment, err := h.service.RefundPayment(r.Context(), paymentID)
	if err != nil {
		h.log.Warn("Refund payment failed", zap.Error(err), zap.String("payment_id", paymentID))
		handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Payment refunded", payment)
}
