package adaptor

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"wellness-booking/internal/dto/request"
	"wellness-booking/internal/usecase"
	"wellness-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// webhookBodyLimit caps the Stripe webhook payload read.
const webhookBodyLimit = 1 << 16

type PaymentHandler struct {
	service usecase.PaymentService
	gateway usecase.GatewayService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, gateway usecase.GatewayService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		gateway: gateway,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// CreateCheckout handles POST /api/payments/checkout (public)
func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req request.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	checkout, err := h.gateway.CreateCheckout(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create checkout")
		return
	}

	utils.ResponseCreated(w, "success", checkout)
}

// HandleWebhook handles POST /api/payments/webhook (Stripe only).
// Authentication is the signature check, not a session.
func (h *PaymentHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, webhookBodyLimit))
	if err != nil {
		utils.ResponseBadRequest(w, "Unable to read request body", nil)
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		utils.ResponseUnauthorized(w, "Missing Stripe-Signature header")
		return
	}

	if err := h.gateway.HandleWebhook(r.Context(), payload, signature); err != nil {
		h.handleServiceError(w, err, "handle webhook")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ==================== ADMIN METHODS ====================

// ListPayments handles GET /api/admin/payments (admin only)
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	req := paymentListRequest(r)

	payments, err := h.service.List(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list payments")
		return
	}

	utils.ResponseSuccess(w, "success", payments)
}

// ExportPayments handles GET /api/admin/payments/export (admin only)
func (h *PaymentHandler) ExportPayments(w http.ResponseWriter, r *http.Request) {
	req := paymentListRequest(r)

	data, err := h.service.ExportCSV(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "export payments")
		return
	}

	filename := "payments-" + time.Now().Format("20060102-150405") + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// MarkPaymentStatus handles POST /api/admin/payments/mark-status (admin only)
func (h *PaymentHandler) MarkPaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req request.MarkPaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	var actor *uuid.UUID
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		actor = &userID
	}

	payment, err := h.service.MarkStatus(r.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(w, err, "mark payment status")
		return
	}

	utils.ResponseSuccess(w, "success", payment)
}

func paymentListRequest(r *http.Request) *request.ListPaymentsRequest {
	query := r.URL.Query()

	return &request.ListPaymentsRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		Status:           query.Get("status"),
		BookingType:      query.Get("booking_type"),
		Email:            query.Get("email"),
		From:             query.Get("from"),
		To:               query.Get("to"),
		IncludeCancelled: query.Get("include_cancelled") == "true",
	}
}

// handleServiceError maps service errors for payment operations
func (h *PaymentHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "mismatch"):
		h.log.Warn(operation+" failed - mismatch",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "already paid"):
		h.log.Warn(operation+" failed - already paid",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "unauthorized"):
		h.log.Warn(operation+" failed - unauthorized",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "cannot"):
		h.log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
