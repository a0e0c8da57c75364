package wire

import (
	"wellness-booking/internal/adaptor"
	"wellness-booking/internal/data/repository"
	"wellness-booking/pkg/middleware"
	"wellness-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/payments/checkout - Start a hosted checkout for a booking
	r.Post("/api/payments/checkout", paymentHandler.CreateCheckout)

	// POST /api/payments/webhook - Stripe event sink, signature-verified
	r.Post("/api/payments/webhook", paymentHandler.HandleWebhook)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/payments", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		// GET /api/admin/payments - List the ledger with filters
		r.Get("/", paymentHandler.ListPayments)

		// GET /api/admin/payments/export - CSV export of the ledger
		r.Get("/export", paymentHandler.ExportPayments)

		// POST /api/admin/payments/mark-status - Settle or cancel manually
		r.Post("/mark-status", paymentHandler.MarkPaymentStatus)
	})
}
