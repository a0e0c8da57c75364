package usecase

import (
	"wellness-booking/internal/data/repository"
	"wellness-booking/pkg/database"
	"wellness-booking/pkg/mailer"
	"wellness-booking/pkg/utils"

	"go.uber.org/zap"
)

// Service bundles all use cases for wiring.
type Service struct {
	Auth    AuthService
	Catalog CatalogService
	Booking BookingService
	Payment PaymentService
	Gateway GatewayService
}

func NewService(
	db database.PgxIface,
	repo *repository.Repository,
	notifier mailer.Notifier,
	cfg *utils.Config,
	log *zap.Logger,
) *Service {
	pricing := NewPricingResolver(repo.Hotel, cfg.Pricing.HospitalNightlyRate, log)
	payment := NewPaymentService(db, repo, notifier, cfg.Pricing.Currency, log)

	return &Service{
		Auth:    NewAuthService(repo, cfg.App.BootstrapToken, cfg.Session.ExpiryHours, log),
		Catalog: NewCatalogService(repo, log),
		Booking: NewBookingService(db, repo, pricing, notifier, cfg.Pricing.Currency, log),
		Payment: payment,
		Gateway: NewGatewayService(repo, payment, cfg.Stripe, cfg.Pricing.Currency, log),
	}
}
