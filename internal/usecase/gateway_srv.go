package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"wellness-booking/internal/data/entity"
	"wellness-booking/internal/data/repository"
	"wellness-booking/internal/dto/request"
	"wellness-booking/internal/dto/response"
	"wellness-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/zap"
)

// GatewayService drives the Stripe hosted-checkout flow. Only the signed
// webhook ever marks a payment paid; the redirect URLs carry no trust.
type GatewayService interface {
	CreateCheckout(ctx context.Context, req *request.CheckoutRequest) (*response.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type gatewayService struct {
	repo     *repository.Repository
	payments PaymentService
	cfg      utils.StripeConfig
	currency string
	log      *zap.Logger
}

func NewGatewayService(
	repo *repository.Repository,
	payments PaymentService,
	cfg utils.StripeConfig,
	currency string,
	log *zap.Logger,
) GatewayService {
	stripe.Key = cfg.SecretKey

	return &gatewayService{
		repo:     repo,
		payments: payments,
		cfg:      cfg,
		currency: currency,
		log:      log.With(zap.String("service", "gateway")),
	}
}

func (s *gatewayService) CreateCheckout(ctx context.Context, req *request.CheckoutRequest) (*response.CheckoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", req.BookingID, err)
	}
	bookingType := entity.ProductType(req.ProductType)

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil || booking == nil {
		return nil, fmt.Errorf("booking %s not found", req.BookingID)
	}
	if booking.ProductType != bookingType {
		return nil, fmt.Errorf("booking type mismatch: booking %s is %s", req.BookingID, booking.ProductType)
	}
	if booking.Status == entity.BookingStatusCancelled {
		return nil, fmt.Errorf("cannot pay a cancelled booking")
	}
	if booking.PaymentStatus == entity.BookingPaymentPaid {
		return nil, fmt.Errorf("booking %s is already paid", req.BookingID)
	}

	// Charge the stored snapshot, never a client-supplied amount.
	amount := booking.TotalAmount
	if amount <= 0 {
		return nil, fmt.Errorf("cannot create checkout for non-positive amount %.2f", amount)
	}
	unitAmount := int64(math.Round(amount * 100))

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(booking.ProductTitle),
						Description: stripe.String(fmt.Sprintf("Booking %s", booking.Reference)),
					},
					UnitAmount: stripe.Int64(unitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		ClientReferenceID: stripe.String(booking.ID.String()),
		CustomerEmail:     stripe.String(booking.CustomerEmail),
		SuccessURL:        stripe.String(s.cfg.SuccessURL),
		CancelURL:         stripe.String(s.cfg.CancelURL),
		Metadata: map[string]string{
			"booking_type": string(booking.ProductType),
			"reference":    booking.Reference,
		},
	}

	sess, err := session.New(params)
	if err != nil {
		s.log.Error("Failed to create checkout session",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return nil, fmt.Errorf("create checkout session for booking %s: %w", req.BookingID, err)
	}

	ledger, err := s.repo.Payment.FindByBooking(ctx, booking.ID, booking.ProductType)
	if err != nil {
		return nil, fmt.Errorf("find payment for booking %s: %w", req.BookingID, err)
	}
	if ledger == nil {
		ledger = rebuildLedgerEntry(booking, s.currency)
	}
	ledger.Gateway = entity.GatewayStripe
	ledger.Status = entity.PaymentStatusPending
	ledger.CheckoutSessionID = &sess.ID
	ledger.CheckoutURL = &sess.URL

	if err := s.repo.Payment.Upsert(ctx, ledger); err != nil {
		return nil, err
	}

	s.log.Info("Checkout session created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("session_id", sess.ID),
		zap.Float64("amount", amount),
	)

	return &response.CheckoutResponse{URL: sess.URL}, nil
}

func (s *gatewayService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.cfg.WebhookSecret)
	if err != nil {
		s.log.Warn("Webhook signature verification failed", zap.Error(err))
		return fmt.Errorf("unauthorized webhook: %w", err)
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("decode checkout session event: %w", err)
		}
		return s.completeCheckout(ctx, &sess)

	default:
		s.log.Debug("Ignoring webhook event", zap.String("type", string(event.Type)))
		return nil
	}
}

func (s *gatewayService) completeCheckout(ctx context.Context, sess *stripe.CheckoutSession) error {
	bookingID := sess.ClientReferenceID
	bookingType := sess.Metadata["booking_type"]
	if bookingID == "" || bookingType == "" {
		return fmt.Errorf("checkout session %s missing booking reference", sess.ID)
	}

	s.log.Info("Checkout session completed",
		zap.String("session_id", sess.ID),
		zap.String("booking_id", bookingID),
	)

	_, err := s.payments.MarkStatus(ctx, nil, &request.MarkPaymentStatusRequest{
		BookingID:   bookingID,
		ProductType: bookingType,
		Status:      "paid",
	})
	if err != nil {
		// Stripe redelivers events until it sees a 2xx; a payment that is
		// already settled must acknowledge instead of erroring.
		if strings.Contains(err.Error(), "already paid") {
			s.log.Info("Checkout event redelivered for settled payment",
				zap.String("session_id", sess.ID),
				zap.String("booking_id", bookingID),
			)
			return nil
		}

		s.log.Error("Failed to settle completed checkout",
			zap.Error(err),
			zap.String("session_id", sess.ID),
			zap.String("booking_id", bookingID),
		)
		return err
	}

	return nil
}
