package usecase

import (
	"context"
	"fmt"
	"time"

	"wellness-booking/internal/data/entity"
	"wellness-booking/internal/data/repository"
	"wellness-booking/internal/dto/request"
	"wellness-booking/internal/dto/response"
	"wellness-booking/pkg/database"
	"wellness-booking/pkg/mailer"
	"wellness-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Public
	Create(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	// Admin
	List(ctx context.Context, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	UpdateDetails(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	Delete(ctx context.Context, bookingID string) error
}

type bookingService struct {
	db       database.PgxIface
	repo     *repository.Repository
	pricing  *PricingResolver
	notifier mailer.Notifier
	currency string
	log      *zap.Logger
}

func NewBookingService(
	db database.PgxIface,
	repo *repository.Repository,
	pricing *PricingResolver,
	notifier mailer.Notifier,
	currency string,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		db:       db,
		repo:     repo,
		pricing:  pricing,
		notifier: notifier,
		currency: currency,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Create(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product ID format %s: %w", req.ProductID, err)
	}

	program, err := s.repo.Program.FindByID(ctx, productID)
	if err != nil || program == nil {
		return nil, fmt.Errorf("program %s not found", req.ProductID)
	}
	if !program.IsActive {
		return nil, fmt.Errorf("cannot book inactive program %s", program.Slug)
	}
	if string(program.Type) != req.ProductType {
		return nil, fmt.Errorf("invalid product type %s for program %s", req.ProductType, program.Slug)
	}

	preferredDate, err := parsePreferredDate(req.PreferredDate)
	if err != nil {
		return nil, err
	}

	quote, err := s.pricing.Resolve(ctx, program, QuoteInput{
		Quantity:       req.Quantity,
		PricePerPerson: req.PricePerPerson,
		ExpectedTotal:  req.TotalAmount,
		Accommodation:  req.Accommodation,
	})
	if err != nil {
		return nil, err
	}

	source := entity.SourceOnline
	if req.Source != "" {
		source = entity.BookingSource(req.Source)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference:    utils.GenerateBookingRef(),
		ProductID:    program.ID,
		ProductType:  program.Type,
		ProductTitle: program.Title,

		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Country:       req.Country,

		PreferredDate: preferredDate,
		Quantity:      req.Quantity,

		Status:        entity.BookingStatusPending,
		PaymentStatus: entity.BookingPaymentPending,
		Source:        source,
		Notes:         req.Notes,
	}
	applyQuote(booking, quote)

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	payment := s.ledgerEntryFor(booking, entity.GatewayManual, entity.PaymentStatusPending)
	if err := s.repo.Payment.Upsert(ctx, payment); err != nil {
		// Booking exists without a ledger entry; the next status or
		// payment write re-upserts it.
		s.log.Error("Failed to upsert payment after booking create",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("product_type", string(booking.ProductType)),
		zap.Int("quantity", booking.Quantity),
		zap.Float64("total_amount", booking.TotalAmount),
	)

	s.notify(booking, mailer.EventBookingReceived)

	paymentResp := response.PaymentToResponse(payment)
	resp := response.BookingToResponse(booking, &paymentResp)
	return &resp, nil
}

func (s *bookingService) List(ctx context.Context, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	filter := repository.BookingFilter{
		Status:      entity.BookingStatus(req.Status),
		ProductType: entity.ProductType(req.ProductType),
		Email:       req.Email,
		From:        from,
		To:          to,
		Limit:       req.Limit(),
		Offset:      req.Offset(),
	}

	bookings, err := s.repo.Booking.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		var paymentResp *response.PaymentResponse
		payment, _ := s.repo.Payment.FindByBooking(ctx, booking.ID, booking.ProductType)
		if payment != nil {
			p := response.PaymentToResponse(payment)
			paymentResp = &p
		}
		bookingResponses[i] = response.BookingToResponse(booking, paymentResp)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	var paymentResp *response.PaymentResponse
	payment, _ := s.repo.Payment.FindByBooking(ctx, booking.ID, booking.ProductType)
	if payment != nil {
		p := response.PaymentToResponse(payment)
		paymentResp = &p
	}

	resp := response.BookingToResponse(booking, paymentResp)
	return &resp, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	target := entity.BookingStatus(req.Status)
	if !booking.Status.CanTransition(target) {
		return nil, fmt.Errorf("cannot transition booking from %s to %s", booking.Status, target)
	}

	switch target {
	case entity.BookingStatusRescheduled:
		if req.PreferredDate == nil {
			return nil, fmt.Errorf("validation failed: preferred_date is required to reschedule")
		}
	case entity.BookingStatusCancelled:
		if req.AdminMessage == nil || *req.AdminMessage == "" {
			return nil, fmt.Errorf("validation failed: admin_message is required to cancel")
		}
	}

	if req.PreferredDate != nil {
		preferredDate, err := parsePreferredDate(req.PreferredDate)
		if err != nil {
			return nil, err
		}
		booking.PreferredDate = preferredDate
	}
	if req.AdminMessage != nil {
		booking.AdminMessage = req.AdminMessage
	}
	booking.Status = target
	if target == entity.BookingStatusCancelled {
		// Same rule as the payment chokepoint: the ledger entry is
		// cancelled but the mirror stays pending, keeping the booking
		// payable if it is later re-confirmed.
		booking.PaymentStatus = entity.BookingPaymentPending
	}
	booking.UpdatedAt = time.Now()

	// Booking and ledger move together or not at all.
	payment, _ := s.repo.Payment.FindByBooking(ctx, booking.ID, booking.ProductType)
	ledger := s.ledgerEntryFor(booking, entity.GatewayManual, entity.PaymentStatusPending)
	if payment != nil {
		ledger.Base = payment.Base
		ledger.Gateway = payment.Gateway
		ledger.Status = payment.Status
		ledger.CheckoutSessionID = payment.CheckoutSessionID
		ledger.CheckoutURL = payment.CheckoutURL
	}
	if target == entity.BookingStatusCancelled {
		now := time.Now()
		ledger.Status = entity.PaymentStatusCancelled
		ledger.CancelledAt = &now
	}
	ledger.UpdatedAt = booking.UpdatedAt

	if err := s.syncBookingAndLedger(ctx, booking, ledger, true); err != nil {
		return nil, err
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(booking.Status)),
	)

	switch target {
	case entity.BookingStatusConfirmed:
		s.notify(booking, mailer.EventBookingConfirmed)
	case entity.BookingStatusCancelled:
		s.notify(booking, mailer.EventBookingCancelled)
	case entity.BookingStatusRescheduled:
		s.notify(booking, mailer.EventBookingRescheduled)
	}

	ledgerResp := response.PaymentToResponse(ledger)
	resp := response.BookingToResponse(booking, &ledgerResp)
	return &resp, nil
}

func (s *bookingService) UpdateDetails(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	program, err := s.repo.Program.FindByID(ctx, booking.ProductID)
	if err != nil || program == nil {
		return nil, fmt.Errorf("program %s not found", booking.ProductID.String())
	}

	preferredDate, err := parsePreferredDate(req.PreferredDate)
	if err != nil {
		return nil, err
	}

	quote, err := s.pricing.Resolve(ctx, program, QuoteInput{
		Quantity:       req.Quantity,
		PricePerPerson: req.PricePerPerson,
		ExpectedTotal:  req.TotalAmount,
		Accommodation:  req.Accommodation,
		Force:          req.Force,
	})
	if err != nil {
		return nil, err
	}

	booking.CustomerName = req.CustomerName
	booking.CustomerEmail = req.CustomerEmail
	booking.CustomerPhone = req.CustomerPhone
	booking.Country = req.Country
	booking.PreferredDate = preferredDate
	booking.Quantity = req.Quantity
	booking.Notes = req.Notes
	if req.Source != "" {
		booking.Source = entity.BookingSource(req.Source)
	}
	applyQuote(booking, quote)
	booking.UpdatedAt = time.Now()

	payment, _ := s.repo.Payment.FindByBooking(ctx, booking.ID, booking.ProductType)
	ledger := s.ledgerEntryFor(booking, entity.GatewayManual, entity.PaymentStatusPending)
	if payment != nil {
		ledger.Base = payment.Base
		ledger.Gateway = payment.Gateway
		ledger.Status = payment.Status
		ledger.CheckoutSessionID = payment.CheckoutSessionID
		ledger.CheckoutURL = payment.CheckoutURL
		ledger.CancelledAt = payment.CancelledAt
		ledger.CancelledBy = payment.CancelledBy
	}
	ledger.UpdatedAt = booking.UpdatedAt

	if err := s.syncBookingAndLedger(ctx, booking, ledger, false); err != nil {
		return nil, err
	}

	s.log.Info("Booking details updated",
		zap.String("booking_id", booking.ID.String()),
		zap.Float64("total_amount", booking.TotalAmount),
		zap.Bool("forced", req.Force),
	)

	ledgerResp := response.PaymentToResponse(ledger)
	resp := response.BookingToResponse(booking, &ledgerResp)
	return &resp, nil
}

func (s *bookingService) Delete(ctx context.Context, bookingID string) error {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.repo.Booking.Delete(ctx, booking.ID); err != nil {
		return fmt.Errorf("delete booking %s: %w", bookingID, err)
	}

	// Ledger cleanup is best-effort; an orphaned entry is harmless and
	// excluded from listings once the booking join fails.
	if err := s.repo.Payment.DeleteByBooking(ctx, booking.ID, booking.ProductType); err != nil {
		s.log.Warn("Failed to delete payment for removed booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	s.log.Info("Booking removed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
	)

	return nil
}

// ==================== HELPERS ====================

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil || booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	return booking, nil
}

// syncBookingAndLedger writes the booking and its ledger entry in one
// transaction. statusOnly selects the narrow status update statement.
func (s *bookingService) syncBookingAndLedger(ctx context.Context, booking *entity.Booking, ledger *entity.Payment, statusOnly bool) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking sync: %w", err)
	}
	defer tx.Rollback(ctx)

	if statusOnly {
		err = s.repo.Booking.UpdateStatusIn(ctx, tx, booking)
	} else {
		err = s.repo.Booking.UpdateIn(ctx, tx, booking)
	}
	if err != nil {
		return err
	}

	if err := s.repo.Payment.UpsertIn(ctx, tx, ledger); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking sync: %w", err)
	}

	return nil
}

// ledgerEntryFor builds a fresh ledger entry snapshotting the booking's
// pricing breakdown.
func (s *bookingService) ledgerEntryFor(booking *entity.Booking, gateway entity.PaymentGateway, status entity.PaymentStatus) *entity.Payment {
	return &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: booking.UpdatedAt,
			UpdatedAt: booking.UpdatedAt,
		},
		BookingID:   booking.ID,
		BookingType: booking.ProductType,
		Amount:      booking.TotalAmount,
		Currency:    s.currency,
		Gateway:     gateway,
		Status:      status,
		Breakdown: entity.PaymentBreakdown{
			PricePerPerson:     booking.PricePerPerson,
			Quantity:           booking.Quantity,
			Subtotal:           booking.Subtotal,
			AccommodationTotal: booking.AccommodationTotal,
			Total:              booking.TotalAmount,
		},
	}
}

// notify fires the email in the background; delivery failures only log.
func (s *bookingService) notify(booking *entity.Booking, event mailer.Event) {
	msg := mailer.Message{
		To:           booking.CustomerEmail,
		Event:        event,
		CustomerName: booking.CustomerName,
		Reference:    booking.Reference,
		ProductTitle: booking.ProductTitle,
		TotalAmount:  booking.TotalAmount,
		Currency:     s.currency,
	}
	if booking.PreferredDate != nil {
		msg.PreferredDate = booking.PreferredDate.Format("2006-01-02")
	}
	if booking.AdminMessage != nil {
		msg.AdminMessage = *booking.AdminMessage
	}

	go func() {
		if err := s.notifier.Send(context.Background(), msg); err != nil {
			s.log.Warn("Notification send failed",
				zap.Error(err),
				zap.String("event", string(event)),
				zap.String("booking_id", booking.ID.String()),
			)
		}
	}()
}

func applyQuote(booking *entity.Booking, quote *Quote) {
	booking.PricePerPerson = quote.PricePerPerson
	booking.Subtotal = quote.Subtotal
	booking.AccommodationTotal = quote.AccommodationTotal
	booking.TotalAmount = quote.Total
	booking.AccommodationMode = quote.AccommodationMode
	booking.AccommodationSelected = quote.AccommodationSelected
	booking.HotelID = quote.HotelID
	booking.Nights = quote.Nights
	booking.PricePerNight = quote.PricePerNight
}

func parsePreferredDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, fmt.Errorf("invalid preferred date %q, expected YYYY-MM-DD", *raw)
	}
	return &t, nil
}

func parseDateRange(fromRaw, toRaw string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromRaw != "" {
		t, err := time.Parse("2006-01-02", fromRaw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid from date %q, expected YYYY-MM-DD", fromRaw)
		}
		from = &t
	}
	if toRaw != "" {
		t, err := time.Parse("2006-01-02", toRaw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid to date %q, expected YYYY-MM-DD", toRaw)
		}
		// Inclusive end of day.
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}
