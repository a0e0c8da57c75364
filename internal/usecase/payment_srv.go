package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
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

type PaymentService interface {
	List(ctx context.Context, req *request.ListPaymentsRequest) (*response.PaginatedResponse[response.PaymentResponse], error)
	ExportCSV(ctx context.Context, req *request.ListPaymentsRequest) ([]byte, error)

	// MarkStatus is the single write path that moves a payment and its
	// booking together. The Stripe webhook and the admin endpoint both
	// land here.
	MarkStatus(ctx context.Context, actor *uuid.UUID, req *request.MarkPaymentStatusRequest) (*response.PaymentResponse, error)
}

type paymentService struct {
	db       database.PgxIface
	repo     *repository.Repository
	notifier mailer.Notifier
	currency string
	log      *zap.Logger
}

func NewPaymentService(
	db database.PgxIface,
	repo *repository.Repository,
	notifier mailer.Notifier,
	currency string,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		db:       db,
		repo:     repo,
		notifier: notifier,
		currency: currency,
		log:      log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) List(ctx context.Context, req *request.ListPaymentsRequest) (*response.PaginatedResponse[response.PaymentResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filter, err := buildPaymentFilter(req)
	if err != nil {
		return nil, err
	}
	filter.Limit = req.Limit()
	filter.Offset = req.Offset()

	payments, err := s.repo.Payment.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	total, err := s.repo.Payment.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count payments: %w", err)
	}

	paymentResponses := make([]response.PaymentResponse, len(payments))
	for i, payment := range payments {
		paymentResponses[i] = response.PaymentToResponse(payment)
	}

	return response.NewPaginatedResponse(paymentResponses, req.Page, req.PerPage, total), nil
}

func (s *paymentService) ExportCSV(ctx context.Context, req *request.ListPaymentsRequest) ([]byte, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filter, err := buildPaymentFilter(req)
	if err != nil {
		return nil, err
	}
	// Exports are unpaginated.
	filter.Limit = exportRowCap
	filter.Offset = 0

	payments, err := s.repo.Payment.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("export payments: %w", err)
	}

	rows := make([]exportRow, 0, len(payments))
	for _, payment := range payments {
		row := exportRow{payment: payment}
		booking, err := s.repo.Booking.FindByID(ctx, payment.BookingID)
		if err == nil && booking != nil {
			row.reference = booking.Reference
			row.customerName = booking.CustomerName
			row.customerEmail = booking.CustomerEmail
			row.productTitle = booking.ProductTitle
		}
		rows = append(rows, row)
	}

	s.log.Info("Payments exported", zap.Int("rows", len(rows)))

	return renderPaymentsCSV(rows)
}

func (s *paymentService) MarkStatus(ctx context.Context, actor *uuid.UUID, req *request.MarkPaymentStatusRequest) (*response.PaymentResponse, error) {
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

	ledger, err := s.repo.Payment.FindByBooking(ctx, bookingID, bookingType)
	if err != nil {
		return nil, fmt.Errorf("find payment for booking %s: %w", req.BookingID, err)
	}
	if ledger == nil {
		// A booking created before the ledger write succeeded; rebuild the
		// entry from the booking snapshot.
		ledger = rebuildLedgerEntry(booking, s.currency)
	}

	now := time.Now()
	event, err := applyPaymentMark(booking, ledger, req.Status, actor, now)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin payment mark: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.Booking.UpdateStatusIn(ctx, tx, booking); err != nil {
		return nil, err
	}
	if err := s.repo.Payment.UpsertIn(ctx, tx, ledger); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit payment mark: %w", err)
	}

	s.log.Info("Payment status marked",
		zap.String("booking_id", booking.ID.String()),
		zap.String("payment_status", string(ledger.Status)),
		zap.String("booking_status", string(booking.Status)),
	)

	if event != "" {
		s.notifyPayment(booking, event)
	}

	resp := response.PaymentToResponse(ledger)
	return &resp, nil
}

// applyPaymentMark mutates the booking and ledger in memory for the
// requested mark and returns the notification event to fire, if any.
// Kept free of I/O so the status mapping stays directly testable.
func applyPaymentMark(booking *entity.Booking, ledger *entity.Payment, status string, actor *uuid.UUID, now time.Time) (mailer.Event, error) {
	var event mailer.Event

	switch status {
	case "paid":
		if ledger.Status == entity.PaymentStatusPaid {
			return "", fmt.Errorf("payment for booking %s is already paid", booking.ID.String())
		}
		ledger.Status = entity.PaymentStatusPaid
		ledger.CancelledAt = nil
		ledger.CancelledBy = nil
		booking.PaymentStatus = entity.BookingPaymentPaid
		if booking.Status.CanTransition(entity.BookingStatusConfirmed) {
			booking.Status = entity.BookingStatusConfirmed
		}
		event = mailer.EventPaymentReceived

	case "cancelled":
		ledger.Status = entity.PaymentStatusCancelled
		ledger.CancelledAt = &now
		ledger.CancelledBy = actor
		// The mirror returns to pending so the booking stays payable
		// after the cancelled ledger entry.
		booking.PaymentStatus = entity.BookingPaymentPending
		if booking.Status.CanTransition(entity.BookingStatusCancelled) {
			booking.Status = entity.BookingStatusCancelled
		}
		event = mailer.EventBookingCancelled

	case "failed":
		// A failed attempt leaves the ledger open for retry; only the
		// booking mirror records the failure.
		booking.PaymentStatus = entity.BookingPaymentFailed

	default:
		return "", fmt.Errorf("invalid payment status %q", status)
	}

	booking.UpdatedAt = now
	ledger.UpdatedAt = now
	return event, nil
}

// rebuildLedgerEntry derives a pending ledger entry from the booking's
// pricing snapshot.
func rebuildLedgerEntry(booking *entity.Booking, currency string) *entity.Payment {
	now := time.Now()
	return &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:   booking.ID,
		BookingType: booking.ProductType,
		Amount:      booking.TotalAmount,
		Currency:    currency,
		Gateway:     entity.GatewayManual,
		Status:      entity.PaymentStatusPending,
		Breakdown: entity.PaymentBreakdown{
			PricePerPerson:     booking.PricePerPerson,
			Quantity:           booking.Quantity,
			Subtotal:           booking.Subtotal,
			AccommodationTotal: booking.AccommodationTotal,
			Total:              booking.TotalAmount,
		},
	}
}

func (s *paymentService) notifyPayment(booking *entity.Booking, event mailer.Event) {
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

func buildPaymentFilter(req *request.ListPaymentsRequest) (repository.PaymentFilter, error) {
	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return repository.PaymentFilter{}, err
	}

	return repository.PaymentFilter{
		Status:           entity.PaymentStatus(req.Status),
		BookingType:      entity.ProductType(req.BookingType),
		Email:            req.Email,
		From:             from,
		To:               to,
		IncludeCancelled: req.IncludeCancelled,
	}, nil
}

// exportRowCap bounds a single CSV export.
const exportRowCap = 10000

type exportRow struct {
	payment       *entity.Payment
	reference     string
	customerName  string
	customerEmail string
	productTitle  string
}

var exportHeader = []string{
	"payment_id", "booking_reference", "booking_type", "product_title",
	"customer_name", "customer_email",
	"amount", "currency", "gateway", "status", "created_at",
}

func renderPaymentsCSV(rows []exportRow) ([]byte, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("write export header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.payment.ID.String(),
			row.reference,
			string(row.payment.BookingType),
			row.productTitle,
			row.customerName,
			row.customerEmail,
			strconv.FormatFloat(row.payment.Amount, 'f', 2, 64),
			row.payment.Currency,
			string(row.payment.Gateway),
			string(row.payment.Status),
			row.payment.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush export: %w", err)
	}

	return []byte(buf.String()), nil
}
