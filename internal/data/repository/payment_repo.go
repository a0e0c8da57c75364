package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wellness-booking/internal/data/entity"
	"wellness-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PaymentFilter narrows ledger listings. Cancelled entries are excluded
// unless IncludeCancelled is set.
type PaymentFilter struct {
	Status           entity.PaymentStatus
	BookingType      entity.ProductType
	Email            string
	From             *time.Time
	To               *time.Time
	IncludeCancelled bool
	Limit            int
	Offset           int
}

type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByBooking(ctx context.Context, bookingID uuid.UUID, bookingType entity.ProductType) (*entity.Payment, error)
	FindAll(ctx context.Context, filter PaymentFilter) ([]*entity.Payment, error)
	Count(ctx context.Context, filter PaymentFilter) (int64, error)
	DeleteByBooking(ctx context.Context, bookingID uuid.UUID, bookingType entity.ProductType) error

	// Upsert is idempotent on (booking_id, booking_type): one ledger entry
	// per booking, latest field values win.
	Upsert(ctx context.Context, payment *entity.Payment) error
	UpsertIn(ctx context.Context, db database.Executor, payment *entity.Payment) error
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, booking_id, booking_type, amount, currency, gateway, status,
	breakdown, checkout_session_id, checkout_url, cancelled_at, cancelled_by,
	created_at, updated_at`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	var breakdown []byte
	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.BookingType,
		&p.Amount,
		&p.Currency,
		&p.Gateway,
		&p.Status,
		&breakdown,
		&p.CheckoutSessionID,
		&p.CheckoutURL,
		&p.CancelledAt,
		&p.CancelledBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &p.Breakdown); err != nil {
			return nil, fmt.Errorf("decode payment breakdown: %w", err)
		}
	}
	return &p, nil
}

func (r *paymentRepository) Upsert(ctx context.Context, payment *entity.Payment) error {
	return r.UpsertIn(ctx, r.db, payment)
}

func (r *paymentRepository) UpsertIn(ctx context.Context, db database.Executor, payment *entity.Payment) error {
	breakdown, err := json.Marshal(payment.Breakdown)
	if err != nil {
		return fmt.Errorf("encode payment breakdown: %w", err)
	}

	query := `
		INSERT INTO payments (id, booking_id, booking_type, amount, currency, gateway, status,
			breakdown, checkout_session_id, checkout_url, cancelled_at, cancelled_by,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (booking_id, booking_type) DO UPDATE
		SET amount = EXCLUDED.amount,
		    currency = EXCLUDED.currency,
		    gateway = EXCLUDED.gateway,
		    status = EXCLUDED.status,
		    breakdown = EXCLUDED.breakdown,
		    checkout_session_id = EXCLUDED.checkout_session_id,
		    checkout_url = EXCLUDED.checkout_url,
		    cancelled_at = EXCLUDED.cancelled_at,
		    cancelled_by = EXCLUDED.cancelled_by,
		    updated_at = EXCLUDED.updated_at
	`

	_, err = db.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.BookingType,
		payment.Amount,
		payment.Currency,
		payment.Gateway,
		payment.Status,
		breakdown,
		payment.CheckoutSessionID,
		payment.CheckoutURL,
		payment.CancelledAt,
		payment.CancelledBy,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert payment",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
			zap.String("booking_type", string(payment.BookingType)),
		)
		return fmt.Errorf("upsert payment for booking %s: %w", payment.BookingID.String(), err)
	}

	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByBooking(ctx context.Context, bookingID uuid.UUID, bookingType entity.ProductType) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 AND booking_type = $2`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, bookingID, bookingType))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payment by booking %s: %w", bookingID.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindAll(ctx context.Context, filter PaymentFilter) ([]*entity.Payment, error) {
	query := `
		SELECT ` + qualifiedPaymentColumns + `
		FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE ($1 = '' OR p.status = $1)
		  AND ($2 = '' OR p.booking_type = $2)
		  AND ($3 = '' OR b.customer_email = $3)
		  AND ($4::timestamptz IS NULL OR p.created_at >= $4)
		  AND ($5::timestamptz IS NULL OR p.created_at <= $5)
		  AND ($6 = true OR p.status <> 'cancelled')
		ORDER BY p.created_at DESC
		LIMIT $7 OFFSET $8
	`

	rows, err := r.db.Query(ctx, query,
		string(filter.Status),
		string(filter.BookingType),
		filter.Email,
		filter.From,
		filter.To,
		filter.IncludeCancelled,
		filter.Limit,
		filter.Offset,
	)
	if err != nil {
		r.log.Error("Failed to list payments", zap.Error(err))
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, nil
}

const qualifiedPaymentColumns = `p.id, p.booking_id, p.booking_type, p.amount, p.currency, p.gateway, p.status,
	p.breakdown, p.checkout_session_id, p.checkout_url, p.cancelled_at, p.cancelled_by,
	p.created_at, p.updated_at`

func (r *paymentRepository) Count(ctx context.Context, filter PaymentFilter) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE ($1 = '' OR p.status = $1)
		  AND ($2 = '' OR p.booking_type = $2)
		  AND ($3 = '' OR b.customer_email = $3)
		  AND ($4::timestamptz IS NULL OR p.created_at >= $4)
		  AND ($5::timestamptz IS NULL OR p.created_at <= $5)
		  AND ($6 = true OR p.status <> 'cancelled')
	`

	var count int64
	err := r.db.QueryRow(ctx, query,
		string(filter.Status),
		string(filter.BookingType),
		filter.Email,
		filter.From,
		filter.To,
		filter.IncludeCancelled,
	).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count payments", zap.Error(err))
		return 0, fmt.Errorf("count payments: %w", err)
	}

	return count, nil
}

func (r *paymentRepository) DeleteByBooking(ctx context.Context, bookingID uuid.UUID, bookingType entity.ProductType) error {
	query := `DELETE FROM payments WHERE booking_id = $1 AND booking_type = $2`

	_, err := r.db.Exec(ctx, query, bookingID, bookingType)
	if err != nil {
		r.log.Error("Failed to delete payment by booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("delete payment for booking %s: %w", bookingID.String(), err)
	}

	return nil
}
