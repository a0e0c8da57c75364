package repository

import (
	"context"
	"fmt"
	"time"

	"wellness-booking/internal/data/entity"
	"wellness-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingFilter narrows admin listings. Zero values mean "any".
type BookingFilter struct {
	Status      entity.BookingStatus
	ProductType entity.ProductType
	Email       string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByReference(ctx context.Context, reference string) (*entity.Booking, error)
	FindAll(ctx context.Context, filter BookingFilter) ([]*entity.Booking, error)
	Count(ctx context.Context, filter BookingFilter) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateStatusIn runs against any executor so the write can share a
	// transaction with the payment ledger.
	UpdateStatusIn(ctx context.Context, db database.Executor, booking *entity.Booking) error
	UpdateIn(ctx context.Context, db database.Executor, booking *entity.Booking) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, reference, product_id, product_type, product_title,
	customer_name, customer_email, customer_phone, country,
	preferred_date, quantity,
	price_per_person, subtotal, accommodation_total, total_amount,
	accommodation_mode, accommodation_selected, hotel_id, nights, price_per_night,
	status, payment_status, source, admin_message, notes, created_by,
	created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.ProductID,
		&b.ProductType,
		&b.ProductTitle,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.Country,
		&b.PreferredDate,
		&b.Quantity,
		&b.PricePerPerson,
		&b.Subtotal,
		&b.AccommodationTotal,
		&b.TotalAmount,
		&b.AccommodationMode,
		&b.AccommodationSelected,
		&b.HotelID,
		&b.Nights,
		&b.PricePerNight,
		&b.Status,
		&b.PaymentStatus,
		&b.Source,
		&b.AdminMessage,
		&b.Notes,
		&b.CreatedBy,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, reference, product_id, product_type, product_title,
			customer_name, customer_email, customer_phone, country,
			preferred_date, quantity,
			price_per_person, subtotal, accommodation_total, total_amount,
			accommodation_mode, accommodation_selected, hotel_id, nights, price_per_night,
			status, payment_status, source, admin_message, notes, created_by,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Reference,
		booking.ProductID,
		booking.ProductType,
		booking.ProductTitle,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.Country,
		booking.PreferredDate,
		booking.Quantity,
		booking.PricePerPerson,
		booking.Subtotal,
		booking.AccommodationTotal,
		booking.TotalAmount,
		booking.AccommodationMode,
		booking.AccommodationSelected,
		booking.HotelID,
		booking.Nights,
		booking.PricePerNight,
		booking.Status,
		booking.PaymentStatus,
		booking.Source,
		booking.AdminMessage,
		booking.Notes,
		booking.CreatedBy,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
			zap.String("customer_email", booking.CustomerEmail),
		)
		return fmt.Errorf("create booking %s: %w", booking.Reference, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE reference = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, reference))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by reference",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return nil, fmt.Errorf("find booking by reference %s: %w", reference, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR product_type = $2)
		  AND ($3 = '' OR customer_email = $3)
		  AND ($4::timestamptz IS NULL OR created_at >= $4)
		  AND ($5::timestamptz IS NULL OR created_at <= $5)
		ORDER BY created_at DESC
		LIMIT $6 OFFSET $7
	`

	rows, err := r.db.Query(ctx, query,
		string(filter.Status),
		string(filter.ProductType),
		filter.Email,
		filter.From,
		filter.To,
		filter.Limit,
		filter.Offset,
	)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context, filter BookingFilter) (int64, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR product_type = $2)
		  AND ($3 = '' OR customer_email = $3)
		  AND ($4::timestamptz IS NULL OR created_at >= $4)
		  AND ($5::timestamptz IS NULL OR created_at <= $5)
	`

	var count int64
	err := r.db.QueryRow(ctx, query,
		string(filter.Status),
		string(filter.ProductType),
		filter.Email,
		filter.From,
		filter.To,
	).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	return r.UpdateIn(ctx, r.db, booking)
}

func (r *bookingRepository) UpdateIn(ctx context.Context, db database.Executor, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET customer_name = $2, customer_email = $3, customer_phone = $4, country = $5,
		    preferred_date = $6, quantity = $7,
		    price_per_person = $8, subtotal = $9, accommodation_total = $10, total_amount = $11,
		    accommodation_mode = $12, accommodation_selected = $13, hotel_id = $14,
		    nights = $15, price_per_night = $16,
		    status = $17, payment_status = $18, source = $19,
		    admin_message = $20, notes = $21, updated_at = $22
		WHERE id = $1
	`

	result, err := db.Exec(ctx, query,
		booking.ID,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.Country,
		booking.PreferredDate,
		booking.Quantity,
		booking.PricePerPerson,
		booking.Subtotal,
		booking.AccommodationTotal,
		booking.TotalAmount,
		booking.AccommodationMode,
		booking.AccommodationSelected,
		booking.HotelID,
		booking.Nights,
		booking.PricePerNight,
		booking.Status,
		booking.PaymentStatus,
		booking.Source,
		booking.AdminMessage,
		booking.Notes,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

func (r *bookingRepository) UpdateStatusIn(ctx context.Context, db database.Executor, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, payment_status = $3, preferred_date = $4,
		    admin_message = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := db.Exec(ctx, query,
		booking.ID,
		booking.Status,
		booking.PaymentStatus,
		booking.PreferredDate,
		booking.AdminMessage,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("status", string(booking.Status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", booking.ID.String(), string(booking.Status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}
