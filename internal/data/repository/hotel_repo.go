package repository

import (
	"context"
	"fmt"

	"wellness-booking/internal/data/entity"
	"wellness-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type HotelRepository interface {
	Create(ctx context.Context, hotel *entity.PartnerHotel) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PartnerHotel, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*entity.PartnerHotel, error)
	Update(ctx context.Context, hotel *entity.PartnerHotel) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindMatch returns the cheapest active hotel matching the filter.
	// Zero-value location / starRating mean "any".
	FindMatch(ctx context.Context, location string, starRating int) (*entity.PartnerHotel, error)
}

type hotelRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHotelRepository(db database.PgxIface, log *zap.Logger) HotelRepository {
	return &hotelRepository{
		db:  db,
		log: log.With(zap.String("repository", "hotel")),
	}
}

const hotelColumns = `id, name, location, star_rating, price_per_night, is_active, created_at, updated_at`

func scanHotel(row pgx.Row) (*entity.PartnerHotel, error) {
	var h entity.PartnerHotel
	err := row.Scan(
		&h.ID,
		&h.Name,
		&h.Location,
		&h.StarRating,
		&h.PricePerNight,
		&h.IsActive,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *hotelRepository) Create(ctx context.Context, hotel *entity.PartnerHotel) error {
	query := `
		INSERT INTO partner_hotels (id, name, location, star_rating, price_per_night, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		hotel.ID,
		hotel.Name,
		hotel.Location,
		hotel.StarRating,
		hotel.PricePerNight,
		hotel.IsActive,
		hotel.CreatedAt,
		hotel.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create hotel",
			zap.Error(err),
			zap.String("name", hotel.Name),
		)
		return fmt.Errorf("create hotel %s: %w", hotel.Name, err)
	}

	return nil
}

func (r *hotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PartnerHotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM partner_hotels WHERE id = $1`

	hotel, err := scanHotel(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hotel by ID",
			zap.Error(err),
			zap.String("hotel_id", id.String()),
		)
		return nil, fmt.Errorf("find hotel by ID %s: %w", id.String(), err)
	}

	return hotel, nil
}

func (r *hotelRepository) FindAll(ctx context.Context, activeOnly bool) ([]*entity.PartnerHotel, error) {
	query := `
		SELECT ` + hotelColumns + `
		FROM partner_hotels
		WHERE ($1 = false OR is_active = true)
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, activeOnly)
	if err != nil {
		r.log.Error("Failed to list hotels", zap.Error(err))
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	defer rows.Close()

	var hotels []*entity.PartnerHotel
	for rows.Next() {
		hotel, err := scanHotel(rows)
		if err != nil {
			r.log.Error("Failed to scan hotel row", zap.Error(err))
			return nil, fmt.Errorf("scan hotel row: %w", err)
		}
		hotels = append(hotels, hotel)
	}

	return hotels, nil
}

func (r *hotelRepository) Update(ctx context.Context, hotel *entity.PartnerHotel) error {
	query := `
		UPDATE partner_hotels
		SET name = $2, location = $3, star_rating = $4, price_per_night = $5,
		    is_active = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		hotel.ID,
		hotel.Name,
		hotel.Location,
		hotel.StarRating,
		hotel.PricePerNight,
		hotel.IsActive,
		hotel.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update hotel",
			zap.Error(err),
			zap.String("hotel_id", hotel.ID.String()),
		)
		return fmt.Errorf("update hotel %s: %w", hotel.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("hotel %s not found", hotel.ID.String())
	}

	return nil
}

func (r *hotelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM partner_hotels WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete hotel",
			zap.Error(err),
			zap.String("hotel_id", id.String()),
		)
		return fmt.Errorf("delete hotel %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("hotel %s not found", id.String())
	}

	r.log.Info("Hotel deleted", zap.String("hotel_id", id.String()))
	return nil
}

func (r *hotelRepository) FindMatch(ctx context.Context, location string, starRating int) (*entity.PartnerHotel, error) {
	query := `
		SELECT ` + hotelColumns + `
		FROM partner_hotels
		WHERE is_active = true
		  AND ($1 = '' OR location = $1)
		  AND ($2 = 0 OR star_rating = $2)
		ORDER BY price_per_night ASC
		LIMIT 1
	`

	hotel, err := scanHotel(r.db.QueryRow(ctx, query, location, starRating))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to match hotel",
			zap.Error(err),
			zap.String("location", location),
			zap.Int("star_rating", starRating),
		)
		return nil, fmt.Errorf("match hotel location=%s stars=%d: %w", location, starRating, err)
	}

	return hotel, nil
}
