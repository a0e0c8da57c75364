package response

import (
	"time"

	"wellness-booking/internal/data/entity"
)

type ProgramResponse struct {
	ID             string             `json:"id"`
	Type           entity.ProductType `json:"type"`
	Title          string             `json:"title"`
	Slug           string             `json:"slug"`
	Description    string             `json:"description,omitempty"`
	Price          float64            `json:"price"`
	DurationNights int                `json:"duration_nights"`
	IsActive       bool               `json:"is_active"`
	CreatedAt      time.Time          `json:"created_at"`
}

func ProgramToResponse(p *entity.Program) ProgramResponse {
	return ProgramResponse{
		ID:             p.ID.String(),
		Type:           p.Type,
		Title:          p.Title,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          p.Price,
		DurationNights: p.DurationNights,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
	}
}

type HotelResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	StarRating    int       `json:"star_rating"`
	PricePerNight float64   `json:"price_per_night"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func HotelToResponse(h *entity.PartnerHotel) HotelResponse {
	return HotelResponse{
		ID:            h.ID.String(),
		Name:          h.Name,
		Location:      h.Location,
		StarRating:    h.StarRating,
		PricePerNight: h.PricePerNight,
		IsActive:      h.IsActive,
		CreatedAt:     h.CreatedAt,
	}
}
