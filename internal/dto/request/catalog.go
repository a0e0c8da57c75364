package request

type ProgramRequest struct {
	Type           string  `json:"type" validate:"required,oneof=package retreat health_program course"`
	Title          string  `json:"title" validate:"required,min=2,max=200"`
	Description    string  `json:"description,omitempty"`
	Price          float64 `json:"price" validate:"required,gt=0"`
	DurationNights int     `json:"duration_nights" validate:"omitempty,min=0"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

type HotelRequest struct {
	Name          string  `json:"name" validate:"required,min=2,max=200"`
	Location      string  `json:"location" validate:"required,min=2,max=120"`
	StarRating    int     `json:"star_rating" validate:"required,min=1,max=5"`
	PricePerNight float64 `json:"price_per_night" validate:"required,gt=0"`
	IsActive      *bool   `json:"is_active,omitempty"`
}
