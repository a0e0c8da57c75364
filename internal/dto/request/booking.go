package request

// AccommodationRequest selects the lodging add-on for a booking.
type AccommodationRequest struct {
	Mode       string  `json:"mode" validate:"required,oneof=none own_arrangement hospital_premium partner_hotel location star location_and_star"`
	HotelID    *string `json:"hotel_id,omitempty" validate:"omitempty,uuid4"`
	Location   string  `json:"location,omitempty"`
	StarRating int     `json:"star_rating,omitempty" validate:"omitempty,min=1,max=5"`
	Nights     *int    `json:"nights,omitempty" validate:"omitempty,min=1"`
}

type CreateBookingRequest struct {
	ProductType   string  `json:"product_type" validate:"required,oneof=package retreat health_program course"`
	ProductID     string  `json:"product_id" validate:"required,uuid4"`
	CustomerName  string  `json:"customer_name" validate:"required,min=2,max=120"`
	CustomerEmail string  `json:"customer_email" validate:"required,email"`
	CustomerPhone string  `json:"customer_phone" validate:"required,min=5,max=32"`
	Country       *string `json:"country,omitempty"`

	// Preferred start date, YYYY-MM-DD.
	PreferredDate *string `json:"preferred_date,omitempty"`
	Quantity      int     `json:"quantity" validate:"required,min=1"`

	// Optional price override; falls back to the program price.
	PricePerPerson *float64 `json:"price_per_person,omitempty" validate:"omitempty,gt=0"`

	// Client-computed total; rejected on mismatch with the server total.
	TotalAmount *float64 `json:"total_amount,omitempty"`

	Accommodation *AccommodationRequest `json:"accommodation,omitempty"`

	Notes  *string `json:"notes,omitempty"`
	Source string  `json:"source,omitempty" validate:"omitempty,oneof=online phone walk_in"`
}

// ListBookingsRequest carries the admin listing filters; empty values
// mean "any". Dates are YYYY-MM-DD.
type ListBookingsRequest struct {
	PaginatedRequest
	Status      string `json:"status" validate:"omitempty,oneof=pending confirmed rescheduled completed cancelled"`
	ProductType string `json:"product_type" validate:"omitempty,oneof=package retreat health_program course"`
	Email       string `json:"email" validate:"omitempty,email"`
	From        string `json:"from"`
	To          string `json:"to"`
}

type UpdateBookingStatusRequest struct {
	Status        string  `json:"status" validate:"required,oneof=pending confirmed rescheduled completed cancelled"`
	PreferredDate *string `json:"preferred_date,omitempty"`
	AdminMessage  *string `json:"admin_message,omitempty"`
}

// UpdateBookingRequest is the admin full-field replace. The pricing
// resolver reruns over the new values; Force skips the mismatch check
// and writes the supplied total verbatim.
type UpdateBookingRequest struct {
	CustomerName  string  `json:"customer_name" validate:"required,min=2,max=120"`
	CustomerEmail string  `json:"customer_email" validate:"required,email"`
	CustomerPhone string  `json:"customer_phone" validate:"required,min=5,max=32"`
	Country       *string `json:"country,omitempty"`

	PreferredDate *string `json:"preferred_date,omitempty"`
	Quantity      int     `json:"quantity" validate:"required,min=1"`

	PricePerPerson *float64 `json:"price_per_person,omitempty" validate:"omitempty,gt=0"`
	TotalAmount    *float64 `json:"total_amount,omitempty"`

	Accommodation *AccommodationRequest `json:"accommodation,omitempty"`

	Notes  *string `json:"notes,omitempty"`
	Source string  `json:"source,omitempty" validate:"omitempty,oneof=online phone walk_in"`

	Force bool `json:"force,omitempty"`
}
