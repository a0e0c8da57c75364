package response

import (
	"time"

	"wellness-booking/internal/data/entity"
)

type AccommodationResponse struct {
	Mode          entity.AccommodationMode `json:"mode"`
	Selected      bool                     `json:"selected"`
	HotelID       *string                  `json:"hotel_id,omitempty"`
	Nights        int                      `json:"nights"`
	PricePerNight float64                  `json:"price_per_night"`
	TotalCost     float64                  `json:"total_cost"`
}

type BookingResponse struct {
	ID           string             `json:"id"`
	Reference    string             `json:"reference"`
	ProductID    string             `json:"product_id"`
	ProductType  entity.ProductType `json:"product_type"`
	ProductTitle string             `json:"product_title"`

	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone string  `json:"customer_phone"`
	Country       *string `json:"country,omitempty"`

	PreferredDate *string `json:"preferred_date,omitempty"`
	Quantity      int     `json:"quantity"`

	PricePerPerson     float64 `json:"price_per_person"`
	Subtotal           float64 `json:"subtotal"`
	AccommodationTotal float64 `json:"accommodation_total"`
	TotalAmount        float64 `json:"total_amount"`

	Accommodation AccommodationResponse `json:"accommodation"`

	Status        entity.BookingStatus        `json:"status"`
	PaymentStatus entity.BookingPaymentStatus `json:"payment_status"`

	Source       entity.BookingSource `json:"source"`
	AdminMessage *string              `json:"admin_message,omitempty"`
	Notes        *string              `json:"notes,omitempty"`

	Payment *PaymentResponse `json:"payment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func BookingToResponse(b *entity.Booking, payment *PaymentResponse) BookingResponse {
	var hotelID *string
	if b.HotelID != nil {
		id := b.HotelID.String()
		hotelID = &id
	}

	var preferredDate *string
	if b.PreferredDate != nil {
		d := b.PreferredDate.Format("2006-01-02")
		preferredDate = &d
	}

	return BookingResponse{
		ID:            b.ID.String(),
		Reference:     b.Reference,
		ProductID:     b.ProductID.String(),
		ProductType:   b.ProductType,
		ProductTitle:  b.ProductTitle,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Country:       b.Country,
		PreferredDate: preferredDate,
		Quantity:      b.Quantity,

		PricePerPerson:     b.PricePerPerson,
		Subtotal:           b.Subtotal,
		AccommodationTotal: b.AccommodationTotal,
		TotalAmount:        b.TotalAmount,

		Accommodation: AccommodationResponse{
			Mode:          b.AccommodationMode,
			Selected:      b.AccommodationSelected,
			HotelID:       hotelID,
			Nights:        b.Nights,
			PricePerNight: b.PricePerNight,
			TotalCost:     b.AccommodationTotal,
		},

		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		Source:        b.Source,
		AdminMessage:  b.AdminMessage,
		Notes:         b.Notes,
		Payment:       payment,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
