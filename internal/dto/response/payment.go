package response

import (
	"time"

	"wellness-booking/internal/data/entity"
)

type PaymentResponse struct {
	ID          string                  `json:"id"`
	BookingID   string                  `json:"booking_id"`
	BookingType entity.ProductType      `json:"booking_type"`
	Amount      float64                 `json:"amount"`
	Currency    string                  `json:"currency"`
	Gateway     entity.PaymentGateway   `json:"gateway"`
	Status      entity.PaymentStatus    `json:"status"`
	Breakdown   entity.PaymentBreakdown `json:"breakdown"`
	CheckoutURL *string                 `json:"checkout_url,omitempty"`
	CancelledAt *time.Time              `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

func PaymentToResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID.String(),
		BookingID:   p.BookingID.String(),
		BookingType: p.BookingType,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Gateway:     p.Gateway,
		Status:      p.Status,
		Breakdown:   p.Breakdown,
		CheckoutURL: p.CheckoutURL,
		CancelledAt: p.CancelledAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type CheckoutResponse struct {
	URL string `json:"url"`
}
