package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type PaymentGateway string

const (
	GatewayManual PaymentGateway = "manual"
	GatewayStripe PaymentGateway = "stripe"
)

// PaymentBreakdown is the pricing snapshot stored alongside the ledger
// entry for receipt rendering, duplicated from the booking at write time.
type PaymentBreakdown struct {
	PricePerPerson     float64 `json:"price_per_person"`
	Quantity           int     `json:"quantity"`
	Subtotal           float64 `json:"subtotal"`
	AccommodationTotal float64 `json:"accommodation_total"`
	Total              float64 `json:"total"`
}

// Payment is the ledger entry for a booking. Exactly zero or one exists
// per (booking_id, booking_type); the ledger, not the booking's own
// payment_status mirror, is the source of truth for "has the customer paid".
type Payment struct {
	Base
	BookingID   uuid.UUID   `db:"booking_id"`
	BookingType ProductType `db:"booking_type"`

	Amount   float64        `db:"amount"`
	Currency string         `db:"currency"`
	Gateway  PaymentGateway `db:"gateway"`
	Status   PaymentStatus  `db:"status"`

	Breakdown PaymentBreakdown `db:"breakdown"`

	CheckoutSessionID *string `db:"checkout_session_id"`
	CheckoutURL       *string `db:"checkout_url"`

	CancelledAt *time.Time `db:"cancelled_at"`
	CancelledBy *uuid.UUID `db:"cancelled_by"`
}
