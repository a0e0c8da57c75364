package request

type CheckoutRequest struct {
	BookingID   string `json:"booking_id" validate:"required,uuid4"`
	ProductType string `json:"product_type" validate:"required,oneof=package retreat health_program course"`
}

// ListPaymentsRequest filters the admin ledger view. Cancelled entries
// stay hidden unless IncludeCancelled is set. Dates are YYYY-MM-DD.
type ListPaymentsRequest struct {
	PaginatedRequest
	Status           string `json:"status" validate:"omitempty,oneof=pending paid cancelled refunded"`
	BookingType      string `json:"booking_type" validate:"omitempty,oneof=package retreat health_program course"`
	Email            string `json:"email" validate:"omitempty,email"`
	From             string `json:"from"`
	To               string `json:"to"`
	IncludeCancelled bool   `json:"include_cancelled"`
}

type MarkPaymentStatusRequest struct {
	BookingID   string `json:"booking_id" validate:"required,uuid4"`
	ProductType string `json:"product_type" validate:"required,oneof=package retreat health_program course"`
	Status      string `json:"status" validate:"required,oneof=paid cancelled failed"`
}
