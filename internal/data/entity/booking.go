package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending     BookingStatus = "pending"
	BookingStatusConfirmed   BookingStatus = "confirmed"
	BookingStatusRescheduled BookingStatus = "rescheduled"
	BookingStatusCompleted   BookingStatus = "completed"
	BookingStatusCancelled   BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusRescheduled,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// BookingPaymentStatus mirrors the ledger on the booking itself.
type BookingPaymentStatus string

const (
	BookingPaymentPending   BookingPaymentStatus = "pending"
	BookingPaymentPaid      BookingPaymentStatus = "paid"
	BookingPaymentFailed    BookingPaymentStatus = "failed"
	BookingPaymentCancelled BookingPaymentStatus = "cancelled"
)

// AccommodationMode selects how the lodging add-on is resolved.
type AccommodationMode string

const (
	AccommodationNone            AccommodationMode = "none"
	AccommodationOwnArrangement  AccommodationMode = "own_arrangement"
	AccommodationHospitalPremium AccommodationMode = "hospital_premium"
	AccommodationPartnerHotel    AccommodationMode = "partner_hotel"
	AccommodationByLocation      AccommodationMode = "location"
	AccommodationByStar          AccommodationMode = "star"
	AccommodationLocationAndStar AccommodationMode = "location_and_star"
)

func (m AccommodationMode) Valid() bool {
	switch m {
	case AccommodationNone, AccommodationOwnArrangement, AccommodationHospitalPremium,
		AccommodationPartnerHotel, AccommodationByLocation, AccommodationByStar,
		AccommodationLocationAndStar:
		return true
	}
	return false
}

type BookingSource string

const (
	SourceOnline BookingSource = "online"
	SourcePhone  BookingSource = "phone"
	SourceWalkIn BookingSource = "walk_in"
)

// Booking is a customer reservation against a catalog program.
// Pricing fields are a snapshot taken at write time, never recomputed on read.
type Booking struct {
	Base
	Reference    string      `db:"reference"`
	ProductID    uuid.UUID   `db:"product_id"`
	ProductType  ProductType `db:"product_type"`
	ProductTitle string      `db:"product_title"`

	CustomerName  string  `db:"customer_name"`
	CustomerEmail string  `db:"customer_email"`
	CustomerPhone string  `db:"customer_phone"`
	Country       *string `db:"country"`

	PreferredDate *time.Time `db:"preferred_date"`
	Quantity      int        `db:"quantity"`

	PricePerPerson     float64 `db:"price_per_person"`
	Subtotal           float64 `db:"subtotal"`
	AccommodationTotal float64 `db:"accommodation_total"`
	TotalAmount        float64 `db:"total_amount"`

	AccommodationMode     AccommodationMode `db:"accommodation_mode"`
	AccommodationSelected bool              `db:"accommodation_selected"`
	HotelID               *uuid.UUID        `db:"hotel_id"`
	Nights                int               `db:"nights"`
	PricePerNight         float64           `db:"price_per_night"`

	Status        BookingStatus        `db:"status"`
	PaymentStatus BookingPaymentStatus `db:"payment_status"`

	Source       BookingSource `db:"source"`
	AdminMessage *string       `db:"admin_message"`
	Notes        *string       `db:"notes"`
	CreatedBy    *uuid.UUID    `db:"created_by"`
}

// bookingTransitions is the single transition table shared by every
// product type. cancelled -> confirmed stays reachable so an admin can
// re-confirm after cancelling a payment.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:     {BookingStatusConfirmed, BookingStatusRescheduled, BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusConfirmed:   {BookingStatusRescheduled, BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusRescheduled: {BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCancelled:   {BookingStatusConfirmed},
	BookingStatusCompleted:   {},
}

// CanTransition reports whether moving from s to target is allowed.
func (s BookingStatus) CanTransition(target BookingStatus) bool {
	if s == target {
		return false
	}
	for _, allowed := range bookingTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
