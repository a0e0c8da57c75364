package usecase

import (
	"context"
	"fmt"
	"math"

	"wellness-booking/internal/data/entity"
	"wellness-booking/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// totalTolerance absorbs float representation noise when comparing a
// client-supplied total against the recomputed one.
const totalTolerance = 0.01

// hotelLookup is the slice of HotelRepository the resolver needs.
type hotelLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PartnerHotel, error)
	FindMatch(ctx context.Context, location string, starRating int) (*entity.PartnerHotel, error)
}

// Quote is the pricing snapshot written onto a booking.
type Quote struct {
	PricePerPerson     float64
	Subtotal           float64
	AccommodationTotal float64
	Total              float64

	AccommodationMode     entity.AccommodationMode
	AccommodationSelected bool
	HotelID               *uuid.UUID
	Nights                int
	PricePerNight         float64
}

// QuoteInput carries the caller-controlled pricing fields.
type QuoteInput struct {
	Quantity       int
	PricePerPerson *float64
	ExpectedTotal  *float64
	Accommodation  *request.AccommodationRequest

	// Force writes the expected total without the mismatch check
	// (admin override; see DESIGN.md).
	Force bool
}

// PricingResolver computes booking totals from a program, a quantity and
// an optional accommodation selection.
type PricingResolver struct {
	hotels              hotelLookup
	hospitalNightlyRate float64
	log                 *zap.Logger
}

func NewPricingResolver(hotels hotelLookup, hospitalNightlyRate float64, log *zap.Logger) *PricingResolver {
	return &PricingResolver{
		hotels:              hotels,
		hospitalNightlyRate: hospitalNightlyRate,
		log:                 log.With(zap.String("service", "pricing")),
	}
}

// Resolve computes the quote. Base price precedence: caller override,
// then the program price; neither positive fails. A hotel selection that
// cannot be matched degrades silently to no accommodation rather than
// failing the booking.
func (p *PricingResolver) Resolve(ctx context.Context, program *entity.Program, in QuoteInput) (*Quote, error) {
	if in.Quantity < 1 {
		return nil, fmt.Errorf("validation failed: quantity must be at least 1")
	}

	price := program.Price
	if in.PricePerPerson != nil {
		price = *in.PricePerPerson
	}
	if price <= 0 {
		return nil, fmt.Errorf("validation failed: price per person is required")
	}

	quote := &Quote{
		PricePerPerson:    price,
		Subtotal:          price * float64(in.Quantity),
		AccommodationMode: entity.AccommodationNone,
	}

	if err := p.resolveAccommodation(ctx, program, in, quote); err != nil {
		return nil, err
	}

	quote.Total = quote.Subtotal + quote.AccommodationTotal

	if in.ExpectedTotal != nil && !in.Force {
		if math.Abs(*in.ExpectedTotal-quote.Total) > totalTolerance {
			return nil, fmt.Errorf("total amount mismatch: expected %.2f, computed %.2f",
				*in.ExpectedTotal, quote.Total)
		}
	}
	if in.ExpectedTotal != nil && in.Force {
		p.log.Info("Pricing override forced",
			zap.Float64("computed_total", quote.Total),
			zap.Float64("forced_total", *in.ExpectedTotal),
		)
		quote.Total = *in.ExpectedTotal
	}

	return quote, nil
}

func (p *PricingResolver) resolveAccommodation(ctx context.Context, program *entity.Program, in QuoteInput, quote *Quote) error {
	if in.Accommodation == nil {
		return nil
	}

	mode := entity.AccommodationMode(in.Accommodation.Mode)
	if !mode.Valid() {
		return fmt.Errorf("validation failed: invalid accommodation mode %q", in.Accommodation.Mode)
	}
	quote.AccommodationMode = mode

	if mode == entity.AccommodationNone || mode == entity.AccommodationOwnArrangement {
		return nil
	}

	// Day-attendance products carry no lodging add-on.
	if !program.Type.SupportsAccommodation() {
		quote.AccommodationMode = entity.AccommodationNone
		return nil
	}

	nights := program.DurationNights
	if in.Accommodation.Nights != nil {
		nights = *in.Accommodation.Nights
	}
	if nights < 1 {
		nights = 1
	}

	if mode == entity.AccommodationHospitalPremium {
		quote.AccommodationSelected = true
		quote.Nights = nights
		quote.PricePerNight = p.hospitalNightlyRate
		quote.AccommodationTotal = p.hospitalNightlyRate * float64(nights) * float64(in.Quantity)
		return nil
	}

	hotel, err := p.matchHotel(ctx, mode, in.Accommodation)
	if err != nil {
		return err
	}
	if hotel == nil {
		// No active partner hotel matched; the booking proceeds without
		// accommodation instead of failing.
		p.log.Warn("No partner hotel matched, degrading to no accommodation",
			zap.String("mode", string(mode)),
			zap.String("location", in.Accommodation.Location),
			zap.Int("star_rating", in.Accommodation.StarRating),
		)
		quote.AccommodationSelected = false
		quote.Nights = 0
		quote.PricePerNight = 0
		quote.AccommodationTotal = 0
		return nil
	}

	quote.AccommodationSelected = true
	quote.HotelID = &hotel.ID
	quote.Nights = nights
	quote.PricePerNight = hotel.PricePerNight
	quote.AccommodationTotal = hotel.PricePerNight * float64(nights) * float64(in.Quantity)
	return nil
}

func (p *PricingResolver) matchHotel(ctx context.Context, mode entity.AccommodationMode, acc *request.AccommodationRequest) (*entity.PartnerHotel, error) {
	if mode == entity.AccommodationPartnerHotel {
		if acc.HotelID == nil {
			return nil, fmt.Errorf("validation failed: hotel_id is required for partner_hotel mode")
		}
		hotelID, err := uuid.Parse(*acc.HotelID)
		if err != nil {
			return nil, fmt.Errorf("invalid hotel ID format %s: %w", *acc.HotelID, err)
		}
		hotel, err := p.hotels.FindByID(ctx, hotelID)
		if err != nil {
			return nil, fmt.Errorf("look up hotel %s: %w", hotelID.String(), err)
		}
		if hotel != nil && !hotel.IsActive {
			return nil, nil
		}
		return hotel, nil
	}

	location := ""
	stars := 0
	switch mode {
	case entity.AccommodationByLocation:
		location = acc.Location
	case entity.AccommodationByStar:
		stars = acc.StarRating
	case entity.AccommodationLocationAndStar:
		location = acc.Location
		stars = acc.StarRating
	}

	hotel, err := p.hotels.FindMatch(ctx, location, stars)
	if err != nil {
		return nil, fmt.Errorf("match hotel: %w", err)
	}
	return hotel, nil
}
