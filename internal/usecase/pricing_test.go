package usecase

import (
	"context"
	"testing"

	"wellness-booking/internal/data/entity"
	"wellness-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeHotelLookup struct {
	byID    map[uuid.UUID]*entity.PartnerHotel
	matched *entity.PartnerHotel
}

func (f *fakeHotelLookup) FindByID(_ context.Context, id uuid.UUID) (*entity.PartnerHotel, error) {
	return f.byID[id], nil
}

func (f *fakeHotelLookup) FindMatch(_ context.Context, _ string, _ int) (*entity.PartnerHotel, error) {
	return f.matched, nil
}

func newTestResolver(hotels *fakeHotelLookup) *PricingResolver {
	return NewPricingResolver(hotels, 55, zap.NewNop())
}

func retreatProgram(price float64, nights int) *entity.Program {
	return &entity.Program{
		Base:           entity.Base{ID: uuid.New()},
		Type:           entity.ProductRetreat,
		Title:          "Mountain Detox Retreat",
		Price:          price,
		DurationNights: nights,
		IsActive:       true,
	}
}

func activeHotel(pricePerNight float64) *entity.PartnerHotel {
	return &entity.PartnerHotel{
		Base:          entity.Base{ID: uuid.New()},
		Name:          "Lakeside Inn",
		Location:      "Riverside",
		StarRating:    4,
		PricePerNight: pricePerNight,
		IsActive:      true,
	}
}

func TestResolveBaseTotal(t *testing.T) {
	resolver := newTestResolver(&fakeHotelLookup{})
	program := retreatProgram(100, 3)

	quote, err := resolver.Resolve(context.Background(), program, QuoteInput{Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, 100.0, quote.PricePerPerson)
	assert.Equal(t, 200.0, quote.Subtotal)
	assert.Equal(t, 0.0, quote.AccommodationTotal)
	assert.Equal(t, 200.0, quote.Total)
	assert.Equal(t, entity.AccommodationNone, quote.AccommodationMode)
}

func TestResolvePriceOverride(t *testing.T) {
	resolver := newTestResolver(&fakeHotelLookup{})
	program := retreatProgram(100, 3)
	override := 80.0

	quote, err := resolver.Resolve(context.Background(), program, QuoteInput{
		Quantity:       3,
		PricePerPerson: &override,
	})
	require.NoError(t, err)

	assert.Equal(t, 80.0, quote.PricePerPerson)
	assert.Equal(t, 240.0, quote.Total)
}

func TestResolveMissingPrice(t *testing.T) {
	resolver := newTestResolver(&fakeHotelLookup{})
	program := retreatProgram(0, 3)

	_, err := resolver.Resolve(context.Background(), program, QuoteInput{Quantity: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price per person is required")
}

func TestResolveRejectsZeroQuantity(t *testing.T) {
	resolver := newTestResolver(&fakeHotelLookup{})
	program := retreatProgram(100, 3)

	_, err := resolver.Resolve(context.Background(), program, QuoteInput{Quantity: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity")
}

func TestResolveWithPartnerHotel(t *testing.T) {
	hotel := activeHotel(40)
	resolver := newTestResolver(&fakeHotelLookup{
		byID: map[uuid.UUID]*entity.PartnerHotel{hotel.ID: hotel},
	})
	program := retreatProgram(150, 5)
	hotelID := hotel.ID.String()
	nights := 2

	quote, err := resolver.Resolve(context.Background(), program, QuoteInput{
		Quantity: 2,
		Accommodation: &request.AccommodationRequest{
			Mode:    string(entity.AccommodationPartnerHotel),
			HotelID: &hotelID,
			Nights:  &nights,
		},
	})
	require.NoError(t, err)

	assert.True(t, quote.AccommodationSelected)
	require.NotNil(t, quote.HotelID)
	assert.Equal(t, hotel.ID, *quote.HotelID)
	assert.Equal(t, 2, quote.Nights)
	assert.Equal(t, 40.0, quote.PricePerNight)
	// 40 per night x 2 nights x 2 people
	assert.Equal(t, 160.0, quote.AccommodationTotal)
	assert.Equal(t, 460.0, quote.Total)
}

func TestResolveNightsDefaultToProgramDuration(t *testing.T) {
	hotel := activeHotel(30)
	resolver := newTestResolver(&fakeHotelLookup{matched: hotel})
	program := retreatProgram(100, 4)

	quote, err := resolver.Resolve(context.Background(), program, QuoteInput{
		Quantity: 1,
		Accommodation: &request.AccommodationRequest{
			Mode:     string(entity.AccommodationByLocation),
			Location: "Riverside",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, quote.Nights)
	assert.Equal(t, 120.0, quote.AccommodationTotal)
}

func TestResolveHospitalPremiumUsesConfiguredRate(t *testing.T) {
	resolver := newTestResolver(&fakeHotelLookup{})
	program := retreatProgram(200, 3)

	quote, err := resolver.Resolve(context.Background(), program, QuoteInput{
		Quantity: 1,
		Accommodation: &request.AccommodationRequest{
			Mode: string(entity.AccommodationHospitalPremium),
		},
	})
	require.NoError(t, err)

	assert.True(t, quote.AccommodationSelected)
	assert.Equal(t, 55.0, quote.PricePerNight)
	assert.Equal(t, 165.0, quote.AccommodationTotal)
	assert.Equal(t, 365.0, quote.Total)
}

func TestResolveDegradesWhenNoHotelMatches(t *testing.T) {
	resolver := newTestResolver(&fakeHotelLookup{matched: nil})
	program := retreatProgram(100, 3)

	quote, err := resolver.Resolve(context.Background(), program, QuoteInput{
		Quantity: 2,
		Accommodation: &request.AccommodationRequest{
			Mode:       string(entity.AccommodationLocationAndStar),
			Location:   "Nowhere",
			StarRating: 5,
		},
	})
	require.NoError(t, err)

	assert.False(t, quote.AccommodationSelected)
	assert.Nil(t, quote.HotelID)
	assert.Equal(t, 0.0, quote.AccommodationTotal)
	assert.Equal(t, 200.0, quote.Total)
}

func TestResolveInactiveHotelDegrades(t *testing.T) {
	hotel := activeHotel(40)
	hotel.IsActive = false
	resolver := newTestResolver(&fakeHotelLookup{
		byID: map[uuid.UUID]*entity.PartnerHotel{hotel.ID: hotel},
	})
	program := retreatProgram(100, 3)
	hotelID := hotel.ID.String()

	quote, err := resolver.Resolve(context.Background(), program, QuoteInput{
		Quantity: 1,
		Accommodation: &request.AccommodationRequest{
			Mode:    string(entity.AccommodationPartnerHotel),
			HotelID: &hotelID,
		},
	})
	require.NoError(t, err)

	assert.False(t, quote.AccommodationSelected)
	assert.Equal(t, 100.0, quote.Total)
}

func TestResolveDayProgramIgnoresAccommodation(t *testing.T) {
	resolver := newTestResolver(&fakeHotelLookup{matched: activeHotel(40)})
	program := &entity.Program{
		Base:     entity.Base{ID: uuid.New()},
		Type:     entity.ProductCourse,
		Title:    "Nutrition Basics",
		Price:    50,
		IsActive: true,
	}

	quote, err := resolver.Resolve(context.Background(), program, QuoteInput{
		Quantity: 1,
		Accommodation: &request.AccommodationRequest{
			Mode: string(entity.AccommodationHospitalPremium),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.AccommodationNone, quote.AccommodationMode)
	assert.Equal(t, 50.0, quote.Total)
}

func TestResolveTotalMismatch(t *testing.T) {
	resolver := newTestResolver(&fakeHotelLookup{})
	program := retreatProgram(100, 3)
	expected := 999.0

	_, err := resolver.Resolve(context.Background(), program, QuoteInput{
		Quantity:      2,
		ExpectedTotal: &expected,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total amount mismatch")
}

func TestResolveMatchingTotalPasses(t *testing.T) {
	resolver := newTestResolver(&fakeHotelLookup{})
	program := retreatProgram(100, 3)
	expected := 200.0

	quote, err := resolver.Resolve(context.Background(), program, QuoteInput{
		Quantity:      2,
		ExpectedTotal: &expected,
	})
	require.NoError(t, err)
	assert.Equal(t, 200.0, quote.Total)
}

func TestResolveForceOverridesTotal(t *testing.T) {
	resolver := newTestResolver(&fakeHotelLookup{})
	program := retreatProgram(100, 3)
	expected := 180.0

	quote, err := resolver.Resolve(context.Background(), program, QuoteInput{
		Quantity:      2,
		ExpectedTotal: &expected,
		Force:         true,
	})
	require.NoError(t, err)
	assert.Equal(t, 180.0, quote.Total)
	assert.Equal(t, 200.0, quote.Subtotal)
}

func TestResolveInvalidAccommodationMode(t *testing.T) {
	resolver := newTestResolver(&fakeHotelLookup{})
	program := retreatProgram(100, 3)

	_, err := resolver.Resolve(context.Background(), program, QuoteInput{
		Quantity: 1,
		Accommodation: &request.AccommodationRequest{
			Mode: "penthouse",
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid accommodation mode")
}
