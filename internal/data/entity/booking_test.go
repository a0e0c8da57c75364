package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to confirmed", BookingStatusPending, BookingStatusConfirmed, true},
		{"pending to rescheduled", BookingStatusPending, BookingStatusRescheduled, true},
		{"pending to completed", BookingStatusPending, BookingStatusCompleted, true},
		{"pending to cancelled", BookingStatusPending, BookingStatusCancelled, true},
		{"confirmed to rescheduled", BookingStatusConfirmed, BookingStatusRescheduled, true},
		{"confirmed to completed", BookingStatusConfirmed, BookingStatusCompleted, true},
		{"confirmed to cancelled", BookingStatusConfirmed, BookingStatusCancelled, true},
		{"confirmed to pending", BookingStatusConfirmed, BookingStatusPending, false},
		{"rescheduled to confirmed", BookingStatusRescheduled, BookingStatusConfirmed, true},
		{"rescheduled to cancelled", BookingStatusRescheduled, BookingStatusCancelled, true},
		{"cancelled back to confirmed", BookingStatusCancelled, BookingStatusConfirmed, true},
		{"cancelled to pending", BookingStatusCancelled, BookingStatusPending, false},
		{"cancelled to completed", BookingStatusCancelled, BookingStatusCompleted, false},
		{"completed is terminal", BookingStatusCompleted, BookingStatusCancelled, false},
		{"completed to confirmed", BookingStatusCompleted, BookingStatusConfirmed, false},
		{"no self transition", BookingStatusPending, BookingStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestBookingStatusValid(t *testing.T) {
	assert.True(t, BookingStatusPending.Valid())
	assert.True(t, BookingStatusCancelled.Valid())
	assert.False(t, BookingStatus("archived").Valid())
}

func TestAccommodationModeValid(t *testing.T) {
	assert.True(t, AccommodationNone.Valid())
	assert.True(t, AccommodationLocationAndStar.Valid())
	assert.False(t, AccommodationMode("suite").Valid())
}

func TestProductTypeSupportsAccommodation(t *testing.T) {
	assert.True(t, ProductPackage.SupportsAccommodation())
	assert.True(t, ProductRetreat.SupportsAccommodation())
	assert.False(t, ProductHealthProgram.SupportsAccommodation())
	assert.False(t, ProductCourse.SupportsAccommodation())
}
