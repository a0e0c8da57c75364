package usecase

import (
	"strings"
	"testing"
	"time"

	"wellness-booking/internal/data/entity"
	"wellness-booking/pkg/mailer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingBookingWithLedger() (*entity.Booking, *entity.Payment) {
	booking := &entity.Booking{
		Base:          entity.Base{ID: uuid.New()},
		Reference:     "WB-20260828-101500-0042",
		ProductType:   entity.ProductRetreat,
		ProductTitle:  "Mountain Detox Retreat",
		CustomerName:  "Jamie Park",
		CustomerEmail: "jamie@example.com",
		Quantity:      2,
		TotalAmount:   460,
		Status:        entity.BookingStatusPending,
		PaymentStatus: entity.BookingPaymentPending,
	}
	ledger := rebuildLedgerEntry(booking, "USD")
	return booking, ledger
}

func TestApplyPaymentMarkPaid(t *testing.T) {
	booking, ledger := pendingBookingWithLedger()
	now := time.Now()

	event, err := applyPaymentMark(booking, ledger, "paid", nil, now)
	require.NoError(t, err)

	assert.Equal(t, mailer.EventPaymentReceived, event)
	assert.Equal(t, entity.PaymentStatusPaid, ledger.Status)
	assert.Equal(t, entity.BookingPaymentPaid, booking.PaymentStatus)
	assert.Equal(t, entity.BookingStatusConfirmed, booking.Status)
	assert.Nil(t, ledger.CancelledAt)
}

func TestApplyPaymentMarkPaidTwiceRejected(t *testing.T) {
	booking, ledger := pendingBookingWithLedger()

	_, err := applyPaymentMark(booking, ledger, "paid", nil, time.Now())
	require.NoError(t, err)

	_, err = applyPaymentMark(booking, ledger, "paid", nil, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already paid")
}

func TestApplyPaymentMarkCancelled(t *testing.T) {
	booking, ledger := pendingBookingWithLedger()
	actor := uuid.New()
	now := time.Now()

	event, err := applyPaymentMark(booking, ledger, "cancelled", &actor, now)
	require.NoError(t, err)

	assert.Equal(t, mailer.EventBookingCancelled, event)
	assert.Equal(t, entity.PaymentStatusCancelled, ledger.Status)
	assert.Equal(t, entity.BookingStatusCancelled, booking.Status)
	// The booking stays payable after a cancelled payment.
	assert.Equal(t, entity.BookingPaymentPending, booking.PaymentStatus)
	require.NotNil(t, ledger.CancelledAt)
	assert.Equal(t, now, *ledger.CancelledAt)
	require.NotNil(t, ledger.CancelledBy)
	assert.Equal(t, actor, *ledger.CancelledBy)
}

func TestApplyPaymentMarkCancelledThenPaid(t *testing.T) {
	booking, ledger := pendingBookingWithLedger()
	actor := uuid.New()

	_, err := applyPaymentMark(booking, ledger, "cancelled", &actor, time.Now())
	require.NoError(t, err)

	// Re-confirming after a cancellation clears the cancellation marks.
	event, err := applyPaymentMark(booking, ledger, "paid", nil, time.Now())
	require.NoError(t, err)

	assert.Equal(t, mailer.EventPaymentReceived, event)
	assert.Equal(t, entity.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, entity.PaymentStatusPaid, ledger.Status)
	assert.Nil(t, ledger.CancelledAt)
	assert.Nil(t, ledger.CancelledBy)
}

func TestApplyPaymentMarkFailedLeavesLedgerOpen(t *testing.T) {
	booking, ledger := pendingBookingWithLedger()

	event, err := applyPaymentMark(booking, ledger, "failed", nil, time.Now())
	require.NoError(t, err)

	assert.Equal(t, mailer.Event(""), event)
	assert.Equal(t, entity.PaymentStatusPending, ledger.Status)
	assert.Equal(t, entity.BookingPaymentFailed, booking.PaymentStatus)
	assert.Equal(t, entity.BookingStatusPending, booking.Status)
}

func TestApplyPaymentMarkUnknownStatus(t *testing.T) {
	booking, ledger := pendingBookingWithLedger()

	_, err := applyPaymentMark(booking, ledger, "refunded-ish", nil, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid payment status")
}

func TestRebuildLedgerEntrySnapshotsBooking(t *testing.T) {
	booking := &entity.Booking{
		Base:               entity.Base{ID: uuid.New()},
		ProductType:        entity.ProductPackage,
		Quantity:           3,
		PricePerPerson:     120,
		Subtotal:           360,
		AccommodationTotal: 90,
		TotalAmount:        450,
	}

	ledger := rebuildLedgerEntry(booking, "EUR")

	assert.Equal(t, booking.ID, ledger.BookingID)
	assert.Equal(t, entity.ProductPackage, ledger.BookingType)
	assert.Equal(t, 450.0, ledger.Amount)
	assert.Equal(t, "EUR", ledger.Currency)
	assert.Equal(t, entity.GatewayManual, ledger.Gateway)
	assert.Equal(t, entity.PaymentStatusPending, ledger.Status)
	assert.Equal(t, 360.0, ledger.Breakdown.Subtotal)
	assert.Equal(t, 90.0, ledger.Breakdown.AccommodationTotal)
}

func TestRenderPaymentsCSV(t *testing.T) {
	booking, ledger := pendingBookingWithLedger()
	ledger.CreatedAt = time.Date(2026, 8, 28, 10, 15, 0, 0, time.UTC)

	data, err := renderPaymentsCSV([]exportRow{
		{
			payment:       ledger,
			reference:     booking.Reference,
			customerName:  booking.CustomerName,
			customerEmail: booking.CustomerEmail,
			productTitle:  booking.ProductTitle,
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(exportHeader, ","), lines[0])
	assert.Contains(t, lines[1], "WB-20260828-101500-0042")
	assert.Contains(t, lines[1], "460.00")
	assert.Contains(t, lines[1], "jamie@example.com")
	assert.Contains(t, lines[1], "pending")
}

func TestRenderPaymentsCSVEmpty(t *testing.T) {
	data, err := renderPaymentsCSV(nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, strings.Join(exportHeader, ","), lines[0])
}
