package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseMessage(event Event) Message {
	return Message{
		To:           "jamie@example.com",
		Event:        event,
		CustomerName: "Jamie Park",
		Reference:    "WB-20260828-101500-0042",
		ProductTitle: "Mountain Detox Retreat",
		TotalAmount:  460,
		Currency:     "USD",
	}
}

func TestRenderEmailBookingReceived(t *testing.T) {
	subject, body, err := renderEmail(baseMessage(EventBookingReceived))
	require.NoError(t, err)

	assert.Equal(t, "We received your booking WB-20260828-101500-0042", subject)
	assert.Contains(t, body, "Jamie Park")
	assert.Contains(t, body, "Mountain Detox Retreat")
	assert.Contains(t, body, "WB-20260828-101500-0042")
}

func TestRenderEmailConfirmedWithDate(t *testing.T) {
	msg := baseMessage(EventBookingConfirmed)
	msg.PreferredDate = "2026-09-15"

	subject, body, err := renderEmail(msg)
	require.NoError(t, err)

	assert.Contains(t, subject, "confirmed")
	assert.Contains(t, body, "2026-09-15")
}

func TestRenderEmailCancelledIncludesAdminMessage(t *testing.T) {
	msg := baseMessage(EventBookingCancelled)
	msg.AdminMessage = "Payment window expired"

	_, body, err := renderEmail(msg)
	require.NoError(t, err)

	assert.Contains(t, body, "cancelled")
	assert.Contains(t, body, "Payment window expired")
}

func TestRenderEmailPaymentReceivedShowsAmount(t *testing.T) {
	subject, body, err := renderEmail(baseMessage(EventPaymentReceived))
	require.NoError(t, err)

	assert.Contains(t, subject, "Payment received")
	assert.Contains(t, body, "460.00 USD")
}

func TestRenderEmailUnknownEvent(t *testing.T) {
	_, _, err := renderEmail(baseMessage(Event("telegram")))
	require.Error(t, err)
}
