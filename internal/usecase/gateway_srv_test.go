package usecase

import (
	"context"
	"fmt"
	"testing"

	"wellness-booking/internal/dto/request"
	"wellness-booking/internal/dto/response"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePaymentService struct {
	markErr   error
	markCalls []request.MarkPaymentStatusRequest
}

func (f *fakePaymentService) List(_ context.Context, _ *request.ListPaymentsRequest) (*response.PaginatedResponse[response.PaymentResponse], error) {
	return nil, nil
}

func (f *fakePaymentService) ExportCSV(_ context.Context, _ *request.ListPaymentsRequest) ([]byte, error) {
	return nil, nil
}

func (f *fakePaymentService) MarkStatus(_ context.Context, _ *uuid.UUID, req *request.MarkPaymentStatusRequest) (*response.PaymentResponse, error) {
	f.markCalls = append(f.markCalls, *req)
	if f.markErr != nil {
		return nil, f.markErr
	}
	return &response.PaymentResponse{}, nil
}

func completedSession(bookingID, bookingType string) *stripe.CheckoutSession {
	return &stripe.CheckoutSession{
		ID:                "cs_test_123",
		ClientReferenceID: bookingID,
		Metadata:          map[string]string{"booking_type": bookingType},
	}
}

func TestCompleteCheckoutMarksPaid(t *testing.T) {
	payments := &fakePaymentService{}
	gateway := &gatewayService{payments: payments, log: zap.NewNop()}

	err := gateway.completeCheckout(context.Background(), completedSession("b-1", "retreat"))
	require.NoError(t, err)

	require.Len(t, payments.markCalls, 1)
	assert.Equal(t, "b-1", payments.markCalls[0].BookingID)
	assert.Equal(t, "retreat", payments.markCalls[0].ProductType)
	assert.Equal(t, "paid", payments.markCalls[0].Status)
}

func TestCompleteCheckoutRedeliveryIsIdempotent(t *testing.T) {
	payments := &fakePaymentService{
		markErr: fmt.Errorf("payment for booking b-1 is already paid"),
	}
	gateway := &gatewayService{payments: payments, log: zap.NewNop()}

	// A redelivered event for a settled payment must acknowledge cleanly
	// so the sender stops retrying.
	err := gateway.completeCheckout(context.Background(), completedSession("b-1", "retreat"))
	assert.NoError(t, err)
}

func TestCompleteCheckoutPropagatesOtherErrors(t *testing.T) {
	payments := &fakePaymentService{
		markErr: fmt.Errorf("booking b-1 not found"),
	}
	gateway := &gatewayService{payments: payments, log: zap.NewNop()}

	err := gateway.completeCheckout(context.Background(), completedSession("b-1", "retreat"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCompleteCheckoutMissingReference(t *testing.T) {
	payments := &fakePaymentService{}
	gateway := &gatewayService{payments: payments, log: zap.NewNop()}

	sess := &stripe.CheckoutSession{ID: "cs_test_456"}

	err := gateway.completeCheckout(context.Background(), sess)
	require.Error(t, err)
	assert.Empty(t, payments.markCalls)
}
