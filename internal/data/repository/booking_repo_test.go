package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"wellness-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingExecutor captures the statement and arguments handed to Exec.
type recordingExecutor struct {
	sql  string
	args []any
}

func (e *recordingExecutor) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, nil
}

func (e *recordingExecutor) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return nil
}

func (e *recordingExecutor) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	e.sql = sql
	e.args = args
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func TestUpdateStatusInBindsUpdatedAt(t *testing.T) {
	repo := &bookingRepository{log: zap.NewNop()}
	exec := &recordingExecutor{}

	updatedAt := time.Date(2026, 8, 28, 12, 30, 0, 0, time.UTC)
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			UpdatedAt: updatedAt,
		},
		Status:        entity.BookingStatusConfirmed,
		PaymentStatus: entity.BookingPaymentPaid,
	}

	err := repo.UpdateStatusIn(context.Background(), exec, booking)
	require.NoError(t, err)

	// The row carries the same timestamp the caller returns, not a
	// database-side NOW().
	assert.Contains(t, exec.sql, "updated_at = $6")
	assert.False(t, strings.Contains(exec.sql, "NOW()"))
	require.Len(t, exec.args, 6)
	assert.Equal(t, updatedAt, exec.args[5])
	assert.Equal(t, booking.ID, exec.args[0])
}
