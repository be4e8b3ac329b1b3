package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPaymentRepoTest(t *testing.T) (PaymentRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewPaymentRepository(mock, zap.NewNop()), mock
}

func TestMarkCompletedByIntentID(t *testing.T) {
	t.Run("completes a non-terminal payment", func(t *testing.T) {
		repo, mock := newPaymentRepoTest(t)

		mock.ExpectExec("UPDATE payments").
			WithArgs("pi_123").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		completed, err := repo.MarkCompletedByIntentID(context.Background(), "pi_123")

		require.NoError(t, err)
		assert.True(t, completed)
	})

	t.Run("replays are no-ops", func(t *testing.T) {
		repo, mock := newPaymentRepoTest(t)

		mock.ExpectExec("UPDATE payments").
			WithArgs("pi_123").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		completed, err := repo.MarkCompletedByIntentID(context.Background(), "pi_123")

		require.NoError(t, err)
		assert.False(t, completed)
	})
}

func TestCompleteAndConfirm(t *testing.T) {
	t.Run("moves payment and booking together", func(t *testing.T) {
		repo, mock := newPaymentRepoTest(t)
		bookingID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payments").
			WithArgs("pi_123").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec("UPDATE bookings").
			WithArgs(bookingID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		completed, err := repo.CompleteAndConfirm(context.Background(), "pi_123", bookingID)

		require.NoError(t, err)
		assert.True(t, completed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("webhook redelivery touches nothing", func(t *testing.T) {
		repo, mock := newPaymentRepoTest(t)
		bookingID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payments").
			WithArgs("pi_123").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("pi_123").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectExec("UPDATE bookings").
			WithArgs(bookingID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectCommit()

		completed, err := repo.CompleteAndConfirm(context.Background(), "pi_123", bookingID)

		require.NoError(t, err)
		assert.False(t, completed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("intent matching no payment row leaves the booking alone", func(t *testing.T) {
		repo, mock := newPaymentRepoTest(t)
		bookingID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payments").
			WithArgs("pi_orphan").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("pi_orphan").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectRollback()

		completed, err := repo.CompleteAndConfirm(context.Background(), "pi_orphan", bookingID)

		require.NoError(t, err)
		assert.False(t, completed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSetReceipt(t *testing.T) {
	t.Run("queues pending payment for verification", func(t *testing.T) {
		repo, mock := newPaymentRepoTest(t)
		paymentID := uuid.New()

		mock.ExpectExec("UPDATE payments").
			WithArgs(paymentID, "https://cdn.example.com/receipt.pdf").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		ok, err := repo.SetReceipt(context.Background(), paymentID, "https://cdn.example.com/receipt.pdf")

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rejected for completed payments", func(t *testing.T) {
		repo, mock := newPaymentRepoTest(t)
		paymentID := uuid.New()

		mock.ExpectExec("UPDATE payments").
			WithArgs(paymentID, "https://cdn.example.com/receipt.pdf").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		ok, err := repo.SetReceipt(context.Background(), paymentID, "https://cdn.example.com/receipt.pdf")

		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestApproveAndConfirm(t *testing.T) {
	t.Run("approves an awaiting payment and confirms the booking", func(t *testing.T) {
		repo, mock := newPaymentRepoTest(t)
		paymentID := uuid.New()
		bookingID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payments").
			WithArgs(paymentID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec("UPDATE bookings").
			WithArgs(bookingID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		ok, err := repo.ApproveAndConfirm(context.Background(), paymentID, bookingID)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("double approval stops at the payment update", func(t *testing.T) {
		repo, mock := newPaymentRepoTest(t)
		paymentID := uuid.New()
		bookingID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payments").
			WithArgs(paymentID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		ok, err := repo.ApproveAndConfirm(context.Background(), paymentID, bookingID)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRejectAwaiting(t *testing.T) {
	repo, mock := newPaymentRepoTest(t)
	paymentID := uuid.New()

	mock.ExpectExec("UPDATE payments").
		WithArgs(paymentID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ok, err := repo.RejectAwaiting(context.Background(), paymentID)

	require.NoError(t, err)
	assert.True(t, ok)
}
