package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction_Invariants(t *testing.T) {
	tx, err := NewTransaction(KindWithdrawal, 1000, 20)
	require.NoError(t, err)
	assert.True(t, tx.CommissionCharged)
	assert.Equal(t, int64(20), tx.Commission)
	assert.NotEqual(t, tx.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.False(t, tx.Timestamp.IsZero())

	tx, err = NewTransaction(KindDeposit, 500, 0)
	require.NoError(t, err)
	assert.False(t, tx.CommissionCharged)

	_, err = NewTransaction(KindDeposit, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewTransaction(KindWithdrawal, -10, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewTransaction(KindWithdrawal, 10, -1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestTotalDebit(t *testing.T) {
	w, err := NewTransaction(KindWithdrawal, 1000, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1020), w.TotalDebit())

	d, err := NewTransaction(KindDeposit, 1000, 0)
	require.NoError(t, err)
	assert.Zero(t, d.TotalDebit())

	leg, err := NewTransaction(KindTransferLeg, 500, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(510), leg.TotalDebit())
}
