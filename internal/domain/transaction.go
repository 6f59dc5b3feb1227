package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionKind represents the kind of ledger movement
type TransactionKind string

const (
	KindDeposit     TransactionKind = "DEPOSIT"
	KindWithdrawal  TransactionKind = "WITHDRAWAL"
	KindTransferLeg TransactionKind = "TRANSFER_LEG"
)

// Transaction is an immutable record of a single ledger movement.
// Amount carries the principal only; the commission, when charged, is
// recorded separately. Records are created exactly once per successful
// mutation, appended to the owning account's log, and never edited,
// reordered or individually deleted.
type Transaction struct {
	ID                uuid.UUID
	Kind              TransactionKind
	Amount            int64 // principal, colones, always positive
	CommissionCharged bool
	Commission        int64 // > 0 iff CommissionCharged
	Timestamp         time.Time
}

// NewTransaction builds a transaction record, enforcing the amount and
// commission invariants.
func NewTransaction(kind TransactionKind, amount, commission int64) (Transaction, error) {
	if amount <= 0 || commission < 0 {
		return Transaction{}, ErrInvalidAmount
	}
	return Transaction{
		ID:                uuid.New(),
		Kind:              kind,
		Amount:            amount,
		CommissionCharged: commission > 0,
		Commission:        commission,
		Timestamp:         time.Now(),
	}, nil
}

// TotalDebit returns the full amount a debit record removes from a
// balance: principal plus commission. Credit records debit nothing.
func (t Transaction) TotalDebit() int64 {
	if t.Kind == KindDeposit {
		return 0
	}
	return t.Amount + t.Commission
}
