package postgres

import (
	"context"
	"fmt"

	"github.com/dquesada/tellercore-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// LoadByAccount retrieves an account's transactions in insertion order.
// The seq column preserves the order that defines the commission tier
// index, independent of timestamp resolution.
func (r *transactionRepository) LoadByAccount(ctx context.Context, accountNumber string) ([]domain.Transaction, error) {
	query := `
		SELECT id, kind, amount, commission_charged, commission, recorded_at
		FROM transactions
		WHERE account_number = $1
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		var kind string
		if err := rows.Scan(
			&t.ID,
			&kind,
			&t.Amount,
			&t.CommissionCharged,
			&t.Commission,
			&t.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Kind = domain.TransactionKind(kind)
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txs, nil
}

// Append stores one new transaction. Records are immutable: there is no
// update path, only insert and bulk delete.
func (r *transactionRepository) Append(ctx context.Context, accountNumber string, tx domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, account_number, kind, amount, commission_charged, commission, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		accountNumber,
		string(tx.Kind),
		tx.Amount,
		tx.CommissionCharged,
		tx.Commission,
		tx.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// DeleteByAccount bulk-removes an account's entire log.
func (r *transactionRepository) DeleteByAccount(ctx context.Context, accountNumber string) error {
	query := `DELETE FROM transactions WHERE account_number = $1`

	if _, err := r.db.ExecContext(ctx, query, accountNumber); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	return nil
}
