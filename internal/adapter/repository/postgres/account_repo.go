package postgres

import (
	"context"
	"fmt"

	"github.com/dquesada/tellercore-backend/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

// LoadAll retrieves every account without its transaction log. The
// owner field carries only the client id; the orchestrator rebinds it
// to the loaded client instance.
func (r *accountRepository) LoadAll(ctx context.Context) ([]*domain.Account, error) {
	query := `
		SELECT number, owner_id, balance, status, encrypted_pin, remaining_attempts, created_at
		FROM accounts
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		a := &domain.Account{Owner: &domain.Client{}}
		var status string
		if err := rows.Scan(
			&a.Number,
			&a.Owner.ID,
			&a.Balance,
			&status,
			&a.EncryptedPIN,
			&a.RemainingAttempts,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		a.Status = domain.AccountStatus(status)
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// Save upserts an account's balance, status, credential and attempt
// counter.
func (r *accountRepository) Save(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (number, owner_id, balance, status, encrypted_pin, remaining_attempts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (number) DO UPDATE
		SET balance = EXCLUDED.balance,
		    status = EXCLUDED.status,
		    encrypted_pin = EXCLUDED.encrypted_pin,
		    remaining_attempts = EXCLUDED.remaining_attempts
	`

	_, err := r.db.ExecContext(ctx, query,
		account.Number,
		account.Owner.ID,
		account.Balance,
		string(account.Status),
		account.EncryptedPIN,
		account.RemainingAttempts,
		account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// Delete removes an account row. The transaction log is deleted
// separately through the transaction repository.
func (r *accountRepository) Delete(ctx context.Context, number string) error {
	query := `DELETE FROM accounts WHERE number = $1`

	if _, err := r.db.ExecContext(ctx, query, number); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}
