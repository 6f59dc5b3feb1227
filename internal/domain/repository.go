package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// ClientRepository defines the interface for client persistence operations
type ClientRepository interface {
	// LoadAll retrieves every known client; called once at startup.
	LoadAll(ctx context.Context) ([]*Client, error)

	// Save upserts a client after a mutating operation.
	Save(ctx context.Context, client *Client) error
}

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	// LoadAll retrieves every account (without transaction logs);
	// called once at startup.
	LoadAll(ctx context.Context) ([]*Account, error)

	// Save upserts an account's balance, status and credential after a
	// mutating operation.
	Save(ctx context.Context, account *Account) error

	// Delete removes an account irrecoverably.
	Delete(ctx context.Context, number string) error
}

// TransactionRepository defines the interface for ledger persistence operations
type TransactionRepository interface {
	// LoadByAccount retrieves an account's transactions in insertion
	// order; the order defines the commission tier index.
	LoadByAccount(ctx context.Context, accountNumber string) ([]Transaction, error)

	// Append stores one new transaction for an account.
	Append(ctx context.Context, accountNumber string, tx Transaction) error

	// DeleteByAccount bulk-removes an account's log when the account
	// itself is deleted.
	DeleteByAccount(ctx context.Context, accountNumber string) error
}

// RateProvider supplies the colones-per-USD exchange rates. Rates are
// read fresh on each call; callers must tolerate drift between calls.
type RateProvider interface {
	// BuyRate returns the buy rate (colones paid per USD bought).
	BuyRate(ctx context.Context) (decimal.Decimal, error)

	// SellRate returns the sell rate (colones charged per USD sold).
	SellRate(ctx context.Context) (decimal.Decimal, error)
}

// CodeChannel delivers one-time confirmation codes out of band and
// returns the code it just sent so the caller can compare it against
// user input.
type CodeChannel interface {
	SendCode(ctx context.Context, phone string) (string, error)
}

// NumberGenerator assigns account numbers. Implementations must yield
// identifiers that are unique and stable across process restarts.
type NumberGenerator interface {
	Next() string
}
