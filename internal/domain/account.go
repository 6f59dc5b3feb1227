package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dquesada/tellercore-backend/internal/validate"
)

// AccountStatus represents the lifecycle state of an account
type AccountStatus string

const (
	StatusActive AccountStatus = "ACTIVE"
	StatusLocked AccountStatus = "LOCKED"
)

// AuthResult is the outcome of a single authentication attempt.
// Modelled as an explicit enum so callers can branch on wrong-PIN vs
// locked without inspecting error text.
type AuthResult int

const (
	// AuthOK: PIN matched; remaining attempts reset to the maximum.
	AuthOK AuthResult = iota
	// AuthWrongPIN: PIN mismatched; one attempt was consumed.
	AuthWrongPIN
	// AuthNowLocked: PIN mismatched and the attempt budget is exhausted;
	// the account transitioned to Locked during this call.
	AuthNowLocked
	// AuthLockedOut: the account was already locked; no attempt was
	// consumed and the vault was not consulted.
	AuthLockedOut
)

const maxAttempts = 3

// commissionRate is the withdrawal fee applied from the sixth
// transaction onward.
var commissionRate = decimal.NewFromFloat(0.02)

// commissionThreshold is the number of prior transactions after which
// withdrawals start paying commission.
const commissionThreshold = 5

// CredentialVault encrypts and decrypts PINs for at-rest storage.
// Implementations must randomize ciphertexts so that encrypting the
// same PIN twice yields different blobs.
type CredentialVault interface {
	Encrypt(plain string) (string, error)
	Decrypt(blob string) (string, error)
}

// Account represents a single colones account: balance, encrypted PIN,
// lock state and the append-only transaction log. All money and
// authentication invariants are enforced here; the orchestrator only
// coordinates. Accounts are not safe for concurrent use; the
// orchestrator serializes access.
type Account struct {
	Number            string // assigned at creation, immutable
	Owner             *Client
	Balance           int64 // colones, never negative, never fractional
	Status            AccountStatus
	EncryptedPIN      string
	RemainingAttempts int // in [0,3]; fixed at 0 once locked
	CreatedAt         time.Time
	Transactions      []Transaction // append-only, insertion order significant
}

// NewAccount opens an account with a valid-format PIN and a strictly
// positive initial deposit. The initial deposit is recorded as the
// account's first Deposit transaction, so it counts toward the
// commission threshold.
func NewAccount(number string, owner *Client, vault CredentialVault, pin string, initialDeposit int64) (*Account, error) {
	if !validate.PIN(pin) {
		return nil, NewFormatError("pin")
	}
	if initialDeposit <= 0 {
		return nil, ErrInvalidAmount
	}
	blob, err := vault.Encrypt(pin)
	if err != nil {
		return nil, err
	}
	a := &Account{
		Number:            number,
		Owner:             owner,
		Status:            StatusActive,
		EncryptedPIN:      blob,
		RemainingAttempts: maxAttempts,
		CreatedAt:         time.Now(),
	}
	if _, err := a.Deposit(initialDeposit); err != nil {
		return nil, err
	}
	return a, nil
}

// Authenticate checks a plaintext PIN against the stored credential.
// Locked accounts are fully inert: they return AuthLockedOut without
// consuming an attempt or touching the vault. A mismatch consumes one
// attempt and locks the account when the budget hits zero; a match
// resets the budget. The returned error is non-nil only for vault
// integrity failures (ErrCrypto), which abort without state changes.
func (a *Account) Authenticate(vault CredentialVault, pin string) (AuthResult, error) {
	if a.Status == StatusLocked {
		return AuthLockedOut, nil
	}
	stored, err := vault.Decrypt(a.EncryptedPIN)
	if err != nil {
		return AuthWrongPIN, err
	}
	if stored == pin {
		a.RemainingAttempts = maxAttempts
		return AuthOK, nil
	}
	a.RemainingAttempts--
	if a.RemainingAttempts <= 0 {
		a.RemainingAttempts = 0
		a.Status = StatusLocked
		return AuthNowLocked, nil
	}
	return AuthWrongPIN, nil
}

// ChangePIN validates the new PIN's format, re-encrypts it and resets
// the attempt budget. This is the only path that restores a Locked
// account to Active; no separate unlock operation exists.
func (a *Account) ChangePIN(vault CredentialVault, newPIN string) error {
	if !validate.PIN(newPIN) {
		return NewFormatError("pin")
	}
	blob, err := vault.Encrypt(newPIN)
	if err != nil {
		return err
	}
	a.EncryptedPIN = blob
	a.RemainingAttempts = maxAttempts
	a.Status = StatusActive
	return nil
}

// Deposit credits the balance and appends a commission-free Deposit
// record. Rejects non-positive amounts and locked accounts.
func (a *Account) Deposit(amount int64) (Transaction, error) {
	return a.credit(KindDeposit, amount)
}

// Withdraw debits amount plus any commission due and appends a
// Withdrawal record. Commission applies when the log already holds at
// least five transactions: round(amount × 0.02), half-up. Fails
// all-or-nothing: on ErrInsufficientFunds neither the balance nor the
// log changes.
func (a *Account) Withdraw(amount int64) (Transaction, error) {
	return a.debit(KindWithdrawal, amount)
}

// TransferIn credits the incoming leg of a transfer. Recorded as a
// Deposit: commission is only ever charged on the outgoing leg.
func (a *Account) TransferIn(amount int64) (Transaction, error) {
	return a.credit(KindDeposit, amount)
}

// TransferOut debits the outgoing leg of a transfer under the same
// commission rule as a withdrawal, recorded as a transfer leg.
func (a *Account) TransferOut(amount int64) (Transaction, error) {
	return a.debit(KindTransferLeg, amount)
}

func (a *Account) credit(kind TransactionKind, amount int64) (Transaction, error) {
	if a.Status != StatusActive {
		return Transaction{}, ErrAccountLocked
	}
	if amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	t, err := NewTransaction(kind, amount, 0)
	if err != nil {
		return Transaction{}, err
	}
	a.Balance += amount
	a.Transactions = append(a.Transactions, t)
	return t, nil
}

func (a *Account) debit(kind TransactionKind, amount int64) (Transaction, error) {
	if a.Status != StatusActive {
		return Transaction{}, ErrAccountLocked
	}
	if amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	commission := a.commissionFor(amount)
	total := amount + commission
	if a.Balance < total {
		return Transaction{}, ErrInsufficientFunds
	}
	t, err := NewTransaction(kind, amount, commission)
	if err != nil {
		return Transaction{}, err
	}
	a.Balance -= total
	a.Transactions = append(a.Transactions, t)
	return t, nil
}

// commissionFor returns the fee due on a debit of amount given the
// current log length: zero below the threshold, otherwise
// round(amount × 0.02) half-up.
func (a *Account) commissionFor(amount int64) int64 {
	if len(a.Transactions) < commissionThreshold {
		return 0
	}
	return decimal.NewFromInt(amount).Mul(commissionRate).Round(0).IntPart()
}

// Summary aggregates the transaction log into deposit and withdrawal
// totals with their commissions.
type Summary struct {
	Status             AccountStatus
	TotalDeposited     int64
	TotalWithdrawn     int64
	DepositCommission  int64
	WithdrawCommission int64
}

// Summarize rolls the log up into per-kind totals for statement
// reporting.
func (a *Account) Summarize() Summary {
	s := Summary{Status: a.Status}
	for _, t := range a.Transactions {
		if t.Kind == KindDeposit {
			s.TotalDeposited += t.Amount
			s.DepositCommission += t.Commission
		} else {
			s.TotalWithdrawn += t.Amount
			s.WithdrawCommission += t.Commission
		}
	}
	return s
}
