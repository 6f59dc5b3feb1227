package teller

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dquesada/tellercore-backend/internal/domain"
)

// OpenAccountInput represents the input for opening a new account
type OpenAccountInput struct {
	ClientID       string
	PIN            string
	InitialDeposit int64 // colones, must be > 0
}

// WithdrawInput represents the input for a confirmed withdrawal
type WithdrawInput struct {
	AccountNumber string
	PIN           string
	Code          string // one-time code submitted by the caller
	Amount        int64  // colones
}

// TransferInput represents the input for a same-owner transfer
type TransferInput struct {
	OriginNumber      string
	PIN               string
	Code              string
	DestinationNumber string
	Amount            int64 // colones
}

// OpenAccount opens an account for an existing client. The initial
// deposit becomes the account's first transaction.
func (s *Service) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, err := s.findClient(input.ClientID)
	if err != nil {
		return nil, err
	}
	a, err := domain.NewAccount(s.numbers.Next(), owner, s.vault, input.PIN, input.InitialDeposit)
	if err != nil {
		return nil, err
	}
	if err := s.record(ctx, a, a.Transactions[0]); err != nil {
		return nil, err
	}
	s.accounts[a.Number] = a
	s.logger.Info("account opened",
		zap.String("account", a.Number),
		zap.String("client", owner.ID),
		zap.Int64("initial_deposit", input.InitialDeposit),
	)
	// Hand back a snapshot so callers never hold the live account
	// outside the service mutex.
	snapshot := *a
	snapshot.Transactions = append([]domain.Transaction(nil), a.Transactions...)
	return &snapshot, nil
}

// Deposit credits colones to an account. Deposits carry no commission
// and require no confirmation.
func (s *Service) Deposit(ctx context.Context, accountNumber string, amount int64) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deposit(ctx, accountNumber, amount)
}

// deposit is the lock-free body shared with the USD path. Caller must
// hold s.mu.
func (s *Service) deposit(ctx context.Context, accountNumber string, amount int64) (domain.Transaction, error) {
	a, err := s.findAccount(accountNumber)
	if err != nil {
		return domain.Transaction{}, err
	}
	tx, err := a.Deposit(amount)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := s.record(ctx, a, tx); err != nil {
		return domain.Transaction{}, err
	}
	return tx, nil
}

// WithdrawWithConfirmation performs the full guarded withdrawal:
//  1. Authenticate the PIN (the account's single choke point).
//  2. Send a one-time code to the owner's phone and compare it to the
//     submitted value.
//  3. Debit principal plus any tiered commission, all-or-nothing.
func (s *Service) WithdrawWithConfirmation(ctx context.Context, input WithdrawInput) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.withdraw(ctx, input)
}

// withdraw is the lock-free body shared with the USD path. Caller must
// hold s.mu.
func (s *Service) withdraw(ctx context.Context, input WithdrawInput) (domain.Transaction, error) {
	a, err := s.findAccount(input.AccountNumber)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := s.authenticate(ctx, a, input.PIN); err != nil {
		return domain.Transaction{}, err
	}
	if err := s.confirm(ctx, a, input.Code); err != nil {
		return domain.Transaction{}, err
	}
	tx, err := a.Withdraw(input.Amount)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := s.record(ctx, a, tx); err != nil {
		return domain.Transaction{}, err
	}
	return tx, nil
}

// Transfer moves colones between two accounts of the same client after
// the authenticate/confirm sequence on the origin. The destination is
// pre-checked before the origin is debited, so the credit leg cannot
// fail once the debit leg has succeeded; both legs happen under the
// service mutex, so no caller ever observes a half-applied transfer.
func (s *Service) Transfer(ctx context.Context, input TransferInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	origin, err := s.findAccount(input.OriginNumber)
	if err != nil {
		return err
	}
	dest, err := s.findAccount(input.DestinationNumber)
	if err != nil {
		return err
	}
	if origin.Owner.ID != dest.Owner.ID {
		return fmt.Errorf("%w: %s and %s", domain.ErrOwnershipMismatch, origin.Number, dest.Number)
	}
	if err := s.authenticate(ctx, origin, input.PIN); err != nil {
		return err
	}
	if err := s.confirm(ctx, origin, input.Code); err != nil {
		return err
	}

	// Pre-check every failure mode of the credit leg before debiting.
	if input.Amount <= 0 {
		return domain.ErrInvalidAmount
	}
	if dest.Status != domain.StatusActive {
		return fmt.Errorf("%w: destination %s", domain.ErrAccountLocked, dest.Number)
	}

	outTx, err := origin.TransferOut(input.Amount)
	if err != nil {
		return err
	}
	inTx, err := dest.TransferIn(input.Amount)
	if err != nil {
		// Unreachable given the pre-checks; surface loudly if it ever
		// happens rather than leaving the ledger torn silently.
		s.logger.Error("transfer credit leg failed after debit",
			zap.String("origin", origin.Number),
			zap.String("destination", dest.Number),
			zap.Error(err),
		)
		return err
	}
	if err := s.record(ctx, origin, outTx); err != nil {
		return err
	}
	if err := s.record(ctx, dest, inTx); err != nil {
		return err
	}
	s.logger.Info("transfer completed",
		zap.String("origin", origin.Number),
		zap.String("destination", dest.Number),
		zap.Int64("amount", input.Amount),
	)
	return nil
}
