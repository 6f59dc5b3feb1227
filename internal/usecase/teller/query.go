package teller

import (
	"context"
	"errors"

	"github.com/dquesada/tellercore-backend/internal/domain"
)

// Balance reports the authenticated colones balance.
func (s *Service) Balance(ctx context.Context, accountNumber, pin string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.findAccount(accountNumber)
	if err != nil {
		return 0, err
	}
	if err := s.authenticate(ctx, a, pin); err != nil {
		return 0, err
	}
	return a.Balance, nil
}

// Transactions returns a copy of the authenticated account's ordered
// transaction log. The copy keeps callers from mutating the append-only
// log.
func (s *Service) Transactions(ctx context.Context, accountNumber, pin string) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.findAccount(accountNumber)
	if err != nil {
		return nil, err
	}
	if err := s.authenticate(ctx, a, pin); err != nil {
		return nil, err
	}
	log := make([]domain.Transaction, len(a.Transactions))
	copy(log, a.Transactions)
	return log, nil
}

// AccountSummary rolls the authenticated account's log up into totals
// of deposits, withdrawals and commissions.
func (s *Service) AccountSummary(ctx context.Context, accountNumber, pin string) (domain.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.findAccount(accountNumber)
	if err != nil {
		return domain.Summary{}, err
	}
	if err := s.authenticate(ctx, a, pin); err != nil {
		return domain.Summary{}, err
	}
	return a.Summarize(), nil
}

// AccountStatus reports the account's lifecycle state. A locked account
// refuses authentication, so the locked state itself is reported rather
// than an authentication error; a wrong PIN on an active account still
// fails.
func (s *Service) AccountStatus(ctx context.Context, accountNumber, pin string) (domain.AccountStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.findAccount(accountNumber)
	if err != nil {
		return "", err
	}
	if err := s.authenticate(ctx, a, pin); err != nil {
		if errors.Is(err, domain.ErrAccountLocked) {
			return domain.StatusLocked, nil
		}
		return "", err
	}
	return a.Status, nil
}
