// Package teller implements the orchestration layer of the automated
// teller: it resolves accounts, runs the authenticate/confirm sequence
// that guards money movement, delegates balance and PIN logic to the
// account entity, and persists every successful mutation.
package teller

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dquesada/tellercore-backend/internal/domain"
)

// Service coordinates clients, accounts and the external collaborators.
// It owns the in-memory client and account collections (loaded once at
// startup) and is the single writer to them: a service-wide mutex
// serializes every operation, so no operation ever observes another's
// partial state and transfers touch both accounts atomically.
type Service struct {
	mu sync.Mutex

	vault   domain.CredentialVault
	rates   domain.RateProvider
	codes   domain.CodeChannel
	numbers domain.NumberGenerator

	clientRepo  domain.ClientRepository
	accountRepo domain.AccountRepository
	txRepo      domain.TransactionRepository

	logger *zap.Logger

	clients  map[string]*domain.Client
	accounts map[string]*domain.Account
}

// NewService creates a new Service instance. Call Load before serving
// operations.
func NewService(
	vault domain.CredentialVault,
	rates domain.RateProvider,
	codes domain.CodeChannel,
	numbers domain.NumberGenerator,
	clientRepo domain.ClientRepository,
	accountRepo domain.AccountRepository,
	txRepo domain.TransactionRepository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		vault:       vault,
		rates:       rates,
		codes:       codes,
		numbers:     numbers,
		clientRepo:  clientRepo,
		accountRepo: accountRepo,
		txRepo:      txRepo,
		logger:      logger,
		clients:     make(map[string]*domain.Client),
		accounts:    make(map[string]*domain.Account),
	}
}

// Load hydrates the in-memory collections from the persistence
// collaborator: clients, then accounts, then each account's ordered
// transaction log. Accounts are rebound to their loaded owner instance
// so ownership checks compare against a single client object.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.clientRepo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: load clients: %v", domain.ErrCollaboratorUnavailable, err)
	}
	for _, c := range clients {
		s.clients[c.ID] = c
	}

	accounts, err := s.accountRepo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: load accounts: %v", domain.ErrCollaboratorUnavailable, err)
	}
	for _, a := range accounts {
		owner, ok := s.clients[a.Owner.ID]
		if !ok {
			return fmt.Errorf("%w: account %s references client %s", domain.ErrClientNotFound, a.Number, a.Owner.ID)
		}
		a.Owner = owner

		log, err := s.txRepo.LoadByAccount(ctx, a.Number)
		if err != nil {
			return fmt.Errorf("%w: load transactions for %s: %v", domain.ErrCollaboratorUnavailable, a.Number, err)
		}
		a.Transactions = log
		s.accounts[a.Number] = a
	}

	s.logger.Info("state loaded",
		zap.Int("clients", len(s.clients)),
		zap.Int("accounts", len(s.accounts)),
	)
	return nil
}

// findAccount resolves an account number. Caller must hold s.mu.
func (s *Service) findAccount(number string) (*domain.Account, error) {
	a, ok := s.accounts[number]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, number)
	}
	return a, nil
}

// findClient resolves a client identification. Caller must hold s.mu.
func (s *Service) findClient(id string) (*domain.Client, error) {
	c, ok := s.clients[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrClientNotFound, id)
	}
	return c, nil
}

// authenticate is the single choke point every money-movement and
// query operation passes through. It maps the account's authentication
// outcome onto domain errors: a wrong PIN yields ErrAuthenticationFailed,
// a locked account yields ErrAccountLocked, and the third consecutive
// failure yields an error matching both, so callers can tell "wrong
// PIN" from "now locked" without leaking why. The consumed or reset
// attempt counter is persisted before returning.
func (s *Service) authenticate(ctx context.Context, a *domain.Account, pin string) error {
	res, err := a.Authenticate(s.vault, pin)
	if err != nil {
		// Vault integrity failure: no state changed, abort outright.
		s.logger.Error("credential vault failure", zap.String("account", a.Number), zap.Error(err))
		return err
	}

	switch res {
	case domain.AuthOK:
		return s.saveAccount(ctx, a)
	case domain.AuthLockedOut:
		return fmt.Errorf("%w: %s", domain.ErrAccountLocked, a.Number)
	case domain.AuthNowLocked:
		// Lockout is the hook for out-of-band owner notification; the
		// notification itself is a collaborator concern, so just log.
		s.logger.Warn("account locked after repeated failures", zap.String("account", a.Number))
		if err := s.saveAccount(ctx, a); err != nil {
			return err
		}
		return fmt.Errorf("%w: %w: %s", domain.ErrAuthenticationFailed, domain.ErrAccountLocked, a.Number)
	default:
		if err := s.saveAccount(ctx, a); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s", domain.ErrAuthenticationFailed, a.Number)
	}
}

// confirm requests a one-time code for the account owner's phone and
// compares it against the caller-submitted value.
func (s *Service) confirm(ctx context.Context, a *domain.Account, submitted string) error {
	sent, err := s.codes.SendCode(ctx, a.Owner.Phone)
	if err != nil {
		return err
	}
	if submitted != sent {
		return fmt.Errorf("%w: account %s", domain.ErrConfirmationFailed, a.Number)
	}
	return nil
}

// saveAccount persists account state after a mutation. Caller must
// hold s.mu.
func (s *Service) saveAccount(ctx context.Context, a *domain.Account) error {
	if err := s.accountRepo.Save(ctx, a); err != nil {
		s.logger.Error("failed to save account", zap.String("account", a.Number), zap.Error(err))
		return fmt.Errorf("%w: save account: %v", domain.ErrCollaboratorUnavailable, err)
	}
	return nil
}

// record persists an account mutation together with its new
// transaction record. Caller must hold s.mu.
func (s *Service) record(ctx context.Context, a *domain.Account, tx domain.Transaction) error {
	if err := s.saveAccount(ctx, a); err != nil {
		return err
	}
	if err := s.txRepo.Append(ctx, a.Number, tx); err != nil {
		s.logger.Error("failed to append transaction", zap.String("account", a.Number), zap.Error(err))
		return fmt.Errorf("%w: append transaction: %v", domain.ErrCollaboratorUnavailable, err)
	}
	return nil
}

// ChangePIN validates and installs a new PIN, resetting the attempt
// budget. This is the only operation that restores a locked account to
// active.
func (s *Service) ChangePIN(ctx context.Context, accountNumber, newPIN string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.findAccount(accountNumber)
	if err != nil {
		return err
	}
	wasLocked := a.Status == domain.StatusLocked
	if err := a.ChangePIN(s.vault, newPIN); err != nil {
		return err
	}
	if wasLocked {
		s.logger.Info("account unlocked via PIN change", zap.String("account", a.Number))
	}
	return s.saveAccount(ctx, a)
}

// DeleteAccount authenticates and then removes the account and its
// entire transaction log irrecoverably.
func (s *Service) DeleteAccount(ctx context.Context, accountNumber, pin string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.findAccount(accountNumber)
	if err != nil {
		return err
	}
	if err := s.authenticate(ctx, a, pin); err != nil {
		return err
	}
	if err := s.txRepo.DeleteByAccount(ctx, a.Number); err != nil {
		return fmt.Errorf("%w: delete transactions: %v", domain.ErrCollaboratorUnavailable, err)
	}
	if err := s.accountRepo.Delete(ctx, a.Number); err != nil {
		return fmt.Errorf("%w: delete account: %v", domain.ErrCollaboratorUnavailable, err)
	}
	delete(s.accounts, a.Number)
	s.logger.Info("account deleted", zap.String("account", a.Number))
	return nil
}
