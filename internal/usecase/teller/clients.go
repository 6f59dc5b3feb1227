package teller

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dquesada/tellercore-backend/internal/domain"
)

// CreateClientInput represents the input for registering a client
type CreateClientInput struct {
	ID    string
	Name  string
	Phone string
	Email string
}

// CreateClient registers a new client after validating the contact
// fields. Clients must exist before an account can be opened for them.
func (s *Service) CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[input.ID]; ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrClientExists, input.ID)
	}
	c, err := domain.NewClient(input.ID, input.Name, input.Phone, input.Email)
	if err != nil {
		return nil, err
	}
	if err := s.clientRepo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("%w: save client: %v", domain.ErrCollaboratorUnavailable, err)
	}
	s.clients[c.ID] = c
	s.logger.Info("client registered", zap.String("client", c.ID))
	return c, nil
}

// UpdateClientPhone changes a client's phone number, the delivery
// target for one-time codes.
func (s *Service) UpdateClientPhone(ctx context.Context, clientID, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.findClient(clientID)
	if err != nil {
		return err
	}
	if err := c.SetPhone(phone); err != nil {
		return err
	}
	if err := s.clientRepo.Save(ctx, c); err != nil {
		return fmt.Errorf("%w: save client: %v", domain.ErrCollaboratorUnavailable, err)
	}
	return nil
}

// UpdateClientEmail changes a client's email address.
func (s *Service) UpdateClientEmail(ctx context.Context, clientID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.findClient(clientID)
	if err != nil {
		return err
	}
	if err := c.SetEmail(email); err != nil {
		return err
	}
	if err := s.clientRepo.Save(ctx, c); err != nil {
		return fmt.Errorf("%w: save client: %v", domain.ErrCollaboratorUnavailable, err)
	}
	return nil
}
