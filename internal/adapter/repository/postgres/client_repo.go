package postgres

import (
	"context"
	"fmt"

	"github.com/dquesada/tellercore-backend/internal/domain"
)

// clientRepository implements domain.ClientRepository
type clientRepository struct {
	db *DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *DB) domain.ClientRepository {
	return &clientRepository{db: db}
}

// LoadAll retrieves every client
func (r *clientRepository) LoadAll(ctx context.Context) ([]*domain.Client, error) {
	query := `
		SELECT id, name, phone, email
		FROM clients
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		c := &domain.Client{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}

	return clients, nil
}

// Save upserts a client. The core saves after every mutating operation,
// so insert and update share one statement.
func (r *clientRepository) Save(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO clients (id, name, phone, email)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, phone = EXCLUDED.phone, email = EXCLUDED.email
	`

	_, err := r.db.ExecContext(ctx, query, client.ID, client.Name, client.Phone, client.Email)
	if err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}
