package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/erp-vendas/internal/domain/client"
	"github.com/hugohenrick/erp-vendas/internal/domain/money"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/jackc/pgx/v5"
)

const clientColumns = `id::text, name, COALESCE(phone, ''), COALESCE(email, ''), credit_limit::text, created_at`

// ClientRepository implementa a interface client.Repository
type ClientRepository struct {
	db Querier
}

// NewClientRepository cria uma nova instância de ClientRepository
func NewClientRepository(db Querier) client.Repository {
	return &ClientRepository{db: db}
}

// FindByID implementa client.Repository.FindByID
func (r *ClientRepository) FindByID(ctx context.Context, id string) (*client.Client, error) {
	c, err := scanClient(r.db.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sale.ErrClientNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}
	return c, nil
}

// FindByName implementa client.Repository.FindByName
func (r *ClientRepository) FindByName(ctx context.Context, name string) (*client.Client, error) {
	c, err := scanClient(r.db.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE name = $1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sale.ErrClientNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}
	return c, nil
}

// Exists implementa client.Repository.Exists
func (r *ClientRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do cliente: %w", err)
	}
	return exists, nil
}

// EnsureDefault implementa client.Repository.EnsureDefault
func (r *ClientRepository) EnsureDefault(ctx context.Context, name string) (*client.Client, error) {
	c := client.NewDefault(name)
	_, err := r.db.Exec(ctx,
		`INSERT INTO clients (id, name, phone, email, credit_limit, created_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6)
		ON CONFLICT (name) DO NOTHING`,
		c.ID, c.Name, c.Phone, c.Email, c.CreditLimit.String(), c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente padrão: %w", err)
	}

	return r.FindByName(ctx, c.Name)
}

func scanClient(row pgx.Row) (*client.Client, error) {
	var (
		c     client.Client
		limit string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &limit, &c.CreatedAt); err != nil {
		return nil, err
	}
	l, err := money.Parse(limit)
	if err != nil {
		return nil, fmt.Errorf("limite de crédito inválido no cliente %s: %w", c.ID, err)
	}
	c.CreditLimit = l
	return &c, nil
}
