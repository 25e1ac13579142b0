package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/hugohenrick/erp-vendas/internal/infrastructure/database"
	"github.com/hugohenrick/erp-vendas/internal/ledger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier é o subconjunto de pgx.Tx usado pelos repositórios
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implementa ledger.Store sobre o PostgreSQL
type PostgresStore struct {
	db *database.PostgresDB
}

// NewPostgresStore cria uma nova instância de PostgresStore
func NewPostgresStore(db *database.PostgresDB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Transaction implementa ledger.Store. Disputas de lock, deadlocks e falhas de
// serialização são devolvidas como sale.ErrConcurrentUpdate.
func (s *PostgresStore) Transaction(ctx context.Context, fn func(ctx context.Context, repos ledger.Repositories) error) error {
	err := s.db.Transaction(ctx, func(tx pgx.Tx) error {
		return fn(ctx, NewRepositories(tx))
	})
	if err != nil && database.IsConcurrencyError(err) && !errors.Is(err, sale.ErrConflict) {
		return fmt.Errorf("%w: %v", sale.ErrConcurrentUpdate, err)
	}
	return err
}

// NewRepositories cria os repositórios ligados a q
func NewRepositories(q Querier) ledger.Repositories {
	return ledger.Repositories{
		Sales:    NewSaleRepository(q),
		Products: NewProductRepository(q),
		Clients:  NewClientRepository(q),
	}
}
