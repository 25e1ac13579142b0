package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/erp-vendas/internal/domain/money"
	"github.com/hugohenrick/erp-vendas/internal/domain/product"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/jackc/pgx/v5"
)

// ProductRepository implementa a interface product.Repository
type ProductRepository struct {
	db Querier
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db Querier) product.Repository {
	return &ProductRepository{db: db}
}

// FindByID implementa product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	var (
		p           product.Product
		cost, price string
	)
	err := r.db.QueryRow(ctx,
		`SELECT id::text, name, cost_price::text, sale_price::text FROM products WHERE id = $1`,
		id).Scan(&p.ID, &p.Name, &cost, &price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", sale.ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}

	if p.CostPrice, err = money.Parse(cost); err != nil {
		return nil, fmt.Errorf("preço de custo inválido no produto %s: %w", id, err)
	}
	if p.SalePrice, err = money.Parse(price); err != nil {
		return nil, fmt.Errorf("preço de venda inválido no produto %s: %w", id, err)
	}
	return &p, nil
}
