package product

import (
	"context"
)

// Repository define a interface de leitura de produtos
type Repository interface {
	// FindByID busca um produto pelo ID
	FindByID(ctx context.Context, id string) (*Product, error)
}
