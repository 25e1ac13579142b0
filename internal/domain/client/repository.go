package client

import (
	"context"
)

// Repository define a interface para operações de repositório de clientes
// usadas pelo contas a receber
type Repository interface {
	// FindByID busca um cliente pelo ID
	FindByID(ctx context.Context, id string) (*Client, error)

	// FindByName busca um cliente pelo nome exato
	FindByName(ctx context.Context, name string) (*Client, error)

	// Exists verifica se um cliente existe
	Exists(ctx context.Context, id string) (bool, error)

	// EnsureDefault garante que o cliente padrão exista e o retorna.
	// Pode ser chamado várias vezes.
	EnsureDefault(ctx context.Context, name string) (*Client, error)
}
