package client

import (
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-vendas/internal/domain/money"
)

// DefaultName é o nome do cliente padrão usado nas vendas de balcão
const DefaultName = "Consumidor Final"

// Client representa um cliente no contas a receber
type Client struct {
	ID          string      `json:"id"`           // ID do Cliente
	Name        string      `json:"name"`         // Nome
	Phone       string      `json:"phone"`        // Telefone
	Email       string      `json:"email"`        // Email
	CreditLimit money.Money `json:"credit_limit"` // Limite de Crédito
	CreatedAt   time.Time   `json:"created_at"`   // Data de Cadastro
}

// NewDefault cria o cliente padrão "Consumidor Final"
func NewDefault(name string) *Client {
	if name == "" {
		name = DefaultName
	}
	return &Client{
		ID:          uuid.New().String(),
		Name:        name,
		Phone:       "0000000000",
		Email:       "consumidor@balcao.com",
		CreditLimit: money.Zero,
		CreatedAt:   time.Now(),
	}
}
