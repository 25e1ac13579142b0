package product

import (
	"github.com/hugohenrick/erp-vendas/internal/domain/money"
)

// Product representa um produto do catálogo. O razão só lê o preço de venda.
type Product struct {
	ID        string      `json:"id"`         // ID do Produto
	Name      string      `json:"name"`       // Nome
	CostPrice money.Money `json:"cost_price"` // Preço de Custo
	SalePrice money.Money `json:"sale_price"` // Preço de Venda
}
