package sale

import (
	"context"
)

// Repository define a interface para operações de repositório de vendas.
// As operações são executadas dentro da transação em que o repositório foi
// obtido.
type Repository interface {
	// Create grava uma nova venda com seus itens. Os pagamentos são gravados
	// separadamente com AddPayment. Preenche Number.
	Create(ctx context.Context, s *Sale) error

	// FindByID busca uma venda com itens e pagamentos. Com lock=true a linha da
	// venda fica bloqueada até o fim da transação.
	FindByID(ctx context.Context, id string, lock bool) (*Sale, error)

	// List lista as vendas, mais recentes primeiro
	List(ctx context.Context, limit, offset int) ([]*Sale, error)

	// Count conta as vendas
	Count(ctx context.Context) (int, error)

	// ListOpenByClient lista as vendas não quitadas de um cliente, da mais
	// antiga para a mais recente (data da venda, depois número).
	ListOpenByClient(ctx context.Context, clientID string, lock bool) ([]*Sale, error)

	// Update grava cliente, forma de pagamento, total e status da venda se a
	// versão persistida ainda for s.Version e incrementa s.Version. Retorna
	// ErrConcurrentUpdate se a versão mudou.
	Update(ctx context.Context, s *Sale) error

	// ReplaceItems exclui os itens atuais da venda e grava os novos
	ReplaceItems(ctx context.Context, saleID string, items []Item) error

	// Delete remove a venda, seus itens e pagamentos
	Delete(ctx context.Context, id string) error

	// AddPayment grava um novo pagamento
	AddPayment(ctx context.Context, p *Payment) error

	// FindPayment busca um pagamento pelo ID
	FindPayment(ctx context.Context, id string) (*Payment, error)

	// DeletePayment remove um pagamento
	DeletePayment(ctx context.Context, id string) error
}
