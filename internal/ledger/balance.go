package ledger

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-vendas/internal/domain/money"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
)

// ClientBalance é o saldo devedor de um cliente, calculado no momento da leitura
type ClientBalance struct {
	ClientID    string      `json:"client_id"`
	OpenSales   int         `json:"open_sales"`
	Outstanding money.Money `json:"outstanding"`
}

// OutstandingDebt soma o saldo devedor das vendas não quitadas
func OutstandingDebt(sales []*sale.Sale) money.Money {
	total := money.Zero
	for _, s := range sales {
		if !s.IsOpen() {
			continue
		}
		total = total.Add(s.Debt())
	}
	return total
}

func (s *Service) openSales(ctx context.Context, r Repositories, clientID string) ([]*sale.Sale, error) {
	ok, err := r.Clients.Exists(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", sale.ErrClientNotFound, clientID)
	}
	return r.Sales.ListOpenByClient(ctx, clientID, false)
}

// OpenSales lista as vendas não quitadas do cliente, da mais antiga para a mais recente
func (s *Service) OpenSales(ctx context.Context, clientID string) ([]*sale.Sale, error) {
	if err := checkID(clientID); err != nil {
		return nil, err
	}

	var open []*sale.Sale
	err := s.store.Transaction(ctx, func(ctx context.Context, r Repositories) error {
		var err error
		open, err = s.openSales(ctx, r, clientID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return open, nil
}

// OutstandingBalance calcula o saldo devedor do cliente
func (s *Service) OutstandingBalance(ctx context.Context, clientID string) (ClientBalance, error) {
	if err := checkID(clientID); err != nil {
		return ClientBalance{}, err
	}

	balance := ClientBalance{ClientID: clientID, Outstanding: money.Zero}
	err := s.store.Transaction(ctx, func(ctx context.Context, r Repositories) error {
		open, err := s.openSales(ctx, r, clientID)
		if err != nil {
			return err
		}
		balance.OpenSales = len(open)
		balance.Outstanding = OutstandingDebt(open)
		return nil
	})
	if err != nil {
		return ClientBalance{}, err
	}
	return balance, nil
}
