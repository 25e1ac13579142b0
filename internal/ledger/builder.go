package ledger

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-vendas/internal/domain/money"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/shopspring/decimal"
)

// ItemInput é um item informado na criação ou alteração da venda.
// Sem UnitPrice é usado o preço de venda atual do produto.
type ItemInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice *money.Money
}

// CreateSaleInput contém os dados de criação de uma venda
type CreateSaleInput struct {
	ClientID       *string
	Status         sale.Status // StatusPaid gera um pagamento do total
	PaymentMethod  *sale.PaymentMethod
	Total          money.Money // zero usa a soma dos itens
	Items          []ItemInput
	InitialPayment money.Money // entrada paga no ato da venda
}

// UpdateSaleInput contém os dados de alteração de uma venda. Os itens são
// sempre substituídos por completo.
type UpdateSaleInput struct {
	ClientID      *string
	PaymentMethod *sale.PaymentMethod
	Total         money.Money
	Items         []ItemInput
}

func validateHeader(method *sale.PaymentMethod, total money.Money) error {
	if method != nil && !method.Valid() {
		return fmt.Errorf("%w: %q", sale.ErrInvalidPaymentMethod, *method)
	}
	if total.IsNegative() {
		return sale.ErrInvalidTotal
	}
	return nil
}

// resolveItems valida quantidades e fixa o preço unitário de cada item. O
// produto precisa existir mesmo quando o preço é informado.
func resolveItems(ctx context.Context, r Repositories, saleID string, inputs []ItemInput) ([]sale.Item, error) {
	items := make([]sale.Item, 0, len(inputs))
	for _, in := range inputs {
		if err := checkID(in.ProductID); err != nil {
			return nil, fmt.Errorf("produto do item: %w", err)
		}
		qty, err := money.ValidateQuantity(in.Quantity)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", sale.ErrInvalidQuantity, err)
		}
		if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
			return nil, sale.ErrInvalidUnitPrice
		}

		p, err := r.Products.FindByID(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		price := p.SalePrice
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}

		items = append(items, sale.NewItem(saleID, in.ProductID, qty, price))
	}
	return items, nil
}

func ensureClient(ctx context.Context, r Repositories, clientID *string) error {
	if clientID == nil {
		return nil
	}
	if err := checkID(*clientID); err != nil {
		return fmt.Errorf("cliente: %w", err)
	}
	ok, err := r.Clients.Exists(ctx, *clientID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", sale.ErrClientNotFound, *clientID)
	}
	return nil
}

// CreateSale monta uma nova venda a partir dos itens e registra o pagamento
// inicial quando houver.
func (s *Service) CreateSale(ctx context.Context, in CreateSaleInput) (*sale.Sale, error) {
	if in.Status != "" && !in.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", sale.ErrInvalidStatus, in.Status)
	}
	if err := validateHeader(in.PaymentMethod, in.Total); err != nil {
		return nil, err
	}
	if in.InitialPayment.IsNegative() {
		return nil, sale.ErrNonPositiveAmount
	}

	var created *sale.Sale
	rec := &recorded{source: SourceInitial}
	err := s.store.Transaction(ctx, func(ctx context.Context, r Repositories) error {
		if err := ensureClient(ctx, r, in.ClientID); err != nil {
			return err
		}

		sl := sale.NewSale(in.ClientID, in.PaymentMethod)
		items, err := resolveItems(ctx, r, sl.ID, in.Items)
		if err != nil {
			return err
		}
		if err := sl.ReplaceItems(items, in.Total); err != nil {
			return err
		}
		if err := r.Sales.Create(ctx, sl); err != nil {
			return err
		}

		initial := money.Zero
		if in.Status == sale.StatusPaid {
			initial = sl.Total
		} else if in.InitialPayment.IsPositive() {
			initial = in.InitialPayment
		}

		if initial.IsPositive() {
			if sl.PaymentMethod == nil {
				return fmt.Errorf("%w: obrigatória para o pagamento inicial", sale.ErrInvalidPaymentMethod)
			}
			if _, err := applyPayment(ctx, r.Sales, sl, initial, *sl.PaymentMethod, sale.NoteInitialPayment); err != nil {
				return err
			}
			rec.add(initial)
		}

		created = sl
		return nil
	})
	if err != nil {
		s.logger.Warn("erro ao criar venda", "error", err)
		return nil, err
	}

	s.publish(rec)
	s.metrics.saleCreated()
	s.logger.Info("venda criada",
		"sale_id", created.ID,
		"number", created.Number,
		"total", created.Total.String(),
		"status", string(created.Status),
		"items", len(created.Items),
	)
	return created, nil
}

// UpdateSale substitui os itens da venda e recalcula total e status
func (s *Service) UpdateSale(ctx context.Context, saleID string, in UpdateSaleInput) (*sale.Sale, error) {
	if err := checkID(saleID); err != nil {
		return nil, err
	}
	if err := validateHeader(in.PaymentMethod, in.Total); err != nil {
		return nil, err
	}

	var updated *sale.Sale
	err := s.store.Transaction(ctx, func(ctx context.Context, r Repositories) error {
		sl, err := r.Sales.FindByID(ctx, saleID, true)
		if err != nil {
			return err
		}
		if err := ensureClient(ctx, r, in.ClientID); err != nil {
			return err
		}

		items, err := resolveItems(ctx, r, sl.ID, in.Items)
		if err != nil {
			return err
		}
		if err := sl.ReplaceItems(items, in.Total); err != nil {
			return err
		}
		sl.ClientID = in.ClientID
		if in.PaymentMethod != nil {
			sl.PaymentMethod = in.PaymentMethod
		}

		if err := r.Sales.ReplaceItems(ctx, sl.ID, sl.Items); err != nil {
			return err
		}
		if err := r.Sales.Update(ctx, sl); err != nil {
			return err
		}
		updated = sl
		return nil
	})
	if err != nil {
		s.logger.Warn("erro ao atualizar venda", "sale_id", saleID, "error", err)
		return nil, err
	}

	s.logger.Info("venda atualizada", "sale_id", updated.ID, "total", updated.Total.String(), "status", string(updated.Status))
	return updated, nil
}
