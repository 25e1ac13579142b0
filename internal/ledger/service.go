// Package ledger implementa o contas a receber: registro de pagamentos,
// saldo devedor por cliente, baixa automática em lote (FIFO) e montagem de
// vendas a partir de itens.
package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hugohenrick/erp-vendas/internal/domain/client"
	"github.com/hugohenrick/erp-vendas/internal/domain/money"
	"github.com/hugohenrick/erp-vendas/internal/domain/product"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
)

// Repositories agrupa os repositórios de uma mesma transação
type Repositories struct {
	Sales    sale.Repository
	Products product.Repository
	Clients  client.Repository
}

// Store executa unidades de trabalho transacionais. Se fn retornar erro nada
// do que foi gravado dentro dela fica visível.
type Store interface {
	Transaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// Service é o serviço de contas a receber
type Service struct {
	store   Store
	logger  logger.Logger
	metrics *Metrics
}

// NewService cria uma nova instância de Service. metrics pode ser nil.
func NewService(store Store, log logger.Logger, metrics *Metrics) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		store:   store,
		logger:  log,
		metrics: metrics,
	}
}

// PaymentInput contém os dados de um pagamento avulso ou em lote
type PaymentInput struct {
	Amount money.Money
	Method sale.PaymentMethod
	Note   string
}

// checkID rejeita ids vazios ou que não sejam UUID antes de chegar ao banco
func checkID(id string) error {
	if id == "" {
		return sale.ErrEmptyID
	}
	if err := uuid.Validate(id); err != nil {
		return fmt.Errorf("%w: %q", sale.ErrInvalidID, id)
	}
	return nil
}

func (in PaymentInput) validate() error {
	if !in.Amount.IsPositive() {
		return sale.ErrNonPositiveAmount
	}
	if !in.Method.Valid() {
		return fmt.Errorf("%w: %q", sale.ErrInvalidPaymentMethod, in.Method)
	}
	return nil
}

// recorded guarda os pagamentos de uma transação para publicar métricas após o commit
type recorded struct {
	source  string
	amounts []money.Money
}

func (r *recorded) add(amount money.Money) {
	r.amounts = append(r.amounts, amount)
}

func (s *Service) publish(r *recorded) {
	for _, a := range r.amounts {
		s.metrics.paymentRecorded(r.source, a)
	}
}

// applyPayment anexa o pagamento à venda, grava o pagamento e o novo status.
// A venda deve ter sido lida com lock na transação corrente.
func applyPayment(ctx context.Context, repo sale.Repository, s *sale.Sale, amount money.Money, method sale.PaymentMethod, note string) (*sale.Payment, error) {
	p, err := s.AddPayment(amount, method, note)
	if err != nil {
		return nil, err
	}
	if err := repo.AddPayment(ctx, &p); err != nil {
		return nil, err
	}
	if err := repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return &p, nil
}

// RecordPayment registra um pagamento em uma venda e recalcula o status
func (s *Service) RecordPayment(ctx context.Context, saleID string, in PaymentInput) (*sale.Payment, error) {
	if err := checkID(saleID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	var payment *sale.Payment
	rec := &recorded{source: SourceManual}
	err := s.store.Transaction(ctx, func(ctx context.Context, r Repositories) error {
		sl, err := r.Sales.FindByID(ctx, saleID, true)
		if err != nil {
			return err
		}
		payment, err = applyPayment(ctx, r.Sales, sl, in.Amount, in.Method, in.Note)
		if err != nil {
			return err
		}
		rec.add(in.Amount)
		return nil
	})
	if err != nil {
		s.logger.Warn("erro ao registrar pagamento", "sale_id", saleID, "amount", in.Amount.String(), "error", err)
		return nil, err
	}

	s.publish(rec)
	s.logger.Info("pagamento registrado", "sale_id", saleID, "payment_id", payment.ID, "amount", in.Amount.String())
	return payment, nil
}

// DeletePayment remove um pagamento e recalcula o status da venda
func (s *Service) DeletePayment(ctx context.Context, paymentID string) error {
	if err := checkID(paymentID); err != nil {
		return err
	}

	err := s.store.Transaction(ctx, func(ctx context.Context, r Repositories) error {
		p, err := r.Sales.FindPayment(ctx, paymentID)
		if err != nil {
			return err
		}
		sl, err := r.Sales.FindByID(ctx, p.SaleID, true)
		if err != nil {
			return err
		}
		if _, err := sl.RemovePayment(paymentID); err != nil {
			return err
		}
		if err := r.Sales.DeletePayment(ctx, paymentID); err != nil {
			return err
		}
		return r.Sales.Update(ctx, sl)
	})
	if err != nil {
		s.logger.Warn("erro ao excluir pagamento", "payment_id", paymentID, "error", err)
		return err
	}

	s.metrics.paymentDeleted()
	s.logger.Info("pagamento excluído", "payment_id", paymentID)
	return nil
}

// GetSale busca uma venda com itens e pagamentos
func (s *Service) GetSale(ctx context.Context, saleID string) (*sale.Sale, error) {
	if err := checkID(saleID); err != nil {
		return nil, err
	}

	var found *sale.Sale
	err := s.store.Transaction(ctx, func(ctx context.Context, r Repositories) error {
		var err error
		found, err = r.Sales.FindByID(ctx, saleID, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListSales lista as vendas com paginação e retorna também o total de registros
func (s *Service) ListSales(ctx context.Context, limit, offset int) ([]*sale.Sale, int, error) {
	var (
		sales []*sale.Sale
		total int
	)
	err := s.store.Transaction(ctx, func(ctx context.Context, r Repositories) error {
		var err error
		if sales, err = r.Sales.List(ctx, limit, offset); err != nil {
			return err
		}
		total, err = r.Sales.Count(ctx)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

// DeleteSale remove a venda com seus itens e pagamentos
func (s *Service) DeleteSale(ctx context.Context, saleID string) error {
	if err := checkID(saleID); err != nil {
		return err
	}

	err := s.store.Transaction(ctx, func(ctx context.Context, r Repositories) error {
		if _, err := r.Sales.FindByID(ctx, saleID, true); err != nil {
			return err
		}
		return r.Sales.Delete(ctx, saleID)
	})
	if err != nil {
		s.logger.Warn("erro ao excluir venda", "sale_id", saleID, "error", err)
		return err
	}

	s.logger.Info("venda excluída", "sale_id", saleID)
	return nil
}
