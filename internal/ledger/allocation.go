package ledger

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-vendas/internal/domain/money"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
)

// Allocation é a parcela de um recebimento em lote aplicada a uma venda
type Allocation struct {
	SaleID     string      `json:"sale_id"`
	SaleNumber int64       `json:"sale_number"`
	Amount     money.Money `json:"amount"`
	DebtBefore money.Money `json:"debt_before"`
	DebtAfter  money.Money `json:"debt_after"`
	Status     sale.Status `json:"status"`
}

// AllocationResult é o resultado de uma baixa em lote
type AllocationResult struct {
	ClientID          string       `json:"client_id"`
	TotalAmount       money.Money  `json:"total_amount"`
	DistributedAmount money.Money  `json:"distributed_amount"`
	RemainingCredit   money.Money  `json:"remaining_credit"`
	Allocations       []Allocation `json:"allocations"`
}

// PlanAllocation distribui amount entre as vendas em aberto na ordem recebida
// (espera-se da mais antiga para a mais recente). Cada venda recebe no máximo
// o seu saldo devedor; vendas sem saldo são ignoradas e a distribuição para
// quando o valor acaba. Retorna as parcelas e o valor que sobrou.
func PlanAllocation(open []*sale.Sale, amount money.Money) ([]Allocation, money.Money) {
	remaining := amount
	var allocations []Allocation

	for _, s := range open {
		if !remaining.IsPositive() {
			break
		}

		debt := s.Debt()
		if !debt.IsPositive() {
			continue
		}

		applied := money.Min(debt, remaining)
		after := debt.Sub(applied)
		allocations = append(allocations, Allocation{
			SaleID:     s.ID,
			SaleNumber: s.Number,
			Amount:     applied,
			DebtBefore: debt,
			DebtAfter:  after,
			Status:     sale.DeriveStatus(s.Total, s.PaidAmount().Add(applied)),
		})
		remaining = remaining.Sub(applied)
	}

	return allocations, remaining
}

// AllocateBatchPayment distribui um recebimento do cliente entre as suas
// vendas em aberto, da mais antiga para a mais recente. Todas as vendas
// envolvidas ficam bloqueadas até o commit; qualquer falha desfaz o lote
// inteiro. O valor que sobrar após quitar todas as vendas é devolvido em
// RemainingCredit e não gera crédito para o cliente.
func (s *Service) AllocateBatchPayment(ctx context.Context, clientID string, in PaymentInput) (*AllocationResult, error) {
	if err := checkID(clientID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.Note == "" {
		in.Note = sale.NoteBatchPayment
	}

	result := &AllocationResult{
		ClientID:    clientID,
		TotalAmount: in.Amount,
	}
	rec := &recorded{source: SourceBatch}
	err := s.store.Transaction(ctx, func(ctx context.Context, r Repositories) error {
		if err := ensureClient(ctx, r, &clientID); err != nil {
			return err
		}

		open, err := r.Sales.ListOpenByClient(ctx, clientID, true)
		if err != nil {
			return err
		}
		if len(open) == 0 {
			return sale.ErrNoOpenSales
		}

		plan, remaining := PlanAllocation(open, in.Amount)

		byID := make(map[string]*sale.Sale, len(open))
		for _, sl := range open {
			byID[sl.ID] = sl
		}

		for i, a := range plan {
			sl := byID[a.SaleID]
			if _, err := applyPayment(ctx, r.Sales, sl, a.Amount, in.Method, in.Note); err != nil {
				return fmt.Errorf("erro ao baixar venda %d: %w", sl.Number, err)
			}
			plan[i].Status = sl.Status
			rec.add(a.Amount)
		}

		result.Allocations = plan
		result.RemainingCredit = remaining
		result.DistributedAmount = in.Amount.Sub(remaining)
		return nil
	})
	if err != nil {
		s.metrics.allocationFailed(err)
		s.logger.Warn("erro na baixa em lote", "client_id", clientID, "amount", in.Amount.String(), "error", err)
		return nil, err
	}

	if result.Allocations == nil {
		result.Allocations = []Allocation{}
	}
	s.publish(rec)
	s.metrics.allocationSucceeded(len(result.Allocations))
	s.logger.Info("baixa em lote processada",
		"client_id", clientID,
		"total_amount", result.TotalAmount.String(),
		"distributed_amount", result.DistributedAmount.String(),
		"remaining_credit", result.RemainingCredit.String(),
		"sales", len(result.Allocations),
	)
	return result, nil
}
