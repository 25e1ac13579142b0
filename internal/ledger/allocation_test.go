package ledger_test

import (
	"testing"

	"github.com/hugohenrick/erp-vendas/internal/domain/money"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/hugohenrick/erp-vendas/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openWithDebt(number int64, total, paid string) *sale.Sale {
	s := sale.NewSale(nil, nil)
	s.Number = number
	s.Total = money.MustParse(total)
	if p := money.MustParse(paid); p.IsPositive() {
		_, _ = s.AddPayment(p, sale.PaymentMethodCash, "")
	}
	return s
}

func TestPlanAllocation(t *testing.T) {
	tests := []struct {
		name      string
		open      []*sale.Sale
		amount    string
		amounts   []string
		statuses  []sale.Status
		remaining string
	}{
		{
			name:      "quita a mais antiga e abate da seguinte",
			open:      []*sale.Sale{openWithDebt(1, "30.00", "0"), openWithDebt(2, "50.00", "0")},
			amount:    "40.00",
			amounts:   []string{"30.00", "10.00"},
			statuses:  []sale.Status{sale.StatusPaid, sale.StatusPartial},
			remaining: "0.00",
		},
		{
			name:      "sobra crédito quando o valor excede a dívida",
			open:      []*sale.Sale{openWithDebt(1, "30.00", "0"), openWithDebt(2, "50.00", "0")},
			amount:    "100.00",
			amounts:   []string{"30.00", "50.00"},
			statuses:  []sale.Status{sale.StatusPaid, sale.StatusPaid},
			remaining: "20.00",
		},
		{
			name:      "considera pagamentos anteriores",
			open:      []*sale.Sale{openWithDebt(1, "30.00", "25.00"), openWithDebt(2, "50.00", "0")},
			amount:    "10.00",
			amounts:   []string{"5.00", "5.00"},
			statuses:  []sale.Status{sale.StatusPaid, sale.StatusPartial},
			remaining: "0.00",
		},
		{
			name:      "ignora vendas sem saldo",
			open:      []*sale.Sale{openWithDebt(1, "0.00", "0"), openWithDebt(2, "20.00", "0")},
			amount:    "5.00",
			amounts:   []string{"5.00"},
			statuses:  []sale.Status{sale.StatusPartial},
			remaining: "0.00",
		},
		{
			name:      "para quando o valor acaba",
			open:      []*sale.Sale{openWithDebt(1, "10.00", "0"), openWithDebt(2, "20.00", "0"), openWithDebt(3, "5.00", "0")},
			amount:    "10.00",
			amounts:   []string{"10.00"},
			statuses:  []sale.Status{sale.StatusPaid},
			remaining: "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, remaining := ledger.PlanAllocation(tt.open, money.MustParse(tt.amount))

			require.Len(t, plan, len(tt.amounts))
			distributed := money.Zero
			for i, a := range plan {
				assert.Equal(t, tt.amounts[i], a.Amount.String())
				assert.Equal(t, tt.statuses[i], a.Status)
				assert.Equal(t, a.DebtBefore.Sub(a.Amount).String(), a.DebtAfter.String())
				assert.False(t, a.DebtAfter.IsNegative())
				distributed = distributed.Add(a.Amount)
			}
			assert.Equal(t, tt.remaining, remaining.String())
			assert.Equal(t, tt.amount, distributed.Add(remaining).String())
		})
	}
}

func TestPlanAllocation_DoesNotMutateSales(t *testing.T) {
	s := openWithDebt(1, "30.00", "0")

	ledger.PlanAllocation([]*sale.Sale{s}, money.MustParse("30.00"))

	assert.Empty(t, s.Payments)
	assert.Equal(t, sale.StatusPending, s.Status)
}

func TestOutstandingDebt(t *testing.T) {
	sales := []*sale.Sale{
		openWithDebt(1, "30.00", "10.00"),
		openWithDebt(2, "50.00", "0"),
		openWithDebt(3, "20.00", "20.00"),
	}

	assert.Equal(t, "70.00", ledger.OutstandingDebt(sales).String())
	assert.True(t, ledger.OutstandingDebt(nil).IsZero())
}
