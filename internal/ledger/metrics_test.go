package ledger_test

import (
	"context"
	"strings"
	"testing"

	"github.com/hugohenrick/erp-vendas/internal/domain/money"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/hugohenrick/erp-vendas/internal/ledger"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_PublishedAfterCommit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := prometheus.NewPedanticRegistry()
	svc := ledger.NewService(f.store, logger.NewNop(), ledger.NewMetrics(reg))

	a, err := svc.CreateSale(ctx, ledger.CreateSaleInput{ClientID: &f.clientID, Total: money.MustParse("30.00")})
	require.NoError(t, err)
	_, err = svc.CreateSale(ctx, ledger.CreateSaleInput{ClientID: &f.clientID, Total: money.MustParse("50.00")})
	require.NoError(t, err)

	p, err := svc.RecordPayment(ctx, a.ID, pay("10.00", sale.PaymentMethodCash))
	require.NoError(t, err)
	_, err = svc.RecordPayment(ctx, a.ID, pay("99.00", sale.PaymentMethodCash))
	require.ErrorIs(t, err, sale.ErrOverpayment)
	require.NoError(t, svc.DeletePayment(ctx, p.ID))

	_, err = svc.AllocateBatchPayment(ctx, f.clientID, pay("40.00", sale.PaymentMethodPix))
	require.NoError(t, err)

	expected := `
# HELP erp_vendas_ledger_payments_total Pagamentos registrados por origem.
# TYPE erp_vendas_ledger_payments_total counter
erp_vendas_ledger_payments_total{source="batch"} 2
erp_vendas_ledger_payments_total{source="manual"} 1
# HELP erp_vendas_ledger_payments_deleted_total Pagamentos excluídos.
# TYPE erp_vendas_ledger_payments_deleted_total counter
erp_vendas_ledger_payments_deleted_total 1
# HELP erp_vendas_ledger_sales_created_total Vendas criadas.
# TYPE erp_vendas_ledger_sales_created_total counter
erp_vendas_ledger_sales_created_total 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"erp_vendas_ledger_payments_total",
		"erp_vendas_ledger_payments_deleted_total",
		"erp_vendas_ledger_sales_created_total",
	))
}

func TestMetrics_BatchOutcomes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := prometheus.NewPedanticRegistry()
	svc := ledger.NewService(f.store, nil, ledger.NewMetrics(reg))

	_, err := svc.AllocateBatchPayment(ctx, f.clientID, pay("10.00", sale.PaymentMethodCash))
	require.ErrorIs(t, err, sale.ErrNoOpenSales)

	f.openSale(t, "10.00")
	_, err = svc.AllocateBatchPayment(ctx, f.clientID, pay("10.00", sale.PaymentMethodCash))
	require.NoError(t, err)

	expected := `
# HELP erp_vendas_ledger_batch_allocations_total Baixas em lote por resultado.
# TYPE erp_vendas_ledger_batch_allocations_total counter
erp_vendas_ledger_batch_allocations_total{outcome="no_open_sales"} 1
erp_vendas_ledger_batch_allocations_total{outcome="ok"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "erp_vendas_ledger_batch_allocations_total"))
}
