package ledger

import (
	"errors"

	"github.com/hugohenrick/erp-vendas/internal/domain/money"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/prometheus/client_golang/prometheus"
)

// Origem dos pagamentos registrados
const (
	SourceManual  = "manual"
	SourceInitial = "initial"
	SourceBatch   = "batch"
)

// Metrics agrupa os coletores do contas a receber. Um *Metrics nil não
// registra nada.
type Metrics struct {
	paymentsTotal   *prometheus.CounterVec
	paymentsAmount  *prometheus.CounterVec
	paymentsDeleted prometheus.Counter
	salesCreated    prometheus.Counter
	allocations     *prometheus.CounterVec
	batchSales      prometheus.Histogram
}

// NewMetrics cria e registra os coletores em reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		paymentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "erp_vendas",
			Subsystem: "ledger",
			Name:      "payments_total",
			Help:      "Pagamentos registrados por origem.",
		}, []string{"source"}),
		paymentsAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "erp_vendas",
			Subsystem: "ledger",
			Name:      "payments_amount_total",
			Help:      "Soma dos valores recebidos por origem.",
		}, []string{"source"}),
		paymentsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "erp_vendas",
			Subsystem: "ledger",
			Name:      "payments_deleted_total",
			Help:      "Pagamentos excluídos.",
		}),
		salesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "erp_vendas",
			Subsystem: "ledger",
			Name:      "sales_created_total",
			Help:      "Vendas criadas.",
		}),
		allocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "erp_vendas",
			Subsystem: "ledger",
			Name:      "batch_allocations_total",
			Help:      "Baixas em lote por resultado.",
		}, []string{"outcome"}),
		batchSales: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "erp_vendas",
			Subsystem: "ledger",
			Name:      "batch_allocation_sales",
			Help:      "Quantidade de vendas baixadas por lote.",
			Buckets:   []float64{1, 2, 3, 5, 10, 20, 50},
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.paymentsTotal,
			m.paymentsAmount,
			m.paymentsDeleted,
			m.salesCreated,
			m.allocations,
			m.batchSales,
		)
	}
	return m
}

func (m *Metrics) paymentRecorded(source string, amount money.Money) {
	if m == nil {
		return
	}
	m.paymentsTotal.WithLabelValues(source).Inc()
	m.paymentsAmount.WithLabelValues(source).Add(amount.Decimal().InexactFloat64())
}

func (m *Metrics) paymentDeleted() {
	if m == nil {
		return
	}
	m.paymentsDeleted.Inc()
}

func (m *Metrics) saleCreated() {
	if m == nil {
		return
	}
	m.salesCreated.Inc()
}

func (m *Metrics) allocationSucceeded(sales int) {
	if m == nil {
		return
	}
	m.allocations.WithLabelValues("ok").Inc()
	m.batchSales.Observe(float64(sales))
}

func (m *Metrics) allocationFailed(err error) {
	if m == nil {
		return
	}
	outcome := "error"
	switch {
	case errors.Is(err, sale.ErrNoOpenSales):
		outcome = "no_open_sales"
	case errors.Is(err, sale.ErrValidation):
		outcome = "invalid"
	case errors.Is(err, sale.ErrNotFound):
		outcome = "not_found"
	case errors.Is(err, sale.ErrConflict):
		outcome = "conflict"
	}
	m.allocations.WithLabelValues(outcome).Inc()
}
