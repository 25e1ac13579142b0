package sale

import (
	"errors"
	"testing"

	"github.com/hugohenrick/erp-vendas/internal/domain/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func m(s string) money.Money { return money.MustParse(s) }

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name  string
		total string
		paid  string
		want  Status
	}{
		{"nothing paid", "10.00", "0", StatusPending},
		{"partially paid", "10.00", "4.00", StatusPartial},
		{"exactly paid", "10.00", "10.00", StatusPaid},
		{"overpaid", "10.00", "12.00", StatusPaid},
		{"zero total without payments is pending", "0", "0", StatusPending},
		{"zero total with payment", "0", "1.00", StatusPaid},
		{"one cent short", "10.00", "9.99", StatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(m(tt.total), m(tt.paid)))
		})
	}
}

func TestSaleAddPayment(t *testing.T) {
	s := NewSale(nil, nil)
	s.Total = m("30.00")

	p, err := s.AddPayment(m("10.00"), PaymentMethodPix, "entrada")
	require.NoError(t, err)
	assert.Equal(t, s.ID, p.SaleID)
	assert.Equal(t, StatusPartial, s.Status)
	assert.Equal(t, "20.00", s.Debt().String())

	_, err = s.AddPayment(m("20.01"), PaymentMethodPix, "")
	assert.ErrorIs(t, err, ErrOverpayment)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.AddPayment(money.Zero, PaymentMethodPix, "")
	assert.ErrorIs(t, err, ErrNonPositiveAmount)

	_, err = s.AddPayment(m("-1.00"), PaymentMethodPix, "")
	assert.ErrorIs(t, err, ErrNonPositiveAmount)

	_, err = s.AddPayment(m("1.00"), PaymentMethod("cheque"), "")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	_, err = s.AddPayment(m("20.00"), PaymentMethodCash, "")
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, s.Status)
	assert.True(t, s.Debt().IsZero())
	assert.False(t, s.IsOpen())
	require.Len(t, s.Payments, 2)
}

func TestSaleRemovePaymentRecomputesStatus(t *testing.T) {
	s := NewSale(nil, nil)
	s.Total = m("10.00")
	p, err := s.AddPayment(m("10.00"), PaymentMethodCash, "")
	require.NoError(t, err)
	require.Equal(t, StatusPaid, s.Status)

	removed, err := s.RemovePayment(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, removed.ID)
	assert.Equal(t, StatusPending, s.Status)
	assert.Empty(t, s.Payments)

	_, err = s.RemovePayment(p.ID)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaleReplaceItems(t *testing.T) {
	s := NewSale(nil, nil)
	items := []Item{
		NewItem("", "p1", decimal.NewFromInt(2), m("5.00")),
		NewItem("", "p2", decimal.NewFromInt(1), m("3.00")),
	}

	require.NoError(t, s.ReplaceItems(items, money.Zero))
	assert.Equal(t, "13.00", s.Total.String())
	for _, it := range s.Items {
		assert.Equal(t, s.ID, it.SaleID)
	}

	require.NoError(t, s.ReplaceItems(items, m("20.00")))
	assert.Equal(t, "20.00", s.Total.String())

	_, err := s.AddPayment(m("15.00"), PaymentMethodCash, "")
	require.NoError(t, err)

	err = s.ReplaceItems([]Item{NewItem("", "p1", decimal.NewFromInt(1), m("5.00"))}, money.Zero)
	assert.ErrorIs(t, err, ErrTotalBelowPaid)
	assert.Equal(t, "20.00", s.Total.String())
}

func TestErrorKinds(t *testing.T) {
	assert.True(t, errors.Is(ErrNoOpenSales, ErrNotFound))
	assert.True(t, errors.Is(ErrConcurrentUpdate, ErrConflict))
	assert.False(t, errors.Is(ErrSaleNotFound, ErrValidation))
	assert.Equal(t, "venda não encontrada", ErrSaleNotFound.Error())
}
