package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/erp-vendas/internal/domain/client"
	"github.com/hugohenrick/erp-vendas/internal/domain/money"
	"github.com/hugohenrick/erp-vendas/internal/domain/product"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/hugohenrick/erp-vendas/internal/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSale(clientID string, total string, createdAt time.Time) *sale.Sale {
	s := sale.NewSale(&clientID, nil)
	s.Total = money.MustParse(total)
	s.CreatedAt = createdAt
	return s
}

func TestMemoryStore_RollbackOnError(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	s := newSale("c1", "100.00", time.Now())
	store.PutSale(s)

	boom := errors.New("falha")
	err := store.Transaction(ctx, func(ctx context.Context, r ledger.Repositories) error {
		loaded, err := r.Sales.FindByID(ctx, s.ID, true)
		require.NoError(t, err)
		p, err := loaded.AddPayment(money.MustParse("40.00"), sale.PaymentMethodPix, "")
		require.NoError(t, err)
		require.NoError(t, r.Sales.AddPayment(ctx, &p))
		require.NoError(t, r.Sales.Update(ctx, loaded))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = store.Transaction(ctx, func(ctx context.Context, r ledger.Repositories) error {
		loaded, err := r.Sales.FindByID(ctx, s.ID, false)
		require.NoError(t, err)
		assert.Empty(t, loaded.Payments)
		assert.Equal(t, sale.StatusPending, loaded.Status)
		assert.Equal(t, 1, loaded.Version)
		return nil
	})
	require.NoError(t, err)
}

func TestMemoryStore_UpdateVersionCheck(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	s := newSale("c1", "10.00", time.Now())
	store.PutSale(s)

	err := store.Transaction(ctx, func(ctx context.Context, r ledger.Repositories) error {
		first, err := r.Sales.FindByID(ctx, s.ID, true)
		require.NoError(t, err)
		stale, err := r.Sales.FindByID(ctx, s.ID, true)
		require.NoError(t, err)

		require.NoError(t, r.Sales.Update(ctx, first))
		assert.Equal(t, 2, first.Version)
		return r.Sales.Update(ctx, stale)
	})
	assert.ErrorIs(t, err, sale.ErrConcurrentUpdate)
	assert.ErrorIs(t, err, sale.ErrConflict)
}

func TestMemoryStore_ListOpenByClientOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	newest := newSale("c1", "10.00", base.Add(2*time.Hour))
	oldest := newSale("c1", "10.00", base)
	sameTimeA := newSale("c1", "10.00", base.Add(time.Hour))
	sameTimeB := newSale("c1", "10.00", base.Add(time.Hour))
	paid := newSale("c1", "10.00", base.Add(-time.Hour))
	paid.Status = sale.StatusPaid
	other := newSale("c2", "10.00", base.Add(-time.Hour))

	for _, s := range []*sale.Sale{newest, oldest, sameTimeA, sameTimeB, paid, other} {
		store.PutSale(s)
	}

	err := store.Transaction(ctx, func(ctx context.Context, r ledger.Repositories) error {
		open, err := r.Sales.ListOpenByClient(ctx, "c1", true)
		require.NoError(t, err)
		ids := make([]string, 0, len(open))
		for _, s := range open {
			ids = append(ids, s.ID)
		}
		assert.Equal(t, []string{oldest.ID, sameTimeA.ID, sameTimeB.ID, newest.ID}, ids)
		return nil
	})
	require.NoError(t, err)
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Now()
	var ids []string
	for i := 0; i < 5; i++ {
		s := newSale("c1", "1.00", base.Add(time.Duration(i)*time.Minute))
		store.PutSale(s)
		ids = append(ids, s.ID)
	}

	err := store.Transaction(ctx, func(ctx context.Context, r ledger.Repositories) error {
		page, err := r.Sales.List(ctx, 2, 1)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, ids[3], page[0].ID)
		assert.Equal(t, ids[2], page[1].ID)

		count, err := r.Sales.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, count)

		tail, err := r.Sales.List(ctx, 10, 4)
		require.NoError(t, err)
		assert.Len(t, tail, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestMemoryStore_PaymentsAndDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	s := newSale("c1", "50.00", time.Now())
	store.PutSale(s)

	var paymentID string
	err := store.Transaction(ctx, func(ctx context.Context, r ledger.Repositories) error {
		loaded, err := r.Sales.FindByID(ctx, s.ID, true)
		require.NoError(t, err)
		p, err := loaded.AddPayment(money.MustParse("20.00"), sale.PaymentMethodCash, "")
		require.NoError(t, err)
		paymentID = p.ID
		require.NoError(t, r.Sales.AddPayment(ctx, &p))
		return r.Sales.Update(ctx, loaded)
	})
	require.NoError(t, err)

	err = store.Transaction(ctx, func(ctx context.Context, r ledger.Repositories) error {
		p, err := r.Sales.FindPayment(ctx, paymentID)
		require.NoError(t, err)
		assert.Equal(t, s.ID, p.SaleID)
		assert.True(t, p.Amount.Equal(money.MustParse("20")))

		require.NoError(t, r.Sales.Delete(ctx, s.ID))
		_, err = r.Sales.FindPayment(ctx, paymentID)
		assert.ErrorIs(t, err, sale.ErrPaymentNotFound)
		_, err = r.Sales.FindByID(ctx, s.ID, false)
		assert.ErrorIs(t, err, sale.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestMemoryStore_ProductsAndClients(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	store.PutProduct(product.Product{ID: "p1", Name: "Arroz", SalePrice: money.MustParse("4.50")})
	store.PutClient(client.Client{ID: "c1", Name: "Maria"})

	err := store.Transaction(ctx, func(ctx context.Context, r ledger.Repositories) error {
		p, err := r.Products.FindByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "4.50", p.SalePrice.String())
		_, err = r.Products.FindByID(ctx, "nope")
		assert.ErrorIs(t, err, sale.ErrProductNotFound)

		ok, err := r.Clients.Exists(ctx, "c1")
		require.NoError(t, err)
		assert.True(t, ok)

		first, err := r.Clients.EnsureDefault(ctx, "")
		require.NoError(t, err)
		second, err := r.Clients.EnsureDefault(ctx, client.DefaultName)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, client.DefaultName, first.Name)
		return nil
	})
	require.NoError(t, err)
}

func TestMemoryStore_ReplaceItems(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	s := newSale("c1", "0.00", time.Now())
	store.PutSale(s)

	err := store.Transaction(ctx, func(ctx context.Context, r ledger.Repositories) error {
		items := []sale.Item{sale.NewItem(s.ID, "p1", decimal.NewFromInt(2), money.MustParse("3.00"))}
		require.NoError(t, r.Sales.ReplaceItems(ctx, s.ID, items))
		loaded, err := r.Sales.FindByID(ctx, s.ID, false)
		require.NoError(t, err)
		require.Len(t, loaded.Items, 1)
		assert.Equal(t, "6.00", loaded.Items[0].Subtotal.String())
		return nil
	})
	require.NoError(t, err)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.Transaction(ctx, func(ctx context.Context, r ledger.Repositories) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
