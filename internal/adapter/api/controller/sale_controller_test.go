package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/route"
	"github.com/hugohenrick/erp-vendas/internal/adapter/repository"
	"github.com/hugohenrick/erp-vendas/internal/domain/client"
	"github.com/hugohenrick/erp-vendas/internal/domain/money"
	"github.com/hugohenrick/erp-vendas/internal/domain/product"
	"github.com/hugohenrick/erp-vendas/internal/ledger"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type api struct {
	router    *gin.Engine
	clientID  string
	productID string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	a := &api{
		router:    gin.New(),
		clientID:  uuid.New().String(),
		productID: uuid.New().String(),
	}
	store.PutClient(client.Client{ID: a.clientID, Name: "João"})
	store.PutProduct(product.Product{ID: a.productID, Name: "Café", SalePrice: money.MustParse("12.50")})

	log := logger.NewNop()
	route.SetupRoutes(a.router, ledger.NewService(store, log, nil), log, nil)
	return a
}

func (a *api) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (a *api) createSale(t *testing.T, body gin.H) dto.SaleResponse {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/sales", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.SaleResponse](t, w)
}

func TestCreateAndGetSale(t *testing.T) {
	a := newAPI(t)

	created := a.createSale(t, gin.H{
		"client_id":       a.clientID,
		"payment_method":  "pix",
		"initial_payment": "5.00",
		"items":           []gin.H{{"product_id": a.productID, "quantity": "2"}},
	})
	assert.Equal(t, "25.00", created.Total)
	assert.Equal(t, "5.00", created.PaidAmount)
	assert.Equal(t, "20.00", created.Debt)
	assert.Equal(t, "partial", string(created.Status))
	require.Len(t, created.Payments, 1)

	w := a.do(t, http.MethodGet, "/api/v1/sales/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.SaleResponse](t, w)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "20.00", got.Debt)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "12.50", got.Items[0].UnitPrice)
}

func TestErrorStatusMapping(t *testing.T) {
	a := newAPI(t)
	s := a.createSale(t, gin.H{"client_id": a.clientID, "total": "10.00"})

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"id inválido", http.MethodGet, "/api/v1/sales/123", nil, http.StatusBadRequest},
		{"venda inexistente", http.MethodGet, "/api/v1/sales/" + uuid.New().String(), nil, http.StatusNotFound},
		{"pagamento acima da dívida", http.MethodPost, "/api/v1/sales/" + s.ID + "/payments", gin.H{"amount": "10.01", "method": "cash"}, http.StatusBadRequest},
		{"pagamento zerado", http.MethodPost, "/api/v1/sales/" + s.ID + "/payments", gin.H{"amount": "0", "method": "cash"}, http.StatusBadRequest},
		{"forma de pagamento ausente", http.MethodPost, "/api/v1/sales/" + s.ID + "/payments", gin.H{"amount": "1.00"}, http.StatusBadRequest},
		{"valor com três casas", http.MethodPost, "/api/v1/sales/" + s.ID + "/payments", gin.H{"amount": "1.005", "method": "cash"}, http.StatusBadRequest},
		{"pagamento inexistente", http.MethodDelete, "/api/v1/sales/payments/" + uuid.New().String(), nil, http.StatusNotFound},
		{"cliente inexistente no lote", http.MethodPost, "/api/v1/sales/batch-payment/" + uuid.New().String(), gin.H{"amount": "1.00", "method": "cash"}, http.StatusNotFound},
		{"cliente inexistente no saldo", http.MethodGet, "/api/v1/clients/" + uuid.New().String() + "/balance", nil, http.StatusNotFound},
		{"cliente com id malformado", http.MethodPost, "/api/v1/sales", gin.H{"client_id": "joao", "total": "1.00"}, http.StatusBadRequest},
		{"produto com id malformado", http.MethodPost, "/api/v1/sales", gin.H{"items": []gin.H{{"product_id": "cafe", "quantity": "1", "unit_price": "2.00"}}}, http.StatusBadRequest},
		{"produto inexistente com preço informado", http.MethodPost, "/api/v1/sales", gin.H{"items": []gin.H{{"product_id": uuid.New().String(), "quantity": "1", "unit_price": "2.00"}}}, http.StatusNotFound},
		{"produto inexistente", http.MethodPost, "/api/v1/sales", gin.H{"items": []gin.H{{"product_id": uuid.New().String(), "quantity": "1"}}}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			resp := decode[dto.ErrorResponse](t, w)
			assert.Equal(t, tt.status, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestPaymentLifecycle(t *testing.T) {
	a := newAPI(t)
	s := a.createSale(t, gin.H{"client_id": a.clientID, "total": "10.00"})

	w := a.do(t, http.MethodPost, "/api/v1/sales/"+s.ID+"/payments", gin.H{"amount": "10.00", "method": "credit_card", "note": "cartão"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[dto.PaymentResponse](t, w)
	assert.Equal(t, "10.00", p.Amount)

	got := decode[dto.SaleResponse](t, a.do(t, http.MethodGet, "/api/v1/sales/"+s.ID, nil))
	assert.Equal(t, "paid", string(got.Status))

	w = a.do(t, http.MethodDelete, "/api/v1/sales/payments/"+p.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	got = decode[dto.SaleResponse](t, a.do(t, http.MethodGet, "/api/v1/sales/"+s.ID, nil))
	assert.Equal(t, "pending", string(got.Status))
	assert.Empty(t, got.Payments)
}

func TestBatchPaymentAndBalance(t *testing.T) {
	a := newAPI(t)
	first := a.createSale(t, gin.H{"client_id": a.clientID, "total": "30.00"})
	second := a.createSale(t, gin.H{"client_id": a.clientID, "total": "50.00"})

	w := a.do(t, http.MethodPost, "/api/v1/sales/batch-payment/"+a.clientID, gin.H{"amount": "40.00", "method": "pix"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[dto.BatchPaymentResponse](t, w)

	assert.Equal(t, "40.00", res.DistributedAmount)
	assert.Equal(t, "0.00", res.RemainingCredit)
	require.Len(t, res.Allocations, 2)
	assert.Equal(t, first.ID, res.Allocations[0].SaleID)
	assert.Equal(t, "paid", string(res.Allocations[0].Status))
	assert.Equal(t, second.ID, res.Allocations[1].SaleID)
	assert.Equal(t, "40.00", res.Allocations[1].DebtAfter)

	w = a.do(t, http.MethodGet, "/api/v1/clients/"+a.clientID+"/balance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	balance := decode[dto.ClientBalanceResponse](t, w)
	assert.Equal(t, "40.00", balance.Outstanding)
	assert.Equal(t, 1, balance.OpenSales)

	w = a.do(t, http.MethodGet, "/api/v1/clients/"+a.clientID+"/open-sales", nil)
	require.Equal(t, http.StatusOK, w.Code)
	open := decode[[]dto.SaleResponse](t, w)
	require.Len(t, open, 1)
	assert.Equal(t, second.ID, open[0].ID)

	a.do(t, http.MethodPost, "/api/v1/sales/batch-payment/"+a.clientID, gin.H{"amount": "40.00", "method": "pix"})
	w = a.do(t, http.MethodPost, "/api/v1/sales/batch-payment/"+a.clientID, gin.H{"amount": "1.00", "method": "pix"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSalesPagination(t *testing.T) {
	a := newAPI(t)
	for i := 0; i < 3; i++ {
		a.createSale(t, gin.H{"total": "1.00"})
	}

	w := a.do(t, http.MethodGet, "/api/v1/sales?page=2&size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.SaleListResponse](t, w)
	assert.Equal(t, 3, list.TotalCount)
	assert.Equal(t, 2, list.TotalPages)
	assert.Equal(t, 2, list.Page)
	assert.Len(t, list.Items, 1)
}

func TestUpdateAndDeleteSale(t *testing.T) {
	a := newAPI(t)
	s := a.createSale(t, gin.H{"items": []gin.H{{"product_id": a.productID, "quantity": "1"}}})

	w := a.do(t, http.MethodPut, "/api/v1/sales/"+s.ID, gin.H{"items": []gin.H{{"product_id": a.productID, "quantity": "3"}}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "37.50", decode[dto.SaleResponse](t, w).Total)

	w = a.do(t, http.MethodDelete, "/api/v1/sales/"+s.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(t, http.MethodGet, "/api/v1/sales/"+s.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type brokenStore struct{}

func (brokenStore) Transaction(context.Context, func(context.Context, ledger.Repositories) error) error {
	return errors.New("conexão perdida")
}

func TestInternalErrorHidesDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	log := logger.NewNop()
	route.SetupRoutes(r, ledger.NewService(brokenStore{}, log, nil), log, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, "erro interno do servidor", resp.Details)
	assert.NotContains(t, w.Body.String(), "conexão perdida")
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	log := logger.NewNop()
	store := repository.NewMemoryStore()
	route.SetupRoutes(r, ledger.NewService(store, log, nil), log, func(context.Context) error {
		return errors.New("banco fora do ar")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
