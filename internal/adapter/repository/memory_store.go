package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hugohenrick/erp-vendas/internal/domain/client"
	"github.com/hugohenrick/erp-vendas/internal/domain/product"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/hugohenrick/erp-vendas/internal/ledger"
)

type memoryState struct {
	clients  map[string]client.Client
	products map[string]product.Product
	sales    map[string]*sale.Sale
	payments map[string]string // pagamento -> venda
	seq      int64
}

func (st *memoryState) clone() *memoryState {
	c := &memoryState{
		clients:  make(map[string]client.Client, len(st.clients)),
		products: make(map[string]product.Product, len(st.products)),
		sales:    make(map[string]*sale.Sale, len(st.sales)),
		payments: make(map[string]string, len(st.payments)),
		seq:      st.seq,
	}
	for k, v := range st.clients {
		c.clients[k] = v
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	for k, v := range st.sales {
		c.sales[k] = cloneSale(v)
	}
	for k, v := range st.payments {
		c.payments[k] = v
	}
	return c
}

func cloneSale(s *sale.Sale) *sale.Sale {
	c := *s
	c.Items = append([]sale.Item{}, s.Items...)
	c.Payments = append([]sale.Payment{}, s.Payments...)
	if s.ClientID != nil {
		id := *s.ClientID
		c.ClientID = &id
	}
	if s.PaymentMethod != nil {
		m := *s.PaymentMethod
		c.PaymentMethod = &m
	}
	return &c
}

// MemoryStore implementa ledger.Store em memória. As unidades de trabalho são
// executadas uma de cada vez e desfeitas por completo em caso de erro.
type MemoryStore struct {
	mu    sync.Mutex
	state *memoryState
}

// NewMemoryStore cria um store vazio
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: &memoryState{
			clients:  map[string]client.Client{},
			products: map[string]product.Product{},
			sales:    map[string]*sale.Sale{},
			payments: map[string]string{},
		},
	}
}

// Transaction implementa ledger.Store
func (m *MemoryStore) Transaction(ctx context.Context, fn func(ctx context.Context, repos ledger.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.state.clone()
	repos := ledger.Repositories{
		Sales:    &memorySales{st: m.state},
		Products: &memoryProducts{st: m.state},
		Clients:  &memoryClients{st: m.state},
	}
	if err := fn(ctx, repos); err != nil {
		m.state = snapshot
		return err
	}
	return nil
}

// PutClient cadastra ou substitui um cliente
func (m *MemoryStore) PutClient(c client.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.clients[c.ID] = c
}

// PutProduct cadastra ou substitui um produto
func (m *MemoryStore) PutProduct(p product.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.products[p.ID] = p
}

// PutSale grava uma venda já montada, com seus pagamentos, preenchendo Number
func (m *MemoryStore) PutSale(s *sale.Sale) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.seq++
	s.Number = m.state.seq
	m.state.sales[s.ID] = cloneSale(s)
	for _, p := range s.Payments {
		m.state.payments[p.ID] = s.ID
	}
}

type memorySales struct {
	st *memoryState
}

func (r *memorySales) Create(_ context.Context, s *sale.Sale) error {
	if _, ok := r.st.sales[s.ID]; ok {
		return fmt.Errorf("venda %s já existe", s.ID)
	}
	r.st.seq++
	s.Number = r.st.seq
	stored := cloneSale(s)
	stored.Payments = []sale.Payment{}
	r.st.sales[s.ID] = stored
	return nil
}

func (r *memorySales) FindByID(_ context.Context, id string, _ bool) (*sale.Sale, error) {
	s, ok := r.st.sales[id]
	if !ok {
		return nil, sale.ErrSaleNotFound
	}
	return cloneSale(s), nil
}

func (r *memorySales) sorted() []*sale.Sale {
	all := make([]*sale.Sale, 0, len(r.st.sales))
	for _, s := range r.st.sales {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].Number < all[j].Number
	})
	return all
}

func (r *memorySales) List(_ context.Context, limit, offset int) ([]*sale.Sale, error) {
	all := r.sorted()
	out := make([]*sale.Sale, 0, limit)
	for i := len(all) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, cloneSale(all[i]))
	}
	return out, nil
}

func (r *memorySales) Count(_ context.Context) (int, error) {
	return len(r.st.sales), nil
}

func (r *memorySales) ListOpenByClient(_ context.Context, clientID string, _ bool) ([]*sale.Sale, error) {
	var out []*sale.Sale
	for _, s := range r.sorted() {
		if s.ClientID == nil || *s.ClientID != clientID || !s.IsOpen() {
			continue
		}
		out = append(out, cloneSale(s))
	}
	return out, nil
}

func (r *memorySales) Update(_ context.Context, s *sale.Sale) error {
	stored, ok := r.st.sales[s.ID]
	if !ok {
		return sale.ErrSaleNotFound
	}
	if stored.Version != s.Version {
		return sale.ErrConcurrentUpdate
	}

	s.Version++
	header := cloneSale(s)
	stored.ClientID = header.ClientID
	stored.PaymentMethod = header.PaymentMethod
	stored.Total = s.Total
	stored.Status = s.Status
	stored.Version = s.Version
	stored.UpdatedAt = s.UpdatedAt
	return nil
}

func (r *memorySales) ReplaceItems(_ context.Context, saleID string, items []sale.Item) error {
	stored, ok := r.st.sales[saleID]
	if !ok {
		return sale.ErrSaleNotFound
	}
	stored.Items = append([]sale.Item{}, items...)
	return nil
}

func (r *memorySales) Delete(_ context.Context, id string) error {
	stored, ok := r.st.sales[id]
	if !ok {
		return sale.ErrSaleNotFound
	}
	for _, p := range stored.Payments {
		delete(r.st.payments, p.ID)
	}
	delete(r.st.sales, id)
	return nil
}

func (r *memorySales) AddPayment(_ context.Context, p *sale.Payment) error {
	stored, ok := r.st.sales[p.SaleID]
	if !ok {
		return sale.ErrSaleNotFound
	}
	stored.Payments = append(stored.Payments, *p)
	r.st.payments[p.ID] = p.SaleID
	return nil
}

func (r *memorySales) FindPayment(_ context.Context, id string) (*sale.Payment, error) {
	saleID, ok := r.st.payments[id]
	if !ok {
		return nil, sale.ErrPaymentNotFound
	}
	for _, p := range r.st.sales[saleID].Payments {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, sale.ErrPaymentNotFound
}

func (r *memorySales) DeletePayment(_ context.Context, id string) error {
	saleID, ok := r.st.payments[id]
	if !ok {
		return sale.ErrPaymentNotFound
	}
	stored := r.st.sales[saleID]
	kept := stored.Payments[:0:0]
	for _, p := range stored.Payments {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	stored.Payments = kept
	delete(r.st.payments, id)
	return nil
}

type memoryProducts struct {
	st *memoryState
}

func (r *memoryProducts) FindByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", sale.ErrProductNotFound, id)
	}
	return &p, nil
}

type memoryClients struct {
	st *memoryState
}

func (r *memoryClients) FindByID(_ context.Context, id string) (*client.Client, error) {
	c, ok := r.st.clients[id]
	if !ok {
		return nil, sale.ErrClientNotFound
	}
	return &c, nil
}

func (r *memoryClients) FindByName(_ context.Context, name string) (*client.Client, error) {
	for _, c := range r.st.clients {
		if c.Name == name {
			found := c
			return &found, nil
		}
	}
	return nil, sale.ErrClientNotFound
}

func (r *memoryClients) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.st.clients[id]
	return ok, nil
}

func (r *memoryClients) EnsureDefault(ctx context.Context, name string) (*client.Client, error) {
	if name == "" {
		name = client.DefaultName
	}
	if found, err := r.FindByName(ctx, name); err == nil {
		return found, nil
	}
	c := client.NewDefault(name)
	r.st.clients[c.ID] = *c
	return c, nil
}
