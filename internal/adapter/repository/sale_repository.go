package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/erp-vendas/internal/domain/money"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const saleColumns = `id::text, number, client_id::text, created_at, payment_method,
	total::text, status, version, updated_at`

// SaleRepository implementa a interface sale.Repository
type SaleRepository struct {
	db Querier
}

// NewSaleRepository cria uma nova instância de SaleRepository
func NewSaleRepository(db Querier) sale.Repository {
	return &SaleRepository{db: db}
}

// Create implementa sale.Repository.Create
func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO sales (
			id, client_id, created_at, payment_method, total, status, version, updated_at
		) VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8)
		RETURNING number`,
		s.ID, s.ClientID, s.CreatedAt, methodParam(s.PaymentMethod), s.Total.String(),
		string(s.Status), s.Version, s.UpdatedAt).Scan(&s.Number)
	if err != nil {
		return fmt.Errorf("erro ao criar venda: %w", err)
	}

	return r.insertItems(ctx, s.Items)
}

func (r *SaleRepository) insertItems(ctx context.Context, items []sale.Item) error {
	for _, it := range items {
		_, err := r.db.Exec(ctx,
			`INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6::numeric)`,
			it.ID, it.SaleID, it.ProductID, it.Quantity.String(),
			it.UnitPrice.String(), it.Subtotal.String())
		if err != nil {
			return fmt.Errorf("erro ao gravar item da venda: %w", err)
		}
	}
	return nil
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, id string, lock bool) (*sale.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	s, err := scanSale(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sale.ErrSaleNotFound
		}
		return nil, fmt.Errorf("erro ao buscar venda: %w", err)
	}

	if err := r.loadChildren(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// List implementa sale.Repository.List
func (r *SaleRepository) List(ctx context.Context, limit, offset int) ([]*sale.Sale, error) {
	return r.query(ctx,
		`SELECT `+saleColumns+` FROM sales
		ORDER BY created_at DESC, number DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
}

// Count implementa sale.Repository.Count
func (r *SaleRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sales`).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar vendas: %w", err)
	}
	return count, nil
}

// ListOpenByClient implementa sale.Repository.ListOpenByClient
func (r *SaleRepository) ListOpenByClient(ctx context.Context, clientID string, lock bool) ([]*sale.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales
		WHERE client_id = $1 AND status <> 'paid'
		ORDER BY created_at ASC, number ASC`
	if lock {
		query += ` FOR UPDATE`
	}
	return r.query(ctx, query, clientID)
}

func (r *SaleRepository) query(ctx context.Context, query string, args ...any) ([]*sale.Sale, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}

	var sales []*sale.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("erro ao ler venda: %w", err)
		}
		sales = append(sales, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}

	// Itens e pagamentos só podem ser lidos depois de fechar o cursor
	for _, s := range sales {
		if err := r.loadChildren(ctx, s); err != nil {
			return nil, err
		}
	}
	return sales, nil
}

// Update implementa sale.Repository.Update
func (r *SaleRepository) Update(ctx context.Context, s *sale.Sale) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE sales SET
			client_id = $2, payment_method = $3, total = $4::numeric, status = $5,
			version = version + 1, updated_at = $6
		WHERE id = $1 AND version = $7`,
		s.ID, s.ClientID, methodParam(s.PaymentMethod), s.Total.String(),
		string(s.Status), s.UpdatedAt, s.Version)
	if err != nil {
		return fmt.Errorf("erro ao atualizar venda: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM sales WHERE id = $1)`, s.ID).Scan(&exists); err != nil {
			return fmt.Errorf("erro ao verificar venda: %w", err)
		}
		if !exists {
			return sale.ErrSaleNotFound
		}
		return sale.ErrConcurrentUpdate
	}

	s.Version++
	return nil
}

// ReplaceItems implementa sale.Repository.ReplaceItems
func (r *SaleRepository) ReplaceItems(ctx context.Context, saleID string, items []sale.Item) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, saleID); err != nil {
		return fmt.Errorf("erro ao excluir itens da venda: %w", err)
	}
	return r.insertItems(ctx, items)
}

// Delete implementa sale.Repository.Delete
func (r *SaleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao excluir venda: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sale.ErrSaleNotFound
	}
	return nil
}

// AddPayment implementa sale.Repository.AddPayment
func (r *SaleRepository) AddPayment(ctx context.Context, p *sale.Payment) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sale_payments (id, sale_id, paid_at, amount, method, note)
		VALUES ($1, $2, $3, $4::numeric, $5, $6)`,
		p.ID, p.SaleID, p.PaidAt, p.Amount.String(), string(p.Method), p.Note)
	if err != nil {
		return fmt.Errorf("erro ao gravar pagamento: %w", err)
	}
	return nil
}

// FindPayment implementa sale.Repository.FindPayment
func (r *SaleRepository) FindPayment(ctx context.Context, id string) (*sale.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx,
		`SELECT id::text, sale_id::text, paid_at, amount::text, method, note
		FROM sale_payments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sale.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("erro ao buscar pagamento: %w", err)
	}
	return p, nil
}

// DeletePayment implementa sale.Repository.DeletePayment
func (r *SaleRepository) DeletePayment(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sale_payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao excluir pagamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sale.ErrPaymentNotFound
	}
	return nil
}

func (r *SaleRepository) loadChildren(ctx context.Context, s *sale.Sale) error {
	rows, err := r.db.Query(ctx,
		`SELECT id::text, sale_id::text, product_id::text, quantity::text, unit_price::text, subtotal::text
		FROM sale_items WHERE sale_id = $1 ORDER BY id`, s.ID)
	if err != nil {
		return fmt.Errorf("erro ao buscar itens da venda: %w", err)
	}
	s.Items = []sale.Item{}
	for rows.Next() {
		var (
			it                   sale.Item
			qty, price, subtotal string
		)
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &qty, &price, &subtotal); err != nil {
			rows.Close()
			return fmt.Errorf("erro ao ler item da venda: %w", err)
		}
		if it.Quantity, err = decimal.NewFromString(qty); err != nil {
			rows.Close()
			return fmt.Errorf("quantidade inválida no item %s: %w", it.ID, err)
		}
		if it.UnitPrice, err = money.Parse(price); err != nil {
			rows.Close()
			return fmt.Errorf("valor unitário inválido no item %s: %w", it.ID, err)
		}
		if it.Subtotal, err = money.Parse(subtotal); err != nil {
			rows.Close()
			return fmt.Errorf("subtotal inválido no item %s: %w", it.ID, err)
		}
		s.Items = append(s.Items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("erro ao buscar itens da venda: %w", err)
	}

	rows, err = r.db.Query(ctx,
		`SELECT id::text, sale_id::text, paid_at, amount::text, method, note
		FROM sale_payments WHERE sale_id = $1 ORDER BY paid_at, id`, s.ID)
	if err != nil {
		return fmt.Errorf("erro ao buscar pagamentos da venda: %w", err)
	}
	defer rows.Close()

	s.Payments = []sale.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return fmt.Errorf("erro ao ler pagamento: %w", err)
		}
		s.Payments = append(s.Payments, *p)
	}
	return rows.Err()
}

func scanSale(row pgx.Row) (*sale.Sale, error) {
	var (
		s        sale.Sale
		clientID *string
		method   *string
		total    string
		status   string
	)
	if err := row.Scan(&s.ID, &s.Number, &clientID, &s.CreatedAt, &method,
		&total, &status, &s.Version, &s.UpdatedAt); err != nil {
		return nil, err
	}

	t, err := money.Parse(total)
	if err != nil {
		return nil, fmt.Errorf("total inválido na venda %s: %w", s.ID, err)
	}
	s.Total = t
	s.ClientID = clientID
	s.Status = sale.Status(status)
	if method != nil {
		m := sale.PaymentMethod(*method)
		s.PaymentMethod = &m
	}
	return &s, nil
}

func scanPayment(row pgx.Row) (*sale.Payment, error) {
	var (
		p      sale.Payment
		amount string
		method string
	)
	if err := row.Scan(&p.ID, &p.SaleID, &p.PaidAt, &amount, &method, &p.Note); err != nil {
		return nil, err
	}
	a, err := money.Parse(amount)
	if err != nil {
		return nil, fmt.Errorf("valor inválido no pagamento %s: %w", p.ID, err)
	}
	p.Amount = a
	p.Method = sale.PaymentMethod(method)
	return &p, nil
}

func methodParam(m *sale.PaymentMethod) *string {
	if m == nil {
		return nil
	}
	v := string(*m)
	return &v
}
