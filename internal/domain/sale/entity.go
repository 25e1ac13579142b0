package sale

import (
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-vendas/internal/domain/money"
	"github.com/shopspring/decimal"
)

// Status representa a situação de pagamento da venda
type Status string

const (
	StatusPending Status = "pending" // Pendente
	StatusPartial Status = "partial" // Parcial
	StatusPaid    Status = "paid"    // Pago
)

// Valid verifica se o status é conhecido
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPartial, StatusPaid:
		return true
	}
	return false
}

// PaymentMethod define a forma de pagamento
type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "cash"        // Dinheiro
	PaymentMethodDebitCard  PaymentMethod = "debit_card"  // Cartão Débito
	PaymentMethodCreditCard PaymentMethod = "credit_card" // Cartão Crédito
	PaymentMethodPix        PaymentMethod = "pix"         // Pix
)

// Valid verifica se a forma de pagamento é conhecida
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodDebitCard, PaymentMethodCreditCard, PaymentMethodPix:
		return true
	}
	return false
}

// Observações padrão gravadas nos pagamentos gerados pelo sistema
const (
	NoteInitialPayment = "Pagamento inicial / Entrada"
	NoteBatchPayment   = "Baixa Automática (FIFO)"
)

// Item representa um item da venda. O valor unitário é uma cópia do preço do
// produto no momento da venda.
type Item struct {
	ID        string          `json:"id"`         // ID do Item
	SaleID    string          `json:"sale_id"`    // ID da Venda
	ProductID string          `json:"product_id"` // ID do Produto
	Quantity  decimal.Decimal `json:"quantity"`   // Quantidade
	UnitPrice money.Money     `json:"unit_price"` // Valor Unitário
	Subtotal  money.Money     `json:"subtotal"`   // Quantidade x Valor Unitário
}

// NewItem cria um item calculando o subtotal
func NewItem(saleID, productID string, quantity decimal.Decimal, unitPrice money.Money) Item {
	return Item{
		ID:        uuid.New().String(),
		SaleID:    saleID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  unitPrice.Mul(quantity),
	}
}

// Payment representa um pagamento recebido em uma venda. É imutável após a
// criação; só pode ser excluído.
type Payment struct {
	ID     string        `json:"id"`      // ID do Pagamento
	SaleID string        `json:"sale_id"` // ID da Venda
	PaidAt time.Time     `json:"paid_at"` // Data do Pagamento
	Amount money.Money   `json:"amount"`  // Valor Pago
	Method PaymentMethod `json:"method"`  // Forma de Pagamento
	Note   string        `json:"note"`    // Observação
}

// Sale representa uma venda e sua posição no contas a receber
type Sale struct {
	ID            string         `json:"id"`             // ID da Venda
	Number        int64          `json:"number"`         // Número sequencial da venda
	ClientID      *string        `json:"client_id"`      // ID do Cliente (nulo para balcão)
	CreatedAt     time.Time      `json:"created_at"`     // Data da Venda
	PaymentMethod *PaymentMethod `json:"payment_method"` // Forma de Pagamento declarada
	Total         money.Money    `json:"total"`          // Valor Total devido
	Status        Status         `json:"status"`         // Status do Pagamento
	Items         []Item         `json:"items"`          // Itens
	Payments      []Payment      `json:"payments"`       // Pagamentos em ordem cronológica
	Version       int            `json:"version"`        // Versão para controle otimista
	UpdatedAt     time.Time      `json:"updated_at"`     // Data de Atualização
}

// NewSale cria uma venda vazia e pendente
func NewSale(clientID *string, method *PaymentMethod) *Sale {
	now := time.Now()
	return &Sale{
		ID:            uuid.New().String(),
		ClientID:      clientID,
		CreatedAt:     now,
		PaymentMethod: method,
		Total:         money.Zero,
		Status:        StatusPending,
		Items:         []Item{},
		Payments:      []Payment{},
		Version:       1,
		UpdatedAt:     now,
	}
}

// DeriveStatus calcula o status a partir do total devido e da soma paga.
// Sem nenhum valor pago a venda é sempre pendente, inclusive quando o total é
// zero: não existe estado de venda gratuita.
func DeriveStatus(totalDue, paid money.Money) Status {
	switch {
	case !paid.IsPositive():
		return StatusPending
	case paid.GreaterThanOrEqual(totalDue):
		return StatusPaid
	default:
		return StatusPartial
	}
}

// PaidAmount retorna a soma dos pagamentos
func (s *Sale) PaidAmount() money.Money {
	total := money.Zero
	for _, p := range s.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Debt retorna o saldo devedor (total - pago)
func (s *Sale) Debt() money.Money {
	return s.Total.Sub(s.PaidAmount())
}

// ItemsTotal retorna a soma dos subtotais dos itens
func (s *Sale) ItemsTotal() money.Money {
	total := money.Zero
	for _, it := range s.Items {
		total = total.Add(it.Subtotal)
	}
	return total
}

// IsOpen verifica se a venda ainda não está quitada
func (s *Sale) IsOpen() bool {
	return s.Status != StatusPaid
}

// Recompute recalcula o status a partir dos pagamentos. Deve ser chamado após
// qualquer alteração no total ou nos pagamentos.
func (s *Sale) Recompute() {
	s.Status = DeriveStatus(s.Total, s.PaidAmount())
	s.UpdatedAt = time.Now()
}

// AddPayment registra um pagamento na venda e recalcula o status
func (s *Sale) AddPayment(amount money.Money, method PaymentMethod, note string) (Payment, error) {
	if !amount.IsPositive() {
		return Payment{}, ErrNonPositiveAmount
	}
	if !method.Valid() {
		return Payment{}, ErrInvalidPaymentMethod
	}
	if amount.GreaterThan(s.Debt()) {
		return Payment{}, ErrOverpayment
	}

	p := Payment{
		ID:     uuid.New().String(),
		SaleID: s.ID,
		PaidAt: time.Now(),
		Amount: amount,
		Method: method,
		Note:   note,
	}
	s.Payments = append(s.Payments, p)
	s.Recompute()
	return p, nil
}

// RemovePayment remove um pagamento da venda e recalcula o status
func (s *Sale) RemovePayment(paymentID string) (Payment, error) {
	for i, p := range s.Payments {
		if p.ID == paymentID {
			s.Payments = append(s.Payments[:i:i], s.Payments[i+1:]...)
			s.Recompute()
			return p, nil
		}
	}
	return Payment{}, ErrPaymentNotFound
}

// ReplaceItems substitui todos os itens da venda. Se declaredTotal for zero o
// total passa a ser a soma dos itens.
func (s *Sale) ReplaceItems(items []Item, declaredTotal money.Money) error {
	total := declaredTotal
	if total.IsZero() {
		total = money.Zero
		for _, it := range items {
			total = total.Add(it.Subtotal)
		}
	}
	if total.IsNegative() {
		return ErrInvalidTotal
	}
	if total.LessThan(s.PaidAmount()) {
		return ErrTotalBelowPaid
	}

	for i := range items {
		items[i].SaleID = s.ID
	}
	s.Items = items
	s.Total = total
	s.Recompute()
	return nil
}
