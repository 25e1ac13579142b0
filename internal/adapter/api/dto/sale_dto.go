package dto

import (
	"time"

	"github.com/hugohenrick/erp-vendas/internal/domain/money"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/hugohenrick/erp-vendas/internal/ledger"
	"github.com/shopspring/decimal"
)

// SaleItemRequest representa um item na criação ou alteração de venda
type SaleItemRequest struct {
	ProductID string          `json:"product_id" binding:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity" swaggertype:"string" example:"2"`
	UnitPrice *money.Money    `json:"unit_price,omitempty" swaggertype:"string" example:"5.00"`
}

// CreateSaleRequest representa os dados para criação de uma venda
type CreateSaleRequest struct {
	ClientID       *string             `json:"client_id" binding:"omitempty,uuid"`
	Status         sale.Status         `json:"status" example:"pending"`
	PaymentMethod  *sale.PaymentMethod `json:"payment_method" example:"pix"`
	Total          money.Money         `json:"total" swaggertype:"string" example:"0.00"`
	Items          []SaleItemRequest   `json:"items" binding:"dive"`
	InitialPayment money.Money         `json:"initial_payment" swaggertype:"string" example:"0.00"`
}

// UpdateSaleRequest representa os dados para alteração de uma venda. Os itens
// informados substituem todos os itens atuais.
type UpdateSaleRequest struct {
	ClientID      *string             `json:"client_id" binding:"omitempty,uuid"`
	PaymentMethod *sale.PaymentMethod `json:"payment_method" example:"cash"`
	Total         money.Money         `json:"total" swaggertype:"string" example:"0.00"`
	Items         []SaleItemRequest   `json:"items" binding:"dive"`
}

// PaymentRequest representa um pagamento avulso ou em lote
type PaymentRequest struct {
	Amount money.Money        `json:"amount" swaggertype:"string" example:"50.00"`
	Method sale.PaymentMethod `json:"method" binding:"required" example:"cash"`
	Note   string             `json:"note"`
}

// SaleItemResponse representa um item da venda na resposta
type SaleItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

// PaymentResponse representa um pagamento na resposta
type PaymentResponse struct {
	ID     string             `json:"id"`
	SaleID string             `json:"sale_id"`
	PaidAt time.Time          `json:"paid_at"`
	Amount string             `json:"amount"`
	Method sale.PaymentMethod `json:"method"`
	Note   string             `json:"note"`
}

// SaleResponse representa uma venda na resposta
type SaleResponse struct {
	ID            string              `json:"id"`
	Number        int64               `json:"number"`
	ClientID      *string             `json:"client_id"`
	CreatedAt     time.Time           `json:"created_at"`
	PaymentMethod *sale.PaymentMethod `json:"payment_method"`
	Total         string              `json:"total"`
	PaidAmount    string              `json:"paid_amount"`
	Debt          string              `json:"debt"`
	Status        sale.Status         `json:"status"`
	Items         []SaleItemResponse  `json:"items"`
	Payments      []PaymentResponse   `json:"payments"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// SaleListResponse representa a resposta paginada de vendas
type SaleListResponse struct {
	Items      []*SaleResponse `json:"items"`
	TotalCount int             `json:"total_count"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// AllocationResponse representa a parcela aplicada em uma venda
type AllocationResponse struct {
	SaleID     string      `json:"sale_id"`
	SaleNumber int64       `json:"sale_number"`
	Amount     string      `json:"amount"`
	DebtBefore string      `json:"debt_before"`
	DebtAfter  string      `json:"debt_after"`
	Status     sale.Status `json:"status"`
}

// BatchPaymentResponse representa o resultado de uma baixa em lote
type BatchPaymentResponse struct {
	Message           string               `json:"message"`
	ClientID          string               `json:"client_id"`
	TotalAmount       string               `json:"total_amount"`
	DistributedAmount string               `json:"distributed_amount"`
	RemainingCredit   string               `json:"remaining_credit"`
	Allocations       []AllocationResponse `json:"allocations"`
}

// ClientBalanceResponse representa o saldo devedor de um cliente
type ClientBalanceResponse struct {
	ClientID    string `json:"client_id"`
	OpenSales   int    `json:"open_sales"`
	Outstanding string `json:"outstanding"`
}

// ToCreateSaleInput converte a requisição para a entrada do serviço
func (r *CreateSaleRequest) ToCreateSaleInput() ledger.CreateSaleInput {
	return ledger.CreateSaleInput{
		ClientID:       r.ClientID,
		Status:         r.Status,
		PaymentMethod:  r.PaymentMethod,
		Total:          r.Total,
		Items:          toItemInputs(r.Items),
		InitialPayment: r.InitialPayment,
	}
}

// ToUpdateSaleInput converte a requisição para a entrada do serviço
func (r *UpdateSaleRequest) ToUpdateSaleInput() ledger.UpdateSaleInput {
	return ledger.UpdateSaleInput{
		ClientID:      r.ClientID,
		PaymentMethod: r.PaymentMethod,
		Total:         r.Total,
		Items:         toItemInputs(r.Items),
	}
}

// ToPaymentInput converte a requisição para a entrada do serviço
func (r *PaymentRequest) ToPaymentInput() ledger.PaymentInput {
	return ledger.PaymentInput{
		Amount: r.Amount,
		Method: r.Method,
		Note:   r.Note,
	}
}

func toItemInputs(items []SaleItemRequest) []ledger.ItemInput {
	inputs := make([]ledger.ItemInput, 0, len(items))
	for _, it := range items {
		inputs = append(inputs, ledger.ItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return inputs
}

// ToPaymentResponse converte um pagamento para a resposta
func ToPaymentResponse(p *sale.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:     p.ID,
		SaleID: p.SaleID,
		PaidAt: p.PaidAt,
		Amount: p.Amount.String(),
		Method: p.Method,
		Note:   p.Note,
	}
}

// ToSaleResponse converte uma venda para a resposta
func ToSaleResponse(s *sale.Sale) *SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity.String(),
			UnitPrice: it.UnitPrice.String(),
			Subtotal:  it.Subtotal.String(),
		})
	}

	payments := make([]PaymentResponse, 0, len(s.Payments))
	for i := range s.Payments {
		payments = append(payments, *ToPaymentResponse(&s.Payments[i]))
	}

	return &SaleResponse{
		ID:            s.ID,
		Number:        s.Number,
		ClientID:      s.ClientID,
		CreatedAt:     s.CreatedAt,
		PaymentMethod: s.PaymentMethod,
		Total:         s.Total.String(),
		PaidAmount:    s.PaidAmount().String(),
		Debt:          s.Debt().String(),
		Status:        s.Status,
		Items:         items,
		Payments:      payments,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToSaleResponses converte uma lista de vendas
func ToSaleResponses(sales []*sale.Sale) []*SaleResponse {
	out := make([]*SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, ToSaleResponse(s))
	}
	return out
}

// ToSaleListResponse monta a resposta paginada de vendas
func ToSaleListResponse(sales []*sale.Sale, total int, p Pagination) *SaleListResponse {
	return &SaleListResponse{
		Items:      ToSaleResponses(sales),
		TotalCount: total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: calculateTotalPages(total, p.PageSize),
	}
}

// ToBatchPaymentResponse converte o resultado de uma baixa em lote
func ToBatchPaymentResponse(r *ledger.AllocationResult) *BatchPaymentResponse {
	allocations := make([]AllocationResponse, 0, len(r.Allocations))
	for _, a := range r.Allocations {
		allocations = append(allocations, AllocationResponse{
			SaleID:     a.SaleID,
			SaleNumber: a.SaleNumber,
			Amount:     a.Amount.String(),
			DebtBefore: a.DebtBefore.String(),
			DebtAfter:  a.DebtAfter.String(),
			Status:     a.Status,
		})
	}

	return &BatchPaymentResponse{
		Message:           "baixa em lote realizada com sucesso",
		ClientID:          r.ClientID,
		TotalAmount:       r.TotalAmount.String(),
		DistributedAmount: r.DistributedAmount.String(),
		RemainingCredit:   r.RemainingCredit.String(),
		Allocations:       allocations,
	}
}

// ToClientBalanceResponse converte o saldo do cliente
func ToClientBalanceResponse(b ledger.ClientBalance) *ClientBalanceResponse {
	return &ClientBalanceResponse{
		ClientID:    b.ClientID,
		OpenSales:   b.OpenSales,
		Outstanding: b.Outstanding.String(),
	}
}
