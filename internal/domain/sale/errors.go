package sale

import "errors"

// Categorias de erro do razão. Todo erro de domínio pertence a exatamente uma
// delas e pode ser classificado com errors.Is.
var (
	ErrValidation = errors.New("dados inválidos")
	ErrNotFound   = errors.New("registro não encontrado")
	ErrConflict   = errors.New("conflito de concorrência")
)

// Error é um erro de domínio com categoria
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap permite errors.Is(err, ErrValidation) e similares
func (e *Error) Unwrap() error {
	return e.Kind
}

func validation(msg string) error { return &Error{Kind: ErrValidation, Message: msg} }
func notFound(msg string) error   { return &Error{Kind: ErrNotFound, Message: msg} }
func conflict(msg string) error   { return &Error{Kind: ErrConflict, Message: msg} }

// Erros de validação
var (
	ErrNonPositiveAmount    = validation("valor do pagamento deve ser maior que zero")
	ErrOverpayment          = validation("valor do pagamento excede o saldo devedor da venda")
	ErrInvalidQuantity      = validation("quantidade inválida")
	ErrInvalidUnitPrice     = validation("valor unitário inválido")
	ErrInvalidTotal         = validation("valor total inválido")
	ErrInvalidPaymentMethod = validation("forma de pagamento inválida")
	ErrInvalidStatus        = validation("status de pagamento inválido")
	ErrTotalBelowPaid       = validation("valor total não pode ser menor que o valor já pago")
	ErrEmptyID              = validation("id não informado")
	ErrInvalidID            = validation("id inválido")
)

// Erros de registro inexistente
var (
	ErrSaleNotFound    = notFound("venda não encontrada")
	ErrPaymentNotFound = notFound("pagamento não encontrado")
	ErrProductNotFound = notFound("produto não encontrado")
	ErrClientNotFound  = notFound("cliente não encontrado")
	ErrNoOpenSales     = notFound("nenhuma venda em aberto encontrada para este cliente")
)

// Erros de concorrência
var (
	ErrConcurrentUpdate = conflict("venda alterada por outra operação, tente novamente")
)
