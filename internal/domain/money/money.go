// Package money implementa o valor monetário de precisão fixa usado em todo o
// razão de contas a receber. Todos os valores têm exatamente duas casas
// decimais e nenhuma operação passa por ponto flutuante.
package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale é o número de casas decimais de todos os valores monetários
const Scale int32 = 2

var (
	ErrInvalidAmount    = errors.New("valor monetário inválido")
	ErrTooManyDecimals  = errors.New("valor com mais de duas casas decimais")
	ErrNegativeQuantity = errors.New("quantidade não pode ser negativa")
)

// Money representa um valor monetário com duas casas decimais
type Money struct {
	d decimal.Decimal
}

// Zero é o valor monetário nulo
var Zero = Money{d: decimal.Zero}

// Parse converte um literal decimal em Money.
// Literais cujo valor exige mais de duas casas decimais são rejeitados.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(d)
}

// MustParse é como Parse mas entra em pânico em caso de erro. Uso restrito a
// constantes e testes.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromDecimal cria Money a partir de um decimal aplicando a mesma política de Parse
func FromDecimal(d decimal.Decimal) (Money, error) {
	if !d.Equal(d.Truncate(Scale)) {
		return Zero, fmt.Errorf("%w: %s", ErrTooManyDecimals, d.String())
	}
	return Money{d: d.Truncate(Scale)}, nil
}

// FromCents cria Money a partir de um valor inteiro em centavos
func FromCents(cents int64) Money {
	return Money{d: decimal.New(cents, -Scale)}
}

// Decimal retorna o valor como decimal.Decimal
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// Cents retorna o valor em centavos
func (m Money) Cents() int64 {
	return m.d.Shift(Scale).IntPart()
}

// Add soma dois valores
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

// Sub subtrai o valor informado
func (m Money) Sub(o Money) Money {
	return Money{d: m.d.Sub(o.d)}
}

// Mul multiplica o valor por uma quantidade, arredondando para duas casas
// (meio para longe do zero).
func (m Money) Mul(quantity decimal.Decimal) Money {
	return Money{d: m.d.Mul(quantity).Round(Scale)}
}

// Neg retorna o valor com sinal invertido
func (m Money) Neg() Money {
	return Money{d: m.d.Neg()}
}

// Cmp compara dois valores: -1 se m < o, 0 se iguais, +1 se m > o
func (m Money) Cmp(o Money) int {
	return m.d.Cmp(o.d)
}

// Equal verifica igualdade exata
func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

// LessThan verifica se m < o
func (m Money) LessThan(o Money) bool {
	return m.d.LessThan(o.d)
}

// GreaterThan verifica se m > o
func (m Money) GreaterThan(o Money) bool {
	return m.d.GreaterThan(o.d)
}

// GreaterThanOrEqual verifica se m >= o
func (m Money) GreaterThanOrEqual(o Money) bool {
	return m.d.GreaterThanOrEqual(o.d)
}

// IsZero verifica se o valor é zero
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// IsPositive verifica se o valor é estritamente positivo
func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

// IsNegative verifica se o valor é estritamente negativo
func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// Min retorna o menor entre dois valores
func Min(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Sum soma uma lista de valores
func Sum(values ...Money) Money {
	total := Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// String retorna o valor sempre com duas casas decimais, ex. "13.00"
func (m Money) String() string {
	return m.d.StringFixed(Scale)
}

// MarshalJSON serializa o valor como string para não perder precisão no cliente
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON aceita tanto string quanto número JSON
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*m = Zero
		return nil
	}
	s = strings.Trim(s, `"`)
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value implementa driver.Valuer para colunas NUMERIC
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan implementa sql.Scanner para colunas NUMERIC
func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = Zero
		return nil
	case string:
		return m.scanString(v)
	case []byte:
		return m.scanString(string(v))
	case int64:
		*m = Money{d: decimal.NewFromInt(v)}
		return nil
	case float64:
		parsed, err := FromDecimal(decimal.NewFromFloat(v))
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	default:
		return fmt.Errorf("%w: tipo %T não suportado", ErrInvalidAmount, src)
	}
}

func (m *Money) scanString(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseQuantity valida uma quantidade de item: não negativa e com no máximo
// duas casas decimais.
func ParseQuantity(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return ValidateQuantity(d)
}

// ValidateQuantity aplica as regras de ParseQuantity a um decimal já construído
func ValidateQuantity(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsNegative() {
		return decimal.Zero, ErrNegativeQuantity
	}
	if !d.Equal(d.Truncate(Scale)) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrTooManyDecimals, d.String())
	}
	return d, nil
}
