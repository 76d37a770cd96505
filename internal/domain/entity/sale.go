package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas de pagamento aceitas no checkout (conjunto fechado).
const (
	PaymentCash = "dinheiro"
	PaymentCard = "cartao"
	PaymentPix  = "pix"
)

// ValidPaymentMethod informa se o método pertence ao conjunto aceito.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentPix:
		return true
	}
	return false
}

// Sale é um registro do livro de vendas. Guarda um snapshot do cliente
// (nome + ID), não uma referência viva: editar o cliente depois não altera
// vendas já registradas.
type Sale struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	ClientID      uint64          `json:"clientId,omitempty"`
	ClientName    string          `json:"clientName,omitempty"`
	Description   string          `json:"description"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
}
