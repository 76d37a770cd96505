package dto

import "github.com/shopspring/decimal"

// CheckoutLine é um item selecionado para venda.
type CheckoutLine struct {
	ProductID uint64 `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

// CheckoutRequest venda multi-item: todas as linhas são validadas antes de
// qualquer mutação.
type CheckoutRequest struct {
	Lines         []CheckoutLine `json:"lines"`
	PaymentMethod string         `json:"paymentMethod"`
	ClientID      uint64         `json:"clientId"`
}

// PaymentSummary total e contagem de vendas de uma forma de pagamento.
type PaymentSummary struct {
	PaymentMethod string          `json:"paymentMethod"`
	Count         int             `json:"count"`
	Total         decimal.Decimal `json:"total"`
}

// SalesSummaryResponse totais do livro de vendas agrupados por forma de
// pagamento.
type SalesSummaryResponse struct {
	ByPayment  []PaymentSummary `json:"byPayment"`
	GrandTotal decimal.Decimal  `json:"grandTotal"`
	Count      int              `json:"count"`
}
