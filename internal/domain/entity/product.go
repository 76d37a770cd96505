package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryAll é a categoria sentinela atribuída a produtos sem categoria própria.
const CategoryAll = "all"

// Product representa um produto do catálogo. Quantity é o estoque atual e
// Sold o acumulado de unidades vendidas; ambos são mantidos pelo checkout.
type Product struct {
	ID          uint64          `json:"id"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	Sold        int64           `json:"sold"`
	Category    string          `json:"category"`
	Barcode     string          `json:"barcode,omitempty"`
	VendorID    uint64          `json:"vendorId,omitempty"`
	Image       string          `json:"image,omitempty"` // data URI
	Links       []string        `json:"links,omitempty"`
	TechDetails string          `json:"techDetails,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
