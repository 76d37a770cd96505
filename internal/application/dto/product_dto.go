package dto

import "github.com/shopspring/decimal"

// CreateProductRequest dados para criar um produto.
type CreateProductRequest struct {
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	Category    string          `json:"category"`
	Barcode     string          `json:"barcode"`
	VendorID    uint64          `json:"vendorId"`
	Image       string          `json:"image"`
	Links       []string        `json:"links"`
	TechDetails string          `json:"techDetails"`
}

// UpdateProductRequest campos opcionais para atualização parcial.
type UpdateProductRequest struct {
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int64           `json:"quantity"`
	Category    *string          `json:"category"`
	Barcode     *string          `json:"barcode"`
	VendorID    *uint64          `json:"vendorId"`
	Image       *string          `json:"image"`
	Links       []string         `json:"links"`
	TechDetails *string          `json:"techDetails"`
}

// ProductFilter filtros do listado de produtos.
type ProductFilter struct {
	Category string `query:"category"`
	Search   string `query:"search"`
}
