package entity

import "time"

// DefaultVendorDocument identifica o fornecedor padrão criado no primeiro
// uso. O valor é fixo para que a semeadura seja idempotente.
const DefaultVendorDocument = "00000000000000"

// Vendor representa um fornecedor. Document (CPF ou CNPJ) é único.
type Vendor struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Document    string    `json:"document"`
	CNPJ        string    `json:"cnpj,omitempty"`
	Email       string    `json:"email,omitempty"`
	WhatsApp    string    `json:"whatsapp,omitempty"`
	Telegram    string    `json:"telegram,omitempty"`
	Website     string    `json:"website,omitempty"`
	ProductIDs  []uint64  `json:"productIds,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
