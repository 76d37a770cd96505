package dto

// CreateVendorRequest dados para criar um fornecedor. Document é obrigatório
// e único.
type CreateVendorRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Document    string   `json:"document"`
	CNPJ        string   `json:"cnpj"`
	Email       string   `json:"email"`
	WhatsApp    string   `json:"whatsapp"`
	Telegram    string   `json:"telegram"`
	Website     string   `json:"website"`
	ProductIDs  []uint64 `json:"productIds"`
}

// UpdateVendorRequest campos opcionais para atualização parcial.
type UpdateVendorRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Document    *string  `json:"document"`
	CNPJ        *string  `json:"cnpj"`
	Email       *string  `json:"email"`
	WhatsApp    *string  `json:"whatsapp"`
	Telegram    *string  `json:"telegram"`
	Website     *string  `json:"website"`
	ProductIDs  []uint64 `json:"productIds"`
}
