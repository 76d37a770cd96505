package entity

import "time"

// Client representa um cliente da loja. CPF é opcional, porém único quando
// presente (a unicidade é garantida pelo índice no repositório).
type Client struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CPF       string    `json:"cpf,omitempty"`
	RG        string    `json:"rg,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
