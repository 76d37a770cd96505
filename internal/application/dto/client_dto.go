package dto

// CreateClientRequest dados para criar um cliente. Name é obrigatório;
// CPF, quando informado, precisa ser inédito.
type CreateClientRequest struct {
	Name    string `json:"name"`
	CPF     string `json:"cpf"`
	RG      string `json:"rg"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// UpdateClientRequest campos opcionais para atualização parcial.
type UpdateClientRequest struct {
	Name    *string `json:"name"`
	CPF     *string `json:"cpf"`
	RG      *string `json:"rg"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}
