package dto

// LoginRequest credenciais do operador.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token de acesso emitido.
type LoginResponse struct {
	Token string `json:"token"`
}
