package entity

// IntegrationSettings agrupa credenciais de integrações externas (cálculo de
// frete e leitura de imagens por IA). Campos planos de texto, sem validação.
type IntegrationSettings struct {
	ShippingToken string `json:"shippingToken,omitempty"`
	OriginZip     string `json:"originZip,omitempty"`
	AIAPIKey      string `json:"aiApiKey,omitempty"`
	AIModel       string `json:"aiModel,omitempty"`
}
