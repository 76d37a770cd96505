package repository

import "github.com/lojazen/balcao/internal/domain/entity"

// SettingsRepository define a porta do armazenamento chave-valor de
// configurações: livro de vendas, alertas de estoque mínimo, sinalizadores
// de ignorar estoque e credenciais de integração.
type SettingsRepository interface {
	Sales() ([]*entity.Sale, error)
	AppendSale(sale *entity.Sale) error
	ReplaceSales(sales []*entity.Sale) error

	StockAlerts() (map[uint64]int64, error)
	SetStockAlerts(alerts map[uint64]int64) error

	IgnoreStock() (map[uint64]bool, error)
	SetIgnoreStock(flags map[uint64]bool) error

	Integrations() (*entity.IntegrationSettings, error)
	SetIntegrations(s *entity.IntegrationSettings) error
}
