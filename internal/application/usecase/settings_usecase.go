package usecase

import (
	"github.com/lojazen/balcao/internal/domain/entity"
	"github.com/lojazen/balcao/internal/domain/repository"
)

// SettingsUseCase leitura e sobrescrita das configurações: limites de
// estoque mínimo, sinalizadores de ignorar estoque e credenciais de
// integração. O livro de vendas fica com o pacote sales.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase constrói o caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// StockAlerts devolve o mapa produto → limite mínimo.
func (uc *SettingsUseCase) StockAlerts() (map[uint64]int64, error) {
	return uc.repo.StockAlerts()
}

// SetStockAlerts sobrescreve o mapa de limites mínimos.
func (uc *SettingsUseCase) SetStockAlerts(alerts map[uint64]int64) error {
	return uc.repo.SetStockAlerts(alerts)
}

// IgnoreStock devolve o mapa produto → ignorar validação de estoque.
func (uc *SettingsUseCase) IgnoreStock() (map[uint64]bool, error) {
	return uc.repo.IgnoreStock()
}

// SetIgnoreStock sobrescreve o mapa de sinalizadores.
func (uc *SettingsUseCase) SetIgnoreStock(flags map[uint64]bool) error {
	return uc.repo.SetIgnoreStock(flags)
}

// Integrations devolve as credenciais de integração.
func (uc *SettingsUseCase) Integrations() (*entity.IntegrationSettings, error) {
	return uc.repo.Integrations()
}

// SetIntegrations sobrescreve as credenciais de integração.
func (uc *SettingsUseCase) SetIntegrations(s *entity.IntegrationSettings) error {
	return uc.repo.SetIntegrations(s)
}
