// Package backup serializa o banco inteiro em um snapshot JSON único e o
// restaura de forma tudo-ou-nada.
package backup

import (
	"fmt"
	"time"

	"github.com/lojazen/balcao/internal/domain"
	"github.com/lojazen/balcao/internal/domain/entity"
	"github.com/lojazen/balcao/internal/domain/repository"
)

// SnapshotVersion marca o formato do arquivo de backup.
const SnapshotVersion = "1"

// TxRunner executa o callback com todos os repositórios atados a uma única
// transação de escrita, para que a restauração seja atômica.
type TxRunner interface {
	RunAll(fn func(
		products repository.ProductRepository,
		clients repository.ClientRepository,
		vendors repository.VendorRepository,
		settings repository.SettingsRepository,
	) error) error
}

// SnapshotSettings espelha as quatro chaves do armazenamento de configurações.
type SnapshotSettings struct {
	Sales        []*entity.Sale              `json:"sales"`
	StockAlerts  map[uint64]int64            `json:"stockAlerts"`
	IgnoreStock  map[uint64]bool             `json:"ignoreStock"`
	Integrations *entity.IntegrationSettings `json:"integrations"`
}

// Snapshot é o documento de backup completo: as três coleções, as
// configurações e os metadados de formato.
type Snapshot struct {
	Products     []*entity.Product `json:"products"`
	Clients      []*entity.Client  `json:"clients"`
	Vendors      []*entity.Vendor  `json:"vendors"`
	LocalStorage SnapshotSettings  `json:"localStorage"`
	BackupDate   time.Time         `json:"backupDate"`
	Version      string            `json:"version"`
}

// UseCase exporta e restaura snapshots.
type UseCase struct {
	tx       TxRunner
	products repository.ProductRepository
	clients  repository.ClientRepository
	vendors  repository.VendorRepository
	settings repository.SettingsRepository
}

// NewUseCase constrói o serviço de backup.
func NewUseCase(
	tx TxRunner,
	products repository.ProductRepository,
	clients repository.ClientRepository,
	vendors repository.VendorRepository,
	settings repository.SettingsRepository,
) *UseCase {
	return &UseCase{tx: tx, products: products, clients: clients, vendors: vendors, settings: settings}
}

// Export lê todas as coleções e as quatro chaves de configuração e devolve
// um snapshot datado. Coleções vazias saem como arrays vazios, nunca null,
// para que o próprio arquivo passe na validação de Restore.
func (uc *UseCase) Export() (*Snapshot, error) {
	products, err := uc.products.GetAll()
	if err != nil {
		return nil, fmt.Errorf("exportar produtos: %w", err)
	}
	clients, err := uc.clients.GetAll()
	if err != nil {
		return nil, fmt.Errorf("exportar clientes: %w", err)
	}
	vendors, err := uc.vendors.GetAll()
	if err != nil {
		return nil, fmt.Errorf("exportar fornecedores: %w", err)
	}
	sales, err := uc.settings.Sales()
	if err != nil {
		return nil, fmt.Errorf("exportar livro de vendas: %w", err)
	}
	alerts, err := uc.settings.StockAlerts()
	if err != nil {
		return nil, fmt.Errorf("exportar alertas de estoque: %w", err)
	}
	ignore, err := uc.settings.IgnoreStock()
	if err != nil {
		return nil, fmt.Errorf("exportar sinalizadores de estoque: %w", err)
	}
	integrations, err := uc.settings.Integrations()
	if err != nil {
		return nil, fmt.Errorf("exportar integrações: %w", err)
	}
	if products == nil {
		products = []*entity.Product{}
	}
	if clients == nil {
		clients = []*entity.Client{}
	}
	if vendors == nil {
		vendors = []*entity.Vendor{}
	}
	if sales == nil {
		sales = []*entity.Sale{}
	}
	return &Snapshot{
		Products: products,
		Clients:  clients,
		Vendors:  vendors,
		LocalStorage: SnapshotSettings{
			Sales:        sales,
			StockAlerts:  alerts,
			IgnoreStock:  ignore,
			Integrations: integrations,
		},
		BackupDate: time.Now(),
		Version:    SnapshotVersion,
	}, nil
}

// Restore valida a forma mínima do snapshot e, dentro de uma única transação
// de escrita, limpa e repovoa cada coleção e sobrescreve as quatro chaves de
// configuração. A validação acontece antes de qualquer limpeza; falha no
// meio da restauração desfaz tudo, o banco volta ao estado anterior.
func (uc *UseCase) Restore(snap *Snapshot) error {
	if snap == nil || snap.Products == nil || snap.Clients == nil || snap.Vendors == nil {
		return domain.ErrInvalidBackup
	}
	return uc.tx.RunAll(func(
		products repository.ProductRepository,
		clients repository.ClientRepository,
		vendors repository.VendorRepository,
		settings repository.SettingsRepository,
	) error {
		if err := products.ReplaceAll(snap.Products); err != nil {
			return err
		}
		if err := clients.ReplaceAll(snap.Clients); err != nil {
			return err
		}
		if err := vendors.ReplaceAll(snap.Vendors); err != nil {
			return err
		}
		if err := settings.ReplaceSales(snap.LocalStorage.Sales); err != nil {
			return err
		}
		if err := settings.SetStockAlerts(snap.LocalStorage.StockAlerts); err != nil {
			return err
		}
		if err := settings.SetIgnoreStock(snap.LocalStorage.IgnoreStock); err != nil {
			return err
		}
		return settings.SetIntegrations(snap.LocalStorage.Integrations)
	})
}
