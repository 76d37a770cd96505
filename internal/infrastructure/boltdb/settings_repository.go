package boltdb

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/lojazen/balcao/internal/domain"
	"github.com/lojazen/balcao/internal/domain/entity"
	"github.com/lojazen/balcao/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// Chaves fixas do bucket de configurações.
var (
	keySales        = []byte("sales")
	keyStockAlerts  = []byte("stock_alerts")
	keyIgnoreStock  = []byte("ignore_stock")
	keyIntegrations = []byte("integrations")
)

// SettingsRepo implementa a porta SettingsRepository sobre o bucket
// chave-valor de configurações: livro de vendas, alertas de estoque mínimo,
// sinalizadores de ignorar estoque e credenciais de integração.
type SettingsRepo struct {
	db *Store
	tx *bbolt.Tx
}

// NewSettingsRepository constrói o adaptador do armazenamento de configurações.
func NewSettingsRepository(db *Store) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func newSettingsTxRepo(tx *bbolt.Tx) *SettingsRepo {
	return &SettingsRepo{tx: tx}
}

func (r *SettingsRepo) update(fn func(tx *bbolt.Tx) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.db.db.Update(fn)
}

func (r *SettingsRepo) view(fn func(tx *bbolt.Tx) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.db.db.View(fn)
}

func (r *SettingsRepo) getJSON(key []byte, out any) error {
	return r.view(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSettings)
		if b == nil {
			return fmt.Errorf("%w: bucket de configurações ausente", domain.ErrSchemaConsistency)
		}
		data := b.Get(key)
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decodificar configuração %q: %w", key, err)
		}
		return nil
	})
}

func (r *SettingsRepo) putJSON(key []byte, v any) error {
	return r.update(func(tx *bbolt.Tx) error {
		return putSettingTx(tx, key, v)
	})
}

func putSettingTx(tx *bbolt.Tx, key []byte, v any) error {
	b := tx.Bucket(bucketSettings)
	if b == nil {
		return fmt.Errorf("%w: bucket de configurações ausente", domain.ErrSchemaConsistency)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("codificar configuração %q: %w", key, err)
	}
	if err := b.Put(key, data); err != nil {
		return fmt.Errorf("gravar configuração %q: %w", key, err)
	}
	return nil
}

// Sales devolve o livro de vendas completo (vazio se nunca houve venda).
func (r *SettingsRepo) Sales() ([]*entity.Sale, error) {
	var sales []*entity.Sale
	if err := r.getJSON(keySales, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// AppendSale acrescenta um registro ao livro de vendas. Ler-modificar-gravar
// dentro de uma única transação de escrita.
func (r *SettingsRepo) AppendSale(sale *entity.Sale) error {
	return r.update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSettings)
		if b == nil {
			return fmt.Errorf("%w: bucket de configurações ausente", domain.ErrSchemaConsistency)
		}
		var sales []*entity.Sale
		if data := b.Get(keySales); data != nil {
			if err := json.Unmarshal(data, &sales); err != nil {
				return fmt.Errorf("decodificar livro de vendas: %w", err)
			}
		}
		sales = append(sales, sale)
		return putSettingTx(tx, keySales, sales)
	})
}

// ReplaceSales sobrescreve o livro de vendas inteiro (restauração de backup).
func (r *SettingsRepo) ReplaceSales(sales []*entity.Sale) error {
	if sales == nil {
		sales = []*entity.Sale{}
	}
	return r.putJSON(keySales, sales)
}

// StockAlerts devolve o mapa produto → limite mínimo de estoque.
func (r *SettingsRepo) StockAlerts() (map[uint64]int64, error) {
	alerts := map[uint64]int64{}
	if err := r.getJSON(keyStockAlerts, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// SetStockAlerts sobrescreve o mapa de limites mínimos.
func (r *SettingsRepo) SetStockAlerts(alerts map[uint64]int64) error {
	if alerts == nil {
		alerts = map[uint64]int64{}
	}
	return r.putJSON(keyStockAlerts, alerts)
}

// IgnoreStock devolve o mapa produto → ignorar validação de estoque.
func (r *SettingsRepo) IgnoreStock() (map[uint64]bool, error) {
	flags := map[uint64]bool{}
	if err := r.getJSON(keyIgnoreStock, &flags); err != nil {
		return nil, err
	}
	return flags, nil
}

// SetIgnoreStock sobrescreve o mapa de sinalizadores.
func (r *SettingsRepo) SetIgnoreStock(flags map[uint64]bool) error {
	if flags == nil {
		flags = map[uint64]bool{}
	}
	return r.putJSON(keyIgnoreStock, flags)
}

// Integrations devolve as credenciais de integração (zeradas se nunca gravadas).
func (r *SettingsRepo) Integrations() (*entity.IntegrationSettings, error) {
	s := &entity.IntegrationSettings{}
	if err := r.getJSON(keyIntegrations, s); err != nil {
		return nil, err
	}
	return s, nil
}

// SetIntegrations sobrescreve as credenciais de integração.
func (r *SettingsRepo) SetIntegrations(s *entity.IntegrationSettings) error {
	if s == nil {
		s = &entity.IntegrationSettings{}
	}
	return r.putJSON(keyIntegrations, s)
}
