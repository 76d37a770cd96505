package boltdb

import (
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/lojazen/balcao/internal/application/backup"
	"github.com/lojazen/balcao/internal/application/sales"
	"github.com/lojazen/balcao/internal/domain/repository"
)

var _ sales.TxRunner = (*TxRunner)(nil)
var _ backup.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma única transação de escrita bbolt,
// com repositórios atados à transação. É o que permite ao checkout mutar N
// produtos e anexar ao livro de vendas de forma atômica, e à restauração de
// backup ser tudo-ou-nada.
type TxRunner struct {
	db *Store
}

// NewTxRunner constrói o runner sobre o Store.
func NewTxRunner(db *Store) *TxRunner {
	return &TxRunner{db: db}
}

// Run executa fn com os repositórios de produtos e de configurações atados a
// uma transação de escrita. Erro de fn desfaz tudo.
func (r *TxRunner) Run(fn func(
	products repository.ProductRepository,
	settings repository.SettingsRepository,
) error) error {
	err := r.db.db.Update(func(tx *bbolt.Tx) error {
		return fn(newProductTxRepo(tx), newSettingsTxRepo(tx))
	})
	if err != nil {
		return fmt.Errorf("transação de venda: %w", err)
	}
	return nil
}

// RunAll executa fn com todos os repositórios atados a uma transação de
// escrita (restauração de backup).
func (r *TxRunner) RunAll(fn func(
	products repository.ProductRepository,
	clients repository.ClientRepository,
	vendors repository.VendorRepository,
	settings repository.SettingsRepository,
) error) error {
	err := r.db.db.Update(func(tx *bbolt.Tx) error {
		return fn(newProductTxRepo(tx), newClientTxRepo(tx), newVendorTxRepo(tx), newSettingsTxRepo(tx))
	})
	if err != nil {
		return fmt.Errorf("transação de restauração: %w", err)
	}
	return nil
}
