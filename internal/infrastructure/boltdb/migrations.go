package boltdb

import (
	"fmt"

	"go.etcd.io/bbolt"
)

// migration é um passo estrutural do esquema. apply precisa ser idempotente:
// o histórico pode ser reexecutado após interrupção ou reinicialização.
type migration struct {
	version uint64
	name    string
	apply   func(tx *bbolt.Tx) error
}

// migrations é o histórico ordenado do esquema. Nunca editar um passo já
// publicado; mudanças novas entram como um passo novo com versão maior.
var migrations = []migration{
	{
		version: 1,
		name:    "catálogo de produtos",
		apply: func(tx *bbolt.Tx) error {
			return createBuckets(tx, bucketProducts, idxProductsCategory, idxProductsDescription)
		},
	},
	{
		version: 2,
		name:    "clientes com CPF único",
		apply: func(tx *bbolt.Tx) error {
			return createBuckets(tx, bucketClients, idxClientsCPF, idxClientsName)
		},
	},
	{
		version: 3,
		name:    "fornecedores e código de barras",
		apply: func(tx *bbolt.Tx) error {
			return createBuckets(tx,
				bucketVendors, idxVendorsDocument, idxVendorsCNPJ,
				idxVendorsEmail, idxVendorsWhatsApp, idxVendorsTelegram,
				idxProductsBarcode,
			)
		},
	},
	{
		version: 4,
		name:    "configurações e índice por fornecedor",
		apply: func(tx *bbolt.Tx) error {
			return createBuckets(tx, bucketSettings, idxProductsVendor)
		},
	},
}

func createBuckets(tx *bbolt.Tx, names ...[]byte) error {
	for _, name := range names {
		if _, err := tx.CreateBucketIfNotExists(name); err != nil {
			return fmt.Errorf("criar bucket %q: %w", name, err)
		}
	}
	return nil
}

// migrate aplica, em uma única transação de escrita, todo passo com versão
// maior que a registrada e grava a versão alvo. A versão gravada nunca
// regride: abrir um arquivo mais novo que o binário não reescreve nada.
func (s *Store) migrate() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return fmt.Errorf("criar bucket de metadados: %w", err)
		}
		current := uint64(0)
		if v := meta.Get(keySchemaVersion); v != nil {
			current = btoi(v)
		}
		for _, m := range migrations {
			if m.version <= current {
				continue
			}
			if err := m.apply(tx); err != nil {
				return fmt.Errorf("migração v%d (%s): %w", m.version, m.name, err)
			}
		}
		if current < SchemaVersion {
			if err := meta.Put(keySchemaVersion, itob(SchemaVersion)); err != nil {
				return fmt.Errorf("gravar versão do esquema: %w", err)
			}
		}
		return nil
	})
}

// replayAll reaplica o histórico completo ignorando a versão registrada.
// Usado por Reinit para reconstruir estrutura ausente.
func (s *Store) replayAll() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return fmt.Errorf("criar bucket de metadados: %w", err)
		}
		for _, m := range migrations {
			if err := m.apply(tx); err != nil {
				return fmt.Errorf("migração v%d (%s): %w", m.version, m.name, err)
			}
		}
		return meta.Put(keySchemaVersion, itob(SchemaVersion))
	})
}
