// Package boltdb implementa a camada de persistência embarcada da aplicação
// sobre bbolt: um arquivo único, coleções em buckets com IDs sequenciais e
// índices secundários em buckets irmãos. O esquema evolui por uma tabela
// ordenada de migrações versionadas (ver migrations.go).
package boltdb

import (
	"fmt"
	"os"
	"time"

	"go.etcd.io/bbolt"

	"github.com/lojazen/balcao/internal/domain"
)

// SchemaVersion é a versão de esquema alvo desta versão da aplicação.
const SchemaVersion = 4

// Buckets de coleções e de metadados.
var (
	bucketMeta     = []byte("meta")
	bucketProducts = []byte("products")
	bucketClients  = []byte("clients")
	bucketVendors  = []byte("vendors")
	bucketSettings = []byte("settings")
)

// Buckets de índices secundários. Índices únicos mapeiam valor → ID;
// os demais usam chave composta valor + separador + ID.
var (
	idxProductsCategory    = []byte("idx_products_category")
	idxProductsDescription = []byte("idx_products_description")
	idxProductsBarcode     = []byte("idx_products_barcode")
	idxProductsVendor      = []byte("idx_products_vendor")

	idxClientsCPF  = []byte("idx_clients_cpf") // único
	idxClientsName = []byte("idx_clients_name")

	idxVendorsDocument = []byte("idx_vendors_document") // único
	idxVendorsCNPJ     = []byte("idx_vendors_cnpj")
	idxVendorsEmail    = []byte("idx_vendors_email")
	idxVendorsWhatsApp = []byte("idx_vendors_whatsapp")
	idxVendorsTelegram = []byte("idx_vendors_telegram")
)

var keySchemaVersion = []byte("schema_version")

// requiredBuckets são os buckets que precisam existir após a migração.
// A verificação pós-abertura cobre o caso em que o arquivo registra a versão
// alvo mas perdeu estrutura (interrupção no meio de uma migração antiga).
var requiredBuckets = [][]byte{
	bucketMeta,
	bucketProducts, idxProductsCategory, idxProductsDescription, idxProductsBarcode, idxProductsVendor,
	bucketClients, idxClientsCPF, idxClientsName,
	bucketVendors, idxVendorsDocument, idxVendorsCNPJ, idxVendorsEmail, idxVendorsWhatsApp, idxVendorsTelegram,
	bucketSettings,
}

// Store encapsula o handle bbolt e o ciclo de vida do esquema. Construir com
// Open e injetar nos repositórios; não há estado global.
type Store struct {
	path string
	mode os.FileMode
	db   *bbolt.DB
}

// Open abre (ou cria) o arquivo do banco e aplica as migrações pendentes.
// Falha de abertura é fatal para o chamador: não existe banco parcial útil.
func Open(path string) (*Store, error) {
	s := &Store{path: path, mode: 0o600}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) open() error {
	db, err := bbolt.Open(s.path, s.mode, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("abrir banco %s: %w", s.path, err)
	}
	s.db = db
	if err := s.migrate(); err != nil {
		db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Close fecha o arquivo. Seguro chamar mais de uma vez.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// VerifySchema confere se todos os buckets exigidos existem. Ausência de
// qualquer um devolve domain.ErrSchemaConsistency: o chamador decide entre
// abortar ou invocar Reinit.
func (s *Store) VerifySchema() error {
	return s.db.View(func(tx *bbolt.Tx) error {
		for _, name := range requiredBuckets {
			if tx.Bucket(name) == nil {
				return fmt.Errorf("%w: bucket %q ausente", domain.ErrSchemaConsistency, name)
			}
		}
		return nil
	})
}

// Reinit fecha o handle e reabre o arquivo reaplicando a tabela de migrações
// completa desde a versão zero, independentemente da versão registrada.
// Como cada passo é idempotente, reexecutar o histórico inteiro é seguro e
// reconstrói qualquer estrutura ausente.
func (s *Store) Reinit() error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("fechar para reinicializar: %w", err)
	}
	db, err := bbolt.Open(s.path, s.mode, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("reabrir banco %s: %w", s.path, err)
	}
	s.db = db
	if err := s.replayAll(); err != nil {
		db.Close()
		s.db = nil
		return err
	}
	return s.VerifySchema()
}
