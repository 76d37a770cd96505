package boltdb

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/lojazen/balcao/internal/domain"
	"github.com/lojazen/balcao/internal/domain/entity"
	"github.com/lojazen/balcao/internal/domain/repository"
)

var _ repository.VendorRepository = (*VendorRepo)(nil)

// VendorRepo implementa a porta VendorRepository sobre bbolt. Document é
// obrigatório e único; os demais canais de contato têm índices não-únicos.
type VendorRepo struct {
	db *Store
	tx *bbolt.Tx
}

// NewVendorRepository constrói o adaptador de persistência de fornecedores.
func NewVendorRepository(db *Store) *VendorRepo {
	return &VendorRepo{db: db}
}

func newVendorTxRepo(tx *bbolt.Tx) *VendorRepo {
	return &VendorRepo{tx: tx}
}

func (r *VendorRepo) update(fn func(tx *bbolt.Tx) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.db.db.Update(fn)
}

func (r *VendorRepo) view(fn func(tx *bbolt.Tx) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.db.db.View(fn)
}

// Create insere o fornecedor. Document já usado por outro registro devolve
// domain.ErrDuplicateKey sem gravar nada.
func (r *VendorRepo) Create(v *entity.Vendor) error {
	return r.update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketVendors)
		if b == nil {
			return fmt.Errorf("%w: bucket de fornecedores ausente", domain.ErrSchemaConsistency)
		}
		if v.Document == "" {
			return domain.ErrInvalidInput
		}
		if existing := lookupUnique(tx, idxVendorsDocument, v.Document); existing != 0 {
			return domain.ErrDuplicateKey
		}
		id, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("gerar id de fornecedor: %w", err)
		}
		now := time.Now()
		v.ID = id
		v.CreatedAt = now
		v.UpdatedAt = now
		if err := putVendor(b, v); err != nil {
			return err
		}
		return putVendorIndexes(tx, v)
	})
}

// GetByID devolve o fornecedor ou nil quando não existe.
func (r *VendorRepo) GetByID(id uint64) (*entity.Vendor, error) {
	var v *entity.Vendor
	err := r.view(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketVendors)
		if b == nil {
			return fmt.Errorf("%w: bucket de fornecedores ausente", domain.ErrSchemaConsistency)
		}
		data := b.Get(itob(id))
		if data == nil {
			return nil
		}
		v = &entity.Vendor{}
		return json.Unmarshal(data, v)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// GetByDocument busca pelo índice único de documento.
func (r *VendorRepo) GetByDocument(document string) (*entity.Vendor, error) {
	var v *entity.Vendor
	err := r.view(func(tx *bbolt.Tx) error {
		id := lookupUnique(tx, idxVendorsDocument, document)
		if id == 0 {
			return nil
		}
		data := tx.Bucket(bucketVendors).Get(itob(id))
		if data == nil {
			return nil
		}
		v = &entity.Vendor{}
		return json.Unmarshal(data, v)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// GetAll devolve todos os fornecedores em uma única transação de leitura.
func (r *VendorRepo) GetAll() ([]*entity.Vendor, error) {
	var list []*entity.Vendor
	err := r.view(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketVendors)
		if b == nil {
			return fmt.Errorf("%w: bucket de fornecedores ausente", domain.ErrSchemaConsistency)
		}
		return b.ForEach(func(_, data []byte) error {
			v := &entity.Vendor{}
			if err := json.Unmarshal(data, v); err != nil {
				return fmt.Errorf("decodificar fornecedor: %w", err)
			}
			list = append(list, v)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Update sobrescreve o fornecedor. O registro pode manter o próprio documento.
func (r *VendorRepo) Update(v *entity.Vendor) error {
	return r.update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketVendors)
		if b == nil {
			return fmt.Errorf("%w: bucket de fornecedores ausente", domain.ErrSchemaConsistency)
		}
		data := b.Get(itob(v.ID))
		if data == nil {
			return domain.ErrNotFound
		}
		old := &entity.Vendor{}
		if err := json.Unmarshal(data, old); err != nil {
			return fmt.Errorf("decodificar fornecedor: %w", err)
		}
		if v.Document == "" {
			return domain.ErrInvalidInput
		}
		if existing := lookupUnique(tx, idxVendorsDocument, v.Document); existing != 0 && existing != v.ID {
			return domain.ErrDuplicateKey
		}
		if err := delVendorIndexes(tx, old); err != nil {
			return err
		}
		v.CreatedAt = old.CreatedAt
		v.UpdatedAt = time.Now()
		if err := putVendor(b, v); err != nil {
			return err
		}
		return putVendorIndexes(tx, v)
	})
}

// Delete remove o fornecedor e seus índices. Idempotente. Não há exclusão em
// cascata: os produtos associados permanecem.
func (r *VendorRepo) Delete(id uint64) error {
	return r.update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketVendors)
		if b == nil {
			return fmt.Errorf("%w: bucket de fornecedores ausente", domain.ErrSchemaConsistency)
		}
		data := b.Get(itob(id))
		if data == nil {
			return nil
		}
		old := &entity.Vendor{}
		if err := json.Unmarshal(data, old); err != nil {
			return fmt.Errorf("decodificar fornecedor: %w", err)
		}
		if err := delVendorIndexes(tx, old); err != nil {
			return err
		}
		return b.Delete(itob(id))
	})
}

// ReplaceAll limpa a coleção e regrava os registros preservando IDs.
func (r *VendorRepo) ReplaceAll(list []*entity.Vendor) error {
	return r.update(func(tx *bbolt.Tx) error {
		if err := recreateBuckets(tx, bucketVendors, idxVendorsDocument,
			idxVendorsCNPJ, idxVendorsEmail, idxVendorsWhatsApp, idxVendorsTelegram); err != nil {
			return err
		}
		b := tx.Bucket(bucketVendors)
		var maxID uint64
		for _, v := range list {
			if err := putVendor(b, v); err != nil {
				return err
			}
			if err := putVendorIndexes(tx, v); err != nil {
				return err
			}
			if v.ID > maxID {
				maxID = v.ID
			}
		}
		return b.SetSequence(maxID)
	})
}

func putVendor(b *bbolt.Bucket, v *entity.Vendor) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("codificar fornecedor: %w", err)
	}
	if err := b.Put(itob(v.ID), data); err != nil {
		return fmt.Errorf("gravar fornecedor: %w", err)
	}
	return nil
}

func putVendorIndexes(tx *bbolt.Tx, v *entity.Vendor) error {
	if err := putUnique(tx, idxVendorsDocument, v.Document, v.ID); err != nil {
		return err
	}
	if err := putIndex(tx, idxVendorsCNPJ, v.CNPJ, v.ID); err != nil {
		return err
	}
	if err := putIndex(tx, idxVendorsEmail, strings.ToLower(v.Email), v.ID); err != nil {
		return err
	}
	if err := putIndex(tx, idxVendorsWhatsApp, v.WhatsApp, v.ID); err != nil {
		return err
	}
	return putIndex(tx, idxVendorsTelegram, v.Telegram, v.ID)
}

func delVendorIndexes(tx *bbolt.Tx, v *entity.Vendor) error {
	if err := delUnique(tx, idxVendorsDocument, v.Document, v.ID); err != nil {
		return err
	}
	if err := delIndex(tx, idxVendorsCNPJ, v.CNPJ, v.ID); err != nil {
		return err
	}
	if err := delIndex(tx, idxVendorsEmail, strings.ToLower(v.Email), v.ID); err != nil {
		return err
	}
	if err := delIndex(tx, idxVendorsWhatsApp, v.WhatsApp, v.ID); err != nil {
		return err
	}
	return delIndex(tx, idxVendorsTelegram, v.Telegram, v.ID)
}
