package boltdb

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/lojazen/balcao/internal/domain"
	"github.com/lojazen/balcao/internal/domain/entity"
	"github.com/lojazen/balcao/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementa a porta ProductRepository sobre bbolt. Com tx nil,
// cada operação abre a própria transação; com tx preenchido (via TxRunner),
// opera dentro da transação em curso.
type ProductRepo struct {
	db *Store
	tx *bbolt.Tx
}

// NewProductRepository constrói o adaptador de persistência de produtos.
func NewProductRepository(db *Store) *ProductRepo {
	return &ProductRepo{db: db}
}

func newProductTxRepo(tx *bbolt.Tx) *ProductRepo {
	return &ProductRepo{tx: tx}
}

func (r *ProductRepo) update(fn func(tx *bbolt.Tx) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.db.db.Update(fn)
}

func (r *ProductRepo) view(fn func(tx *bbolt.Tx) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.db.db.View(fn)
}

// Create insere o produto, atribui o próximo ID sequencial e carimba os
// timestamps. Categoria vazia vira a sentinela CategoryAll.
func (r *ProductRepo) Create(p *entity.Product) error {
	return r.update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketProducts)
		if b == nil {
			return fmt.Errorf("%w: bucket de produtos ausente", domain.ErrSchemaConsistency)
		}
		id, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("gerar id de produto: %w", err)
		}
		if p.Category == "" {
			p.Category = entity.CategoryAll
		}
		now := time.Now()
		p.ID = id
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := putProduct(b, p); err != nil {
			return err
		}
		return putProductIndexes(tx, p)
	})
}

// GetByID devolve o produto ou nil quando não existe.
func (r *ProductRepo) GetByID(id uint64) (*entity.Product, error) {
	var p *entity.Product
	err := r.view(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketProducts)
		if b == nil {
			return fmt.Errorf("%w: bucket de produtos ausente", domain.ErrSchemaConsistency)
		}
		data := b.Get(itob(id))
		if data == nil {
			return nil
		}
		p = &entity.Product{}
		return json.Unmarshal(data, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByBarcode busca pelo índice de código de barras. Códigos repetidos são
// possíveis (índice não-único); devolve o de menor ID.
func (r *ProductRepo) GetByBarcode(code string) (*entity.Product, error) {
	var p *entity.Product
	err := r.view(func(tx *bbolt.Tx) error {
		ids := scanIndex(tx, idxProductsBarcode, code)
		if len(ids) == 0 {
			return nil
		}
		b := tx.Bucket(bucketProducts)
		data := b.Get(itob(ids[0]))
		if data == nil {
			return nil
		}
		p = &entity.Product{}
		return json.Unmarshal(data, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetAll devolve todos os produtos em uma única transação de leitura.
func (r *ProductRepo) GetAll() ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.view(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketProducts)
		if b == nil {
			return fmt.Errorf("%w: bucket de produtos ausente", domain.ErrSchemaConsistency)
		}
		return b.ForEach(func(_, v []byte) error {
			p := &entity.Product{}
			if err := json.Unmarshal(v, p); err != nil {
				return fmt.Errorf("decodificar produto: %w", err)
			}
			list = append(list, p)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Update sobrescreve o produto e atualiza os índices afetados.
// ID desconhecido devolve domain.ErrNotFound.
func (r *ProductRepo) Update(p *entity.Product) error {
	return r.update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketProducts)
		if b == nil {
			return fmt.Errorf("%w: bucket de produtos ausente", domain.ErrSchemaConsistency)
		}
		data := b.Get(itob(p.ID))
		if data == nil {
			return domain.ErrNotFound
		}
		old := &entity.Product{}
		if err := json.Unmarshal(data, old); err != nil {
			return fmt.Errorf("decodificar produto: %w", err)
		}
		if err := delProductIndexes(tx, old); err != nil {
			return err
		}
		if p.Category == "" {
			p.Category = entity.CategoryAll
		}
		p.CreatedAt = old.CreatedAt
		p.UpdatedAt = time.Now()
		if err := putProduct(b, p); err != nil {
			return err
		}
		return putProductIndexes(tx, p)
	})
}

// Delete remove o produto e seus índices. Idempotente: ID inexistente não é erro.
func (r *ProductRepo) Delete(id uint64) error {
	return r.update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketProducts)
		if b == nil {
			return fmt.Errorf("%w: bucket de produtos ausente", domain.ErrSchemaConsistency)
		}
		data := b.Get(itob(id))
		if data == nil {
			return nil
		}
		old := &entity.Product{}
		if err := json.Unmarshal(data, old); err != nil {
			return fmt.Errorf("decodificar produto: %w", err)
		}
		if err := delProductIndexes(tx, old); err != nil {
			return err
		}
		return b.Delete(itob(id))
	})
}

// ReplaceAll limpa a coleção e regrava os registros do snapshot preservando
// os IDs originais; a sequência avança além do maior ID restaurado.
func (r *ProductRepo) ReplaceAll(list []*entity.Product) error {
	return r.update(func(tx *bbolt.Tx) error {
		if err := recreateBuckets(tx, bucketProducts,
			idxProductsCategory, idxProductsDescription, idxProductsBarcode, idxProductsVendor); err != nil {
			return err
		}
		b := tx.Bucket(bucketProducts)
		var maxID uint64
		for _, p := range list {
			if p.Category == "" {
				p.Category = entity.CategoryAll
			}
			if err := putProduct(b, p); err != nil {
				return err
			}
			if err := putProductIndexes(tx, p); err != nil {
				return err
			}
			if p.ID > maxID {
				maxID = p.ID
			}
		}
		return b.SetSequence(maxID)
	})
}

func putProduct(b *bbolt.Bucket, p *entity.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("codificar produto: %w", err)
	}
	if err := b.Put(itob(p.ID), data); err != nil {
		return fmt.Errorf("gravar produto: %w", err)
	}
	return nil
}

func putProductIndexes(tx *bbolt.Tx, p *entity.Product) error {
	if err := putIndex(tx, idxProductsCategory, strings.ToLower(p.Category), p.ID); err != nil {
		return err
	}
	if err := putIndex(tx, idxProductsDescription, strings.ToLower(p.Description), p.ID); err != nil {
		return err
	}
	if err := putIndex(tx, idxProductsBarcode, p.Barcode, p.ID); err != nil {
		return err
	}
	if p.VendorID != 0 {
		return putIndex(tx, idxProductsVendor, strconv.FormatUint(p.VendorID, 10), p.ID)
	}
	return nil
}

func delProductIndexes(tx *bbolt.Tx, p *entity.Product) error {
	if err := delIndex(tx, idxProductsCategory, strings.ToLower(p.Category), p.ID); err != nil {
		return err
	}
	if err := delIndex(tx, idxProductsDescription, strings.ToLower(p.Description), p.ID); err != nil {
		return err
	}
	if err := delIndex(tx, idxProductsBarcode, p.Barcode, p.ID); err != nil {
		return err
	}
	if p.VendorID != 0 {
		return delIndex(tx, idxProductsVendor, strconv.FormatUint(p.VendorID, 10), p.ID)
	}
	return nil
}

// recreateBuckets apaga e recria buckets (usado na restauração de backup).
func recreateBuckets(tx *bbolt.Tx, names ...[]byte) error {
	for _, name := range names {
		if tx.Bucket(name) != nil {
			if err := tx.DeleteBucket(name); err != nil {
				return fmt.Errorf("limpar bucket %q: %w", name, err)
			}
		}
		if _, err := tx.CreateBucket(name); err != nil {
			return fmt.Errorf("recriar bucket %q: %w", name, err)
		}
	}
	return nil
}
