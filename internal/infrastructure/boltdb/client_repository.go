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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementa a porta ClientRepository sobre bbolt. A unicidade do
// CPF é verificada dentro da mesma transação de escrita que insere o registro,
// portanto não há janela entre checagem e gravação.
type ClientRepo struct {
	db *Store
	tx *bbolt.Tx
}

// NewClientRepository constrói o adaptador de persistência de clientes.
func NewClientRepository(db *Store) *ClientRepo {
	return &ClientRepo{db: db}
}

func newClientTxRepo(tx *bbolt.Tx) *ClientRepo {
	return &ClientRepo{tx: tx}
}

func (r *ClientRepo) update(fn func(tx *bbolt.Tx) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.db.db.Update(fn)
}

func (r *ClientRepo) view(fn func(tx *bbolt.Tx) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.db.db.View(fn)
}

// Create insere o cliente. CPF não vazio que já pertença a outro registro
// devolve domain.ErrDuplicateKey sem gravar nada.
func (r *ClientRepo) Create(c *entity.Client) error {
	return r.update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketClients)
		if b == nil {
			return fmt.Errorf("%w: bucket de clientes ausente", domain.ErrSchemaConsistency)
		}
		if c.CPF != "" {
			if existing := lookupUnique(tx, idxClientsCPF, c.CPF); existing != 0 {
				return domain.ErrDuplicateKey
			}
		}
		id, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("gerar id de cliente: %w", err)
		}
		now := time.Now()
		c.ID = id
		c.CreatedAt = now
		c.UpdatedAt = now
		if err := putClient(b, c); err != nil {
			return err
		}
		return putClientIndexes(tx, c)
	})
}

// GetByID devolve o cliente ou nil quando não existe.
func (r *ClientRepo) GetByID(id uint64) (*entity.Client, error) {
	var c *entity.Client
	err := r.view(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketClients)
		if b == nil {
			return fmt.Errorf("%w: bucket de clientes ausente", domain.ErrSchemaConsistency)
		}
		data := b.Get(itob(id))
		if data == nil {
			return nil
		}
		c = &entity.Client{}
		return json.Unmarshal(data, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByCPF busca pelo índice único de CPF. Devolve nil quando não há registro.
func (r *ClientRepo) GetByCPF(cpf string) (*entity.Client, error) {
	var c *entity.Client
	err := r.view(func(tx *bbolt.Tx) error {
		id := lookupUnique(tx, idxClientsCPF, cpf)
		if id == 0 {
			return nil
		}
		data := tx.Bucket(bucketClients).Get(itob(id))
		if data == nil {
			return nil
		}
		c = &entity.Client{}
		return json.Unmarshal(data, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetAll devolve todos os clientes em uma única transação de leitura.
func (r *ClientRepo) GetAll() ([]*entity.Client, error) {
	var list []*entity.Client
	err := r.view(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketClients)
		if b == nil {
			return fmt.Errorf("%w: bucket de clientes ausente", domain.ErrSchemaConsistency)
		}
		return b.ForEach(func(_, v []byte) error {
			c := &entity.Client{}
			if err := json.Unmarshal(v, c); err != nil {
				return fmt.Errorf("decodificar cliente: %w", err)
			}
			list = append(list, c)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Update sobrescreve o cliente. O registro pode manter o próprio CPF; CPF de
// outro registro devolve domain.ErrDuplicateKey.
func (r *ClientRepo) Update(c *entity.Client) error {
	return r.update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketClients)
		if b == nil {
			return fmt.Errorf("%w: bucket de clientes ausente", domain.ErrSchemaConsistency)
		}
		data := b.Get(itob(c.ID))
		if data == nil {
			return domain.ErrNotFound
		}
		old := &entity.Client{}
		if err := json.Unmarshal(data, old); err != nil {
			return fmt.Errorf("decodificar cliente: %w", err)
		}
		if c.CPF != "" {
			if existing := lookupUnique(tx, idxClientsCPF, c.CPF); existing != 0 && existing != c.ID {
				return domain.ErrDuplicateKey
			}
		}
		if err := delClientIndexes(tx, old); err != nil {
			return err
		}
		c.CreatedAt = old.CreatedAt
		c.UpdatedAt = time.Now()
		if err := putClient(b, c); err != nil {
			return err
		}
		return putClientIndexes(tx, c)
	})
}

// Delete remove o cliente e seus índices. Idempotente.
func (r *ClientRepo) Delete(id uint64) error {
	return r.update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketClients)
		if b == nil {
			return fmt.Errorf("%w: bucket de clientes ausente", domain.ErrSchemaConsistency)
		}
		data := b.Get(itob(id))
		if data == nil {
			return nil
		}
		old := &entity.Client{}
		if err := json.Unmarshal(data, old); err != nil {
			return fmt.Errorf("decodificar cliente: %w", err)
		}
		if err := delClientIndexes(tx, old); err != nil {
			return err
		}
		return b.Delete(itob(id))
	})
}

// ReplaceAll limpa a coleção e regrava os registros preservando IDs.
func (r *ClientRepo) ReplaceAll(list []*entity.Client) error {
	return r.update(func(tx *bbolt.Tx) error {
		if err := recreateBuckets(tx, bucketClients, idxClientsCPF, idxClientsName); err != nil {
			return err
		}
		b := tx.Bucket(bucketClients)
		var maxID uint64
		for _, c := range list {
			if err := putClient(b, c); err != nil {
				return err
			}
			if err := putClientIndexes(tx, c); err != nil {
				return err
			}
			if c.ID > maxID {
				maxID = c.ID
			}
		}
		return b.SetSequence(maxID)
	})
}

func putClient(b *bbolt.Bucket, c *entity.Client) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("codificar cliente: %w", err)
	}
	if err := b.Put(itob(c.ID), data); err != nil {
		return fmt.Errorf("gravar cliente: %w", err)
	}
	return nil
}

func putClientIndexes(tx *bbolt.Tx, c *entity.Client) error {
	if c.CPF != "" {
		if err := putUnique(tx, idxClientsCPF, c.CPF, c.ID); err != nil {
			return err
		}
	}
	return putIndex(tx, idxClientsName, strings.ToLower(c.Name), c.ID)
}

func delClientIndexes(tx *bbolt.Tx, c *entity.Client) error {
	if err := delUnique(tx, idxClientsCPF, c.CPF, c.ID); err != nil {
		return err
	}
	return delIndex(tx, idxClientsName, strings.ToLower(c.Name), c.ID)
}
