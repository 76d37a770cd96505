package boltdb

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/lojazen/balcao/internal/domain"
)

// Separador entre valor indexado e ID nas chaves de índices não-únicos.
// Byte zero não ocorre em texto JSON nem nos campos indexados.
const idxSep = byte(0x00)

// itob codifica um ID em big-endian de 8 bytes, mantendo a ordenação
// numérica dos cursores bbolt.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func btoi(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}

// putUnique grava valor → ID num índice único. Conflito com um ID diferente
// devolve domain.ErrDuplicateKey sem escrever nada.
func putUnique(tx *bbolt.Tx, idx []byte, value string, id uint64) error {
	b := tx.Bucket(idx)
	if b == nil {
		return fmt.Errorf("%w: índice %q ausente", domain.ErrSchemaConsistency, idx)
	}
	if existing := b.Get([]byte(value)); existing != nil && btoi(existing) != id {
		return domain.ErrDuplicateKey
	}
	return b.Put([]byte(value), itob(id))
}

// lookupUnique devolve o ID associado ao valor num índice único (0 = ausente).
func lookupUnique(tx *bbolt.Tx, idx []byte, value string) uint64 {
	b := tx.Bucket(idx)
	if b == nil {
		return 0
	}
	v := b.Get([]byte(value))
	if v == nil {
		return 0
	}
	return btoi(v)
}

// delUnique remove a entrada do índice único apenas se pertencer ao ID dado.
func delUnique(tx *bbolt.Tx, idx []byte, value string, id uint64) error {
	b := tx.Bucket(idx)
	if b == nil || value == "" {
		return nil
	}
	if existing := b.Get([]byte(value)); existing == nil || btoi(existing) != id {
		return nil
	}
	return b.Delete([]byte(value))
}

func indexKey(value string, id uint64) []byte {
	k := make([]byte, 0, len(value)+9)
	k = append(k, value...)
	k = append(k, idxSep)
	k = append(k, itob(id)...)
	return k
}

// putIndex grava uma entrada de índice não-único (chave composta valor|ID).
func putIndex(tx *bbolt.Tx, idx []byte, value string, id uint64) error {
	if value == "" {
		return nil
	}
	b := tx.Bucket(idx)
	if b == nil {
		return fmt.Errorf("%w: índice %q ausente", domain.ErrSchemaConsistency, idx)
	}
	return b.Put(indexKey(value, id), itob(id))
}

func delIndex(tx *bbolt.Tx, idx []byte, value string, id uint64) error {
	if value == "" {
		return nil
	}
	b := tx.Bucket(idx)
	if b == nil {
		return nil
	}
	return b.Delete(indexKey(value, id))
}

// scanIndex devolve os IDs cujo valor indexado é exatamente value.
func scanIndex(tx *bbolt.Tx, idx []byte, value string) []uint64 {
	b := tx.Bucket(idx)
	if b == nil {
		return nil
	}
	prefix := append([]byte(value), idxSep)
	var ids []uint64
	c := b.Cursor()
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		ids = append(ids, btoi(v))
	}
	return ids
}
