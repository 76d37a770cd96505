package boltdb

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojazen/balcao/internal/domain"
	"github.com/lojazen/balcao/internal/domain/entity"
)

func testProduct(description, price string, quantity int64) *entity.Product {
	return &entity.Product{
		Description: description,
		Price:       decimal.RequireFromString(price),
		Quantity:    quantity,
	}
}

func TestProductRepo_CreateAtribuiIDsSequenciais(t *testing.T) {
	s := newTestStore(t)
	repo := NewProductRepository(s)

	first := testProduct("Arroz 5kg", "24.90", 10)
	second := testProduct("Feijão 1kg", "8.50", 20)
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))

	assert.Equal(t, uint64(1), first.ID)
	assert.Equal(t, uint64(2), second.ID)
	assert.Equal(t, entity.CategoryAll, first.Category,
		"categoria vazia deve virar a sentinela")
	assert.False(t, first.CreatedAt.IsZero(), "timestamps devem ser carimbados na criação")
}

func TestProductRepo_GetByIDInexistenteDevolveNil(t *testing.T) {
	s := newTestStore(t)
	repo := NewProductRepository(s)

	p, err := repo.GetByID(999)
	require.NoError(t, err)
	assert.Nil(t, p, "ID desconhecido devolve nil, não erro")
}

func TestProductRepo_GetByBarcode(t *testing.T) {
	s := newTestStore(t)
	repo := NewProductRepository(s)

	p := testProduct("Leite integral", "5.20", 30)
	p.Barcode = "7891000100103"
	require.NoError(t, repo.Create(p))

	found, err := repo.GetByBarcode("7891000100103")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, p.ID, found.ID)

	missing, err := repo.GetByBarcode("0000000000000")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepo_UpdateInexistenteDevolveErrNotFound(t *testing.T) {
	s := newTestStore(t)
	repo := NewProductRepository(s)

	ghost := testProduct("Fantasma", "1.00", 1)
	ghost.ID = 42
	assert.ErrorIs(t, repo.Update(ghost), domain.ErrNotFound)
}

func TestProductRepo_UpdatePreservaCreatedAt(t *testing.T) {
	s := newTestStore(t)
	repo := NewProductRepository(s)

	p := testProduct("Açúcar", "4.10", 15)
	require.NoError(t, repo.Create(p))
	created := p.CreatedAt

	p.Quantity = 12
	require.NoError(t, repo.Update(p))

	stored, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), stored.Quantity)
	assert.True(t, stored.CreatedAt.Equal(created),
		"atualização não deve reescrever a data de criação")
}

func TestProductRepo_DeleteEhIdempotente(t *testing.T) {
	s := newTestStore(t)
	repo := NewProductRepository(s)

	p := testProduct("Sal grosso", "3.00", 8)
	require.NoError(t, repo.Create(p))

	require.NoError(t, repo.Delete(p.ID))
	require.NoError(t, repo.Delete(p.ID), "remover duas vezes não é erro")

	stored, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestProductRepo_ReplaceAllPreservaIDsEAvancaSequencia(t *testing.T) {
	s := newTestStore(t)
	repo := NewProductRepository(s)

	// Estado anterior que a restauração deve apagar.
	require.NoError(t, repo.Create(testProduct("Antigo", "1.00", 1)))

	restored := testProduct("Restaurado", "9.90", 4)
	restored.ID = 17
	require.NoError(t, repo.ReplaceAll([]*entity.Product{restored}))

	list, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, list, 1, "a coleção anterior deve ser substituída por inteiro")
	assert.Equal(t, uint64(17), list[0].ID)

	// Criações posteriores não podem colidir com IDs restaurados.
	next := testProduct("Novo", "2.00", 2)
	require.NoError(t, repo.Create(next))
	assert.Equal(t, uint64(18), next.ID)
}
