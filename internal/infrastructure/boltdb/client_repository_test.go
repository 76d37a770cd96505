package boltdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojazen/balcao/internal/domain"
	"github.com/lojazen/balcao/internal/domain/entity"
)

func TestClientRepo_CPFDuplicadoDevolveErrDuplicateKey(t *testing.T) {
	s := newTestStore(t)
	repo := NewClientRepository(s)

	require.NoError(t, repo.Create(&entity.Client{Name: "Maria Souza", CPF: "12345678901"}))

	err := repo.Create(&entity.Client{Name: "Outra Maria", CPF: "12345678901"})
	require.ErrorIs(t, err, domain.ErrDuplicateKey)

	list, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, list, 1, "a tentativa duplicada não deve gravar nada")
}

func TestClientRepo_CPFVazioNaoEhUnico(t *testing.T) {
	s := newTestStore(t)
	repo := NewClientRepository(s)

	require.NoError(t, repo.Create(&entity.Client{Name: "Sem CPF 1"}))
	require.NoError(t, repo.Create(&entity.Client{Name: "Sem CPF 2"}),
		"clientes sem CPF podem coexistir")
}

func TestClientRepo_UpdateMantemProprioCPF(t *testing.T) {
	s := newTestStore(t)
	repo := NewClientRepository(s)

	c := &entity.Client{Name: "João Lima", CPF: "98765432100"}
	require.NoError(t, repo.Create(c))

	c.Phone = "(11) 99999-0000"
	require.NoError(t, repo.Update(c), "manter o próprio CPF na atualização não é conflito")
}

func TestClientRepo_UpdateComCPFDeOutroFalha(t *testing.T) {
	s := newTestStore(t)
	repo := NewClientRepository(s)

	require.NoError(t, repo.Create(&entity.Client{Name: "Ana", CPF: "11111111111"}))
	b := &entity.Client{Name: "Bruno", CPF: "22222222222"}
	require.NoError(t, repo.Create(b))

	b.CPF = "11111111111"
	assert.ErrorIs(t, repo.Update(b), domain.ErrDuplicateKey)
}

func TestClientRepo_GetByCPF(t *testing.T) {
	s := newTestStore(t)
	repo := NewClientRepository(s)

	require.NoError(t, repo.Create(&entity.Client{Name: "Carla", CPF: "33333333333"}))

	found, err := repo.GetByCPF("33333333333")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Carla", found.Name)

	missing, err := repo.GetByCPF("00000000000")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestClientRepo_DeleteLiberaOCPF(t *testing.T) {
	s := newTestStore(t)
	repo := NewClientRepository(s)

	c := &entity.Client{Name: "Daniel", CPF: "44444444444"}
	require.NoError(t, repo.Create(c))
	require.NoError(t, repo.Delete(c.ID))

	require.NoError(t, repo.Create(&entity.Client{Name: "Novo Daniel", CPF: "44444444444"}),
		"o CPF de um cliente removido pode ser reutilizado")
}

func TestVendorRepo_DocumentoDuplicadoDevolveErrDuplicateKey(t *testing.T) {
	s := newTestStore(t)
	repo := NewVendorRepository(s)

	require.NoError(t, repo.Create(&entity.Vendor{Name: "Distribuidora A", Document: "11222333000144"}))

	err := repo.Create(&entity.Vendor{Name: "Distribuidora B", Document: "11222333000144"})
	require.ErrorIs(t, err, domain.ErrDuplicateKey)

	list, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestVendorRepo_GetByDocument(t *testing.T) {
	s := newTestStore(t)
	repo := NewVendorRepository(s)

	require.NoError(t, repo.Create(&entity.Vendor{Name: "Atacadão Sul", Document: "55666777000188"}))

	found, err := repo.GetByDocument("55666777000188")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Atacadão Sul", found.Name)
}
