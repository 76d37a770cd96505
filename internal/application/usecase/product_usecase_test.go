package usecase_test

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojazen/balcao/internal/application/dto"
	"github.com/lojazen/balcao/internal/application/usecase"
	"github.com/lojazen/balcao/internal/domain"
	"github.com/lojazen/balcao/internal/domain/entity"
	"github.com/lojazen/balcao/internal/infrastructure/boltdb"
)

func newProductUseCase(t *testing.T) (*usecase.ProductUseCase, *boltdb.SettingsRepo) {
	t.Helper()
	store, err := boltdb.Open(filepath.Join(t.TempDir(), "balcao-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	settings := boltdb.NewSettingsRepository(store)
	return usecase.NewProductUseCase(boltdb.NewProductRepository(store), settings), settings
}

func create(t *testing.T, uc *usecase.ProductUseCase, description, price, category string, quantity int64) *entity.Product {
	t.Helper()
	p, err := uc.Create(dto.CreateProductRequest{
		Description: description,
		Price:       decimal.RequireFromString(price),
		Quantity:    quantity,
		Category:    category,
	})
	require.NoError(t, err)
	return p
}

func TestProductUseCase_CreateValidaEntrada(t *testing.T) {
	uc, _ := newProductUseCase(t)

	_, err := uc.Create(dto.CreateProductRequest{Description: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "descrição em branco é rejeitada")

	_, err = uc.Create(dto.CreateProductRequest{
		Description: "Preço negativo",
		Price:       decimal.RequireFromString("-1.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateProductRequest{
		Description: "Estoque negativo",
		Price:       decimal.RequireFromString("1.00"),
		Quantity:    -5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_BuscaIgnoraAcentos(t *testing.T) {
	uc, _ := newProductUseCase(t)
	create(t, uc, "Café torrado", "12.00", "bebidas", 5)
	create(t, uc, "Açúcar cristal", "4.10", "mercearia", 15)
	create(t, uc, "Chá de camomila", "7.30", "bebidas", 8)

	// Busca sem acento encontra descrição acentuada.
	list, err := uc.List(dto.ProductFilter{Search: "cafe"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Café torrado", list[0].Description)

	// E o inverso: busca acentuada encontra qualquer grafia.
	list, err = uc.List(dto.ProductFilter{Search: "AÇÚCAR"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Açúcar cristal", list[0].Description)
}

func TestProductUseCase_FiltroPorCategoria(t *testing.T) {
	uc, _ := newProductUseCase(t)
	create(t, uc, "Café torrado", "12.00", "bebidas", 5)
	create(t, uc, "Arroz 5kg", "24.90", "mercearia", 10)
	create(t, uc, "Chá de camomila", "7.30", "bebidas", 8)

	list, err := uc.List(dto.ProductFilter{Category: "bebidas"})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// A categoria sentinela devolve o catálogo inteiro.
	list, err = uc.List(dto.ProductFilter{Category: entity.CategoryAll})
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestProductUseCase_ListaOrdenadaPorDescricao(t *testing.T) {
	uc, _ := newProductUseCase(t)
	create(t, uc, "Óleo de soja", "8.90", "", 6)
	create(t, uc, "Arroz 5kg", "24.90", "", 10)
	create(t, uc, "Macarrão", "4.00", "", 12)

	list, err := uc.List(dto.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Arroz 5kg", list[0].Description)
	assert.Equal(t, "Macarrão", list[1].Description)
	assert.Equal(t, "Óleo de soja", list[2].Description,
		"a ordenação também ignora acentos")
}

func TestProductUseCase_LowStock(t *testing.T) {
	uc, settings := newProductUseCase(t)
	scarce := create(t, uc, "Azeite", "39.90", "", 2)
	create(t, uc, "Arroz 5kg", "24.90", "", 50)
	noAlert := create(t, uc, "Sal", "3.00", "", 1)

	// Só o produto com limite configurado e estoque no limite entra no alerta.
	require.NoError(t, settings.SetStockAlerts(map[uint64]int64{scarce.ID: 3}))

	items, err := uc.LowStock()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, scarce.ID, items[0].Product.ID)
	assert.Equal(t, int64(3), items[0].Threshold)
	assert.NotEqual(t, noAlert.ID, items[0].Product.ID,
		"produto sem limite configurado nunca entra no alerta")
}

func TestProductUseCase_Categories(t *testing.T) {
	uc, _ := newProductUseCase(t)
	create(t, uc, "Café torrado", "12.00", "bebidas", 5)
	create(t, uc, "Chá de camomila", "7.30", "Bebidas", 8)
	create(t, uc, "Arroz 5kg", "24.90", "mercearia", 10)
	create(t, uc, "Parafuso", "0.50", "", 100)

	cats, err := uc.Categories()
	require.NoError(t, err)
	assert.Len(t, cats, 3, "categorias repetidas (mesmo variando a caixa) contam uma vez")
	assert.Contains(t, cats, "mercearia")
	assert.Contains(t, cats, entity.CategoryAll)
}

func TestProductUseCase_InventoryValue(t *testing.T) {
	uc, _ := newProductUseCase(t)
	create(t, uc, "Item A", "10.00", "", 3)
	create(t, uc, "Item B", "2.50", "", 4)

	total, err := uc.InventoryValue()
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("40.00")),
		"3 × 10.00 + 4 × 2.50 = 40.00, veio %s", total)
}

func TestProductUseCase_UpdateParcial(t *testing.T) {
	uc, _ := newProductUseCase(t)
	p := create(t, uc, "Macarrão", "4.00", "mercearia", 12)

	newPrice := decimal.RequireFromString("4.50")
	updated, err := uc.Update(p.ID, dto.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, "Macarrão", updated.Description, "campos ausentes permanecem")
	assert.Equal(t, int64(12), updated.Quantity)

	missing, err := uc.Update(999, dto.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Nil(t, missing, "atualizar ID desconhecido devolve nil")
}
