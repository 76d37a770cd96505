package usecase

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lojazen/balcao/internal/application/dto"
	"github.com/lojazen/balcao/internal/domain"
	"github.com/lojazen/balcao/internal/domain/entity"
	"github.com/lojazen/balcao/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD e visões derivadas do catálogo de
// produtos (filtro por categoria, busca sem acentos, estoque baixo).
type ProductUseCase struct {
	repo     repository.ProductRepository
	settings repository.SettingsRepository
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(repo repository.ProductRepository, settings repository.SettingsRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, settings: settings}
}

// Create cria um produto novo. Descrição obrigatória; preço e quantidade não
// podem ser negativos.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*entity.Product, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	product := &entity.Product{
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Category:    in.Category,
		Barcode:     in.Barcode,
		VendorID:    in.VendorID,
		Image:       in.Image,
		Links:       in.Links,
		TechDetails: in.TechDetails,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID devolve o produto ou nil quando não existe.
func (uc *ProductUseCase) GetByID(id uint64) (*entity.Product, error) {
	return uc.repo.GetByID(id)
}

// GetByBarcode devolve o produto com o código de barras dado ou nil.
func (uc *ProductUseCase) GetByBarcode(code string) (*entity.Product, error) {
	return uc.repo.GetByBarcode(code)
}

// List devolve o catálogo filtrado por categoria e/ou busca textual sem
// acentos, ordenado por descrição.
func (uc *ProductUseCase) List(filter dto.ProductFilter) ([]*entity.Product, error) {
	all, err := uc.repo.GetAll()
	if err != nil {
		return nil, err
	}
	search := normalizeText(filter.Search)
	list := make([]*entity.Product, 0, len(all))
	for _, p := range all {
		if filter.Category != "" && filter.Category != entity.CategoryAll &&
			!strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if search != "" && !strings.Contains(normalizeText(p.Description), search) {
			continue
		}
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		return normalizeText(list[i].Description) < normalizeText(list[j].Description)
	})
	return list, nil
}

// Update atualiza os campos presentes. Sold não é editável por aqui: só o
// checkout o incrementa.
func (uc *ProductUseCase) Update(id uint64, in dto.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Quantity = *in.Quantity
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.VendorID != nil {
		product.VendorID = *in.VendorID
	}
	if in.Image != nil {
		product.Image = *in.Image
	}
	if in.Links != nil {
		product.Links = in.Links
	}
	if in.TechDetails != nil {
		product.TechDetails = *in.TechDetails
	}
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete remove o produto. Idempotente.
func (uc *ProductUseCase) Delete(id uint64) error {
	return uc.repo.Delete(id)
}

// LowStockItem produto cujo estoque atingiu o limite mínimo configurado.
type LowStockItem struct {
	Product   *entity.Product `json:"product"`
	Threshold int64           `json:"threshold"`
}

// LowStock cruza o catálogo com os limites mínimos das configurações e
// devolve os produtos em alerta.
func (uc *ProductUseCase) LowStock() ([]LowStockItem, error) {
	alerts, err := uc.settings.StockAlerts()
	if err != nil {
		return nil, err
	}
	if len(alerts) == 0 {
		return nil, nil
	}
	all, err := uc.repo.GetAll()
	if err != nil {
		return nil, err
	}
	var items []LowStockItem
	for _, p := range all {
		threshold, ok := alerts[p.ID]
		if ok && p.Quantity <= threshold {
			items = append(items, LowStockItem{Product: p, Threshold: threshold})
		}
	}
	return items, nil
}

// Categories devolve as categorias em uso, ordenadas, sem repetição.
func (uc *ProductUseCase) Categories() ([]string, error) {
	all, err := uc.repo.GetAll()
	if err != nil {
		return nil, err
	}
	seen := map[string]string{}
	for _, p := range all {
		seen[strings.ToLower(p.Category)] = p.Category
	}
	cats := make([]string, 0, len(seen))
	for _, c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats, nil
}

// InventoryValue soma preço × quantidade de todo o catálogo.
func (uc *ProductUseCase) InventoryValue() (decimal.Decimal, error) {
	all, err := uc.repo.GetAll()
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range all {
		total = total.Add(p.Price.Mul(decimal.NewFromInt(p.Quantity)))
	}
	return total, nil
}
