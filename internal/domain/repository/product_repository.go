package repository

import "github.com/lojazen/balcao/internal/domain/entity"

// ProductRepository define a porta de persistência para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id uint64) (*entity.Product, error)
	GetByBarcode(code string) (*entity.Product, error)
	GetAll() ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id uint64) error
	// ReplaceAll limpa a coleção e regrava os registros preservando IDs
	// (restauração de backup).
	ReplaceAll(products []*entity.Product) error
}
