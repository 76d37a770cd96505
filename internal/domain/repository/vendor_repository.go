package repository

import "github.com/lojazen/balcao/internal/domain/entity"

// VendorRepository define a porta de persistência para Vendor. Document é
// único: Create e Update devolvem domain.ErrDuplicateKey em conflito.
type VendorRepository interface {
	Create(vendor *entity.Vendor) error
	GetByID(id uint64) (*entity.Vendor, error)
	GetByDocument(document string) (*entity.Vendor, error)
	GetAll() ([]*entity.Vendor, error)
	Update(vendor *entity.Vendor) error
	Delete(id uint64) error
	// ReplaceAll limpa a coleção e regrava os registros preservando IDs.
	ReplaceAll(vendors []*entity.Vendor) error
}
