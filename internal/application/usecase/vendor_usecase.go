package usecase

import (
	"strings"

	"github.com/lojazen/balcao/internal/application/dto"
	"github.com/lojazen/balcao/internal/domain"
	"github.com/lojazen/balcao/internal/domain/entity"
	"github.com/lojazen/balcao/internal/domain/repository"
)

// VendorUseCase casos de uso CRUD para fornecedores, incluindo a semeadura
// do fornecedor padrão no primeiro uso.
type VendorUseCase struct {
	repo repository.VendorRepository
}

// NewVendorUseCase constrói o caso de uso.
func NewVendorUseCase(repo repository.VendorRepository) *VendorUseCase {
	return &VendorUseCase{repo: repo}
}

// EnsureDefault garante a existência do fornecedor padrão, identificado pelo
// documento fixo. Chamado na inicialização; idempotente.
func (uc *VendorUseCase) EnsureDefault() (*entity.Vendor, error) {
	existing, err := uc.repo.GetByDocument(entity.DefaultVendorDocument)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	v := &entity.Vendor{
		Name:        "Fornecedor padrão",
		Description: "Fornecedor atribuído a produtos sem origem definida",
		Document:    entity.DefaultVendorDocument,
	}
	if err := uc.repo.Create(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Create cria um fornecedor. Name e Document obrigatórios; documento
// duplicado propaga domain.ErrDuplicateKey.
func (uc *VendorUseCase) Create(in dto.CreateVendorRequest) (*entity.Vendor, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Document) == "" {
		return nil, domain.ErrInvalidInput
	}
	vendor := &entity.Vendor{
		Name:        in.Name,
		Description: in.Description,
		Document:    in.Document,
		CNPJ:        in.CNPJ,
		Email:       in.Email,
		WhatsApp:    in.WhatsApp,
		Telegram:    in.Telegram,
		Website:     in.Website,
		ProductIDs:  in.ProductIDs,
	}
	if err := uc.repo.Create(vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// GetByID devolve o fornecedor ou nil quando não existe.
func (uc *VendorUseCase) GetByID(id uint64) (*entity.Vendor, error) {
	return uc.repo.GetByID(id)
}

// List devolve todos os fornecedores.
func (uc *VendorUseCase) List() ([]*entity.Vendor, error) {
	return uc.repo.GetAll()
}

// Update atualiza os campos presentes.
func (uc *VendorUseCase) Update(id uint64, in dto.UpdateVendorRequest) (*entity.Vendor, error) {
	vendor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, nil
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		vendor.Name = *in.Name
	}
	if in.Description != nil {
		vendor.Description = *in.Description
	}
	if in.Document != nil {
		vendor.Document = *in.Document
	}
	if in.CNPJ != nil {
		vendor.CNPJ = *in.CNPJ
	}
	if in.Email != nil {
		vendor.Email = *in.Email
	}
	if in.WhatsApp != nil {
		vendor.WhatsApp = *in.WhatsApp
	}
	if in.Telegram != nil {
		vendor.Telegram = *in.Telegram
	}
	if in.Website != nil {
		vendor.Website = *in.Website
	}
	if in.ProductIDs != nil {
		vendor.ProductIDs = in.ProductIDs
	}
	if err := uc.repo.Update(vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// Delete remove o fornecedor. Idempotente; não apaga produtos associados.
func (uc *VendorUseCase) Delete(id uint64) error {
	return uc.repo.Delete(id)
}
