package usecase

import (
	"strings"

	"github.com/lojazen/balcao/internal/application/dto"
	"github.com/lojazen/balcao/internal/domain"
	"github.com/lojazen/balcao/internal/domain/entity"
	"github.com/lojazen/balcao/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase constrói o caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create cria um cliente. Name é obrigatório; CPF duplicado propaga
// domain.ErrDuplicateKey do repositório.
func (uc *ClientUseCase) Create(in dto.CreateClientRequest) (*entity.Client, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	client := &entity.Client{
		Name:    in.Name,
		CPF:     in.CPF,
		RG:      in.RG,
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetByID devolve o cliente ou nil quando não existe.
func (uc *ClientUseCase) GetByID(id uint64) (*entity.Client, error) {
	return uc.repo.GetByID(id)
}

// List devolve todos os clientes.
func (uc *ClientUseCase) List() ([]*entity.Client, error) {
	return uc.repo.GetAll()
}

// Update atualiza os campos presentes.
func (uc *ClientUseCase) Update(id uint64, in dto.UpdateClientRequest) (*entity.Client, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		client.Name = *in.Name
	}
	if in.CPF != nil {
		client.CPF = *in.CPF
	}
	if in.RG != nil {
		client.RG = *in.RG
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Address != nil {
		client.Address = *in.Address
	}
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete remove o cliente. Idempotente.
func (uc *ClientUseCase) Delete(id uint64) error {
	return uc.repo.Delete(id)
}
