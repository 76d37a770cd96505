package repository

import "github.com/lojazen/balcao/internal/domain/entity"

// ClientRepository define a porta de persistência para Client.
// Create e Update devolvem domain.ErrDuplicateKey quando o CPF informado já
// pertence a outro registro.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id uint64) (*entity.Client, error)
	GetByCPF(cpf string) (*entity.Client, error)
	GetAll() ([]*entity.Client, error)
	Update(client *entity.Client) error
	Delete(id uint64) error
	// ReplaceAll limpa a coleção e regrava os registros preservando IDs.
	ReplaceAll(clients []*entity.Client) error
}
