package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound          = errors.New("registro não encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicateKey      = errors.New("chave duplicada")
	ErrInsufficientStock = errors.New("estoque insuficiente")
	ErrInvalidBackup     = errors.New("arquivo de backup inválido")
	ErrSchemaConsistency = errors.New("esquema inconsistente: reinicialização necessária")
	ErrUnauthorized      = errors.New("não autorizado")
)
