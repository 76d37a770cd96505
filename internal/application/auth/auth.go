// Package auth autentica o operador do caixa. Há uma única credencial,
// definida na configuração; o hash bcrypt é calculado na construção para que
// a senha em claro não fique retida em memória além do necessário.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/lojazen/balcao/internal/domain"
	"github.com/lojazen/balcao/pkg/jwt"
)

// Config credenciais do operador e parâmetros do token.
type Config struct {
	Username   string
	Password   string
	JWTSecret  string
	Issuer     string
	ExpMinutes int
}

// UseCase valida credenciais e emite tokens JWT.
type UseCase struct {
	username     string
	passwordHash []byte
	jwtSecret    string
	issuer       string
	expMinutes   int
}

// NewUseCase constrói o caso de uso, derivando o hash bcrypt da senha
// configurada.
func NewUseCase(cfg Config) (*UseCase, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("auth: credenciais do operador não configuradas")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: derivar hash da senha: %w", err)
	}
	return &UseCase{
		username:     cfg.Username,
		passwordHash: hash,
		jwtSecret:    cfg.JWTSecret,
		issuer:       cfg.Issuer,
		expMinutes:   cfg.ExpMinutes,
	}, nil
}

// Login compara as credenciais e devolve um token assinado. Credencial
// incorreta devolve domain.ErrUnauthorized, sem distinguir usuário de senha.
func (uc *UseCase) Login(username, password string) (string, error) {
	if username != uc.username {
		return "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(uc.passwordHash, []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtSecret, username, uc.issuer, uc.expMinutes)
	if err != nil {
		return "", fmt.Errorf("auth: emitir token: %w", err)
	}
	return token, nil
}
