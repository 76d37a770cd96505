package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lojazen/balcao/internal/application/dto"
	"github.com/lojazen/balcao/pkg/jwt"
)

// LocalOperator chave de c.Locals com o operador autenticado.
const LocalOperator = "operator"

// AuthMiddleware valida o Bearer Token JWT e guarda o operador em c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		operator, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalOperator, operator)
		return c.Next()
	}
}

// GetOperator devolve o operador do contexto (após o middleware de auth).
func GetOperator(c *fiber.Ctx) string {
	v := c.Locals(LocalOperator)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
