package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/dto"
)

// RequireModule devolve um middleware Fiber que verifica se o módulo está na
// lista de módulos do token JWT. Deve vir DEPOIS do AuthMiddleware.
//
// Comportamento:
//   - 403 Forbidden → módulo não contratado para o tenant.
//   - 401 → claims ausentes (o AuthMiddleware deveria tê-los posto).
func RequireModule(moduleName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetSchema(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "schema não encontrado no token",
			})
		}
		for _, m := range GetModulos(c) {
			if m == moduleName {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "MODULE_DISABLED",
			Message: "o módulo '" + moduleName + "' não está ativo para este tenant",
		})
	}
}
