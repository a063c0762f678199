package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/dto"
	"github.com/Devinga-com-br/bi-saas-sub000/pkg/jwt"
)

// Locals keys dos claims extraídos do token.
const (
	LocalUserID  = "user_id"
	LocalSchema  = "schema"
	LocalRole    = "role"
	LocalFiliais = "filiais"
	LocalModulos = "modulos"
)

// AuthMiddleware valida o Bearer Token JWT e copia os claims da aplicação
// para c.Locals: user_id, schema do tenant, role, filiais e módulos.
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
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		if claims.Schema == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token sem schema do tenant"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalSchema, claims.Schema)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalFiliais, claims.Filiais)
		c.Locals(LocalModulos, claims.Modulos)
		return c.Next()
	}
}

// GetUserID devolve o UserID do contexto (depois do middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetSchema devolve o schema do tenant do contexto.
func GetSchema(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSchema).(string)
	return s
}

// GetRole devolve o papel do usuário do contexto.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetFiliais devolve as filiais permitidas ao usuário.
func GetFiliais(c *fiber.Ctx) []int {
	v, _ := c.Locals(LocalFiliais).([]int)
	return v
}

// GetModulos devolve os módulos contratados no token.
func GetModulos(c *fiber.Ctx) []string {
	v, _ := c.Locals(LocalModulos).([]string)
	return v
}
