package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/report"
)

// FilialHandler endpoint do catálogo de filiais.
type FilialHandler struct {
	uc *report.FiliaisUseCase
}

// NewFilialHandler constrói o handler.
func NewFilialHandler(uc *report.FiliaisUseCase) *FilialHandler {
	return &FilialHandler{uc: uc}
}

// Listar GET /api/filiais
// Só as filiais ativas e permitidas ao usuário do token.
func (h *FilialHandler) Listar(c *fiber.Ctx) error {
	filiais, err := h.uc.Listar(c.Context(), GetSchema(c), GetFiliais(c))
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(fiber.Map{"filiais": filiais})
}
