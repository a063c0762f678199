package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/dto"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/report"
)

// DREHandler endpoint do DRE comparativo.
type DREHandler struct {
	uc *report.DREComparativoUseCase
}

// NewDREHandler constrói o handler.
func NewDREHandler(uc *report.DREComparativoUseCase) *DREHandler {
	return &DREHandler{uc: uc}
}

// Comparar POST /api/relatorios/dre-comparativo
// Body: lista de 2 a 4 contextos, cada um com rótulo, período e filiais.
// POST porque a lista de contextos não cabe bem em query string.
func (h *DREHandler) Comparar(c *fiber.Ctx) error {
	var req dto.DREComparativoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "corpo da requisição inválido",
		})
	}

	relatorio, err := h.uc.Comparar(c.Context(), GetSchema(c), GetFiliais(c), req)
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(relatorio)
}
