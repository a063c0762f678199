package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/dto"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/report"
)

// RupturasHandler endpoint da ruptura de estoque.
type RupturasHandler struct {
	uc *report.RupturasUseCase
}

// NewRupturasHandler constrói o handler.
func NewRupturasHandler(uc *report.RupturasUseCase) *RupturasHandler {
	return &RupturasHandler{uc: uc}
}

// GerarRelatorio GET /api/relatorios/rupturas
// Foto do estoque atual: não recebe período, só filiais e paginação.
func (h *RupturasHandler) GerarRelatorio(c *fiber.Ctx) error {
	var req dto.RelatorioRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parâmetros de consulta inválidos",
		})
	}

	relatorio, err := h.uc.GerarRelatorio(c.Context(), GetSchema(c), GetFiliais(c), req)
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(relatorio)
}
