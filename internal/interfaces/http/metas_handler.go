package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/dto"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/report"
)

// MetasHandler endpoint do acompanhamento de metas.
type MetasHandler struct {
	uc *report.MetasUseCase
}

// NewMetasHandler constrói o handler.
func NewMetasHandler(uc *report.MetasUseCase) *MetasHandler {
	return &MetasHandler{uc: uc}
}

// GerarRelatorio GET /api/relatorios/metas
func (h *MetasHandler) GerarRelatorio(c *fiber.Ctx) error {
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
