package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/dto"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/report"
)

// CurvaHandler endpoint da curva ABC de vendas.
type CurvaHandler struct {
	uc *report.CurvaVendasUseCase
}

// NewCurvaHandler constrói o handler.
func NewCurvaHandler(uc *report.CurvaVendasUseCase) *CurvaHandler {
	return &CurvaHandler{uc: uc}
}

// GerarRelatorio GET /api/relatorios/curva-vendas
// A classificação ABC (80/95) se calcula sobre o período inteiro; limit e
// offset cortam só a lista devolvida.
func (h *CurvaHandler) GerarRelatorio(c *fiber.Ctx) error {
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
