package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/dto"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/report"
)

// DespesasHandler endpoints do relatório de despesas.
type DespesasHandler struct {
	uc *report.DespesasUseCase
}

// NewDespesasHandler constrói o handler.
func NewDespesasHandler(uc *report.DespesasUseCase) *DespesasHandler {
	return &DespesasHandler{uc: uc}
}

// GerarRelatorio GET /api/relatorios/despesas
// Query: data_inicio, data_fim (YYYY-MM-DD), filiais (CSV), limit, offset.
func (h *DespesasHandler) GerarRelatorio(c *fiber.Ctx) error {
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

// ListarDepartamentos GET /api/relatorios/despesas/departamentos
// Lista de opções para o filtro de departamento, ordem alfabética.
func (h *DespesasHandler) ListarDepartamentos(c *fiber.Ctx) error {
	departamentos, err := h.uc.ListarDepartamentos(c.Context(), GetSchema(c))
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(fiber.Map{"departamentos": departamentos})
}
