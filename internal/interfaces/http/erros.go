package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/dto"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain"
)

// respostaErro traduz os erros sentinela do domínio para status HTTP.
// Erro de validação é do cliente; falha de fonte é do upstream.
func respostaErro(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrPeriodoInvalido),
		errors.Is(err, domain.ErrParametroInvalido),
		errors.Is(err, domain.ErrFilialObrigatoria):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrFilialNaoPermitida):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code: "FORBIDDEN", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrNaoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrFonteRelatorio):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "SOURCE_FAILED", Message: "falha ao consultar a fonte de dados do relatório",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL_ERROR", Message: "erro interno",
		})
	}
}
