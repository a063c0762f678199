package repository

import (
	"context"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/entity"
)

// FilialRepository lista as filiais do tenant para os filtros dos relatórios.
// Ordem alfabética por nome (lista de opções, não ranking).
type FilialRepository interface {
	Listar(ctx context.Context, schema string) ([]entity.Filial, error)
}
