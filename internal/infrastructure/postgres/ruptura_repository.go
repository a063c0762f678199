package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/hierarchy"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/repository"
)

var _ repository.RupturaSource = (*RupturaRepo)(nil)

// RupturaRepo fonte do relatório de ruptura de estoque. A view é uma foto do
// estoque atual, por isso não há parâmetros de período.
type RupturaRepo struct {
	pool *pgxpool.Pool
}

// NewRupturaRepository constrói o adaptador.
func NewRupturaRepository(pool *pgxpool.Pool) *RupturaRepo {
	return &RupturaRepo{pool: pool}
}

// ListarRupturas produtos em ruptura de UMA filial. O valor é a venda média
// diária estimada do produto (impacto da ruptura).
func (r *RupturaRepo) ListarRupturas(
	ctx context.Context,
	schema string,
	filialID int,
) ([]hierarchy.RawRow, error) {
	tabela, err := tabelaTenant(schema, "vw_rupturas")
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
	SELECT
	    u.departamento,
	    u.codigo_produto,
	    u.descricao_produto,
	    u.venda_media_diaria,
	    u.dias_sem_estoque,
	    u.observacao
	FROM %s u
	WHERE u.filial_id = $1`, tabela)

	rows, err := r.pool.Query(ctx, query, filialID)
	if err != nil {
		return nil, fmt.Errorf("rupturas.ListarRupturas: %w", err)
	}
	defer rows.Close()

	var out []hierarchy.RawRow
	for rows.Next() {
		var departamento, codigo, descricao, vendaMedia, diasSemEstoque, observacao any
		if err := rows.Scan(&departamento, &codigo, &descricao, &vendaMedia, &diasSemEstoque, &observacao); err != nil {
			return nil, fmt.Errorf("rupturas.ListarRupturas scan: %w", err)
		}
		out = append(out, hierarchy.RawRow{
			Niveis:     []any{departamento},
			Codigo:     codigo,
			Descricao:  descricao,
			FilialID:   filialID,
			Valor:      vendaMedia,
			Quantidade: diasSemEstoque,
			Observacao: observacao,
		})
	}
	return out, rows.Err()
}
