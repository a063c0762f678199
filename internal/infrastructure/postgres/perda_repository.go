package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/hierarchy"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/repository"
)

var _ repository.PerdaSource = (*PerdaRepo)(nil)

// PerdaRepo fonte do relatório de perdas: três níveis de departamento e o
// produto perdido com motivo.
type PerdaRepo struct {
	pool *pgxpool.Pool
}

// NewPerdaRepository constrói o adaptador.
func NewPerdaRepository(pool *pgxpool.Pool) *PerdaRepo {
	return &PerdaRepo{pool: pool}
}

// ListarPerdas perdas de UMA filial no período.
func (r *PerdaRepo) ListarPerdas(
	ctx context.Context,
	schema string,
	filialID int,
	inicio, fim time.Time,
) ([]hierarchy.RawRow, error) {
	tabela, err := tabelaTenant(schema, "vw_perdas")
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
	SELECT
	    p.departamento_nivel3,
	    p.departamento_nivel2,
	    p.departamento_nivel1,
	    p.codigo_produto,
	    p.descricao_produto,
	    p.quantidade,
	    p.valor_perda,
	    p.motivo,
	    p.data_perda
	FROM %s p
	WHERE p.filial_id = $1
	  AND p.data_perda BETWEEN $2 AND $3`, tabela)

	rows, err := r.pool.Query(ctx, query, filialID, inicio, fim)
	if err != nil {
		return nil, fmt.Errorf("perdas.ListarPerdas: %w", err)
	}
	defer rows.Close()

	var out []hierarchy.RawRow
	for rows.Next() {
		var n3, n2, n1, codigo, descricao, quantidade, valor, motivo, data any
		if err := rows.Scan(&n3, &n2, &n1, &codigo, &descricao, &quantidade, &valor, &motivo, &data); err != nil {
			return nil, fmt.Errorf("perdas.ListarPerdas scan: %w", err)
		}
		out = append(out, hierarchy.RawRow{
			Niveis:     []any{n3, n2, n1},
			Codigo:     codigo,
			Descricao:  descricao,
			FilialID:   filialID,
			Quantidade: quantidade,
			Valor:      valor,
			Motivo:     motivo,
			Data:       data,
		})
	}
	return out, rows.Err()
}
