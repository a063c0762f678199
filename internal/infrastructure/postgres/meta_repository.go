package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/repository"
)

var _ repository.MetaSource = (*MetaRepo)(nil)

// MetaRepo fonte do acompanhamento de metas. As tabelas de metas são do
// próprio produto, então a leitura é tipada direto em MetaDiariaRow.
type MetaRepo struct {
	pool *pgxpool.Pool
}

// NewMetaRepository constrói o adaptador.
func NewMetaRepository(pool *pgxpool.Pool) *MetaRepo {
	return &MetaRepo{pool: pool}
}

// ListarMetasDiarias meta e realizado por dia de UMA filial no período.
// Dias sem lançamento não aparecem no resultado.
func (r *MetaRepo) ListarMetasDiarias(
	ctx context.Context,
	schema string,
	filialID int,
	inicio, fim time.Time,
) ([]repository.MetaDiariaRow, error) {
	tabela, err := tabelaTenant(schema, "metas_diarias")
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
	SELECT
	    m.filial_id,
	    m.data,
	    m.valor_meta,
	    COALESCE(m.valor_realizado, 0)
	FROM %s m
	WHERE m.filial_id = $1
	  AND m.data BETWEEN $2 AND $3
	ORDER BY m.data`, tabela)

	rows, err := r.pool.Query(ctx, query, filialID, inicio, fim)
	if err != nil {
		return nil, fmt.Errorf("metas.ListarMetasDiarias: %w", err)
	}
	defer rows.Close()

	var out []repository.MetaDiariaRow
	for rows.Next() {
		var m repository.MetaDiariaRow
		if err := rows.Scan(&m.FilialID, &m.Data, &m.Meta, &m.Realizado); err != nil {
			return nil, fmt.Errorf("metas.ListarMetasDiarias scan: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
