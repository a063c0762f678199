package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/hierarchy"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/repository"
)

var _ repository.DRESource = (*DRERepo)(nil)

// DRERepo fonte do DRE comparativo. A função fn_dre do schema devolve as
// linhas já na ordem contábil (receita → deduções → CMV → despesas); essa
// ordem é preservada até a resposta — o comparativo não ranqueia por valor.
type DRERepo struct {
	pool *pgxpool.Pool
}

// NewDRERepository constrói o adaptador.
func NewDRERepository(pool *pgxpool.Pool) *DRERepo {
	return &DRERepo{pool: pool}
}

// ListarLinhasDRE linhas do DRE de UMA filial no período: grupo, conta, valor.
func (r *DRERepo) ListarLinhasDRE(
	ctx context.Context,
	schema string,
	filialID int,
	inicio, fim time.Time,
) ([]hierarchy.RawRow, error) {
	fn, err := tabelaTenant(schema, "fn_dre")
	if err != nil {
		return nil, err
	}
	// A função devolve SETOF (grupo TEXT, conta TEXT, valor TEXT): tenants
	// antigos serializam o valor como texto — a coerção é do normalizador.
	query := fmt.Sprintf(`SELECT grupo, conta, valor FROM %s($1, $2, $3) ORDER BY ordem`, fn)

	rows, err := r.pool.Query(ctx, query, filialID, inicio, fim)
	if err != nil {
		return nil, fmt.Errorf("dre.ListarLinhasDRE: %w", err)
	}
	defer rows.Close()

	var out []hierarchy.RawRow
	for rows.Next() {
		var grupo, conta, valor any
		if err := rows.Scan(&grupo, &conta, &valor); err != nil {
			return nil, fmt.Errorf("dre.ListarLinhasDRE scan: %w", err)
		}
		out = append(out, hierarchy.RawRow{
			Niveis:    []any{grupo, conta},
			Descricao: conta,
			FilialID:  filialID,
			Valor:     valor,
		})
	}
	return out, rows.Err()
}
