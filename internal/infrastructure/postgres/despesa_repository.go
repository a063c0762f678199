package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/hierarchy"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/repository"
)

var _ repository.DespesaSource = (*DespesaRepo)(nil)

// DespesaRepo fonte read-only do relatório de despesas.
//
// As linhas saem como hierarchy.RawRow com campos `any`: as views legadas de
// alguns tenants gravam valor como texto, e a fronteira de coerção é o
// RowNormalizer, não o driver.
type DespesaRepo struct {
	pool *pgxpool.Pool
}

// NewDespesaRepository constrói o adaptador.
func NewDespesaRepository(pool *pgxpool.Pool) *DespesaRepo {
	return &DespesaRepo{pool: pool}
}

// ListarDespesas lançamentos de despesa de UMA filial no período, com a chave
// de hierarquia (departamento → tipo) em cada linha.
func (r *DespesaRepo) ListarDespesas(
	ctx context.Context,
	schema string,
	filialID int,
	inicio, fim time.Time,
) ([]hierarchy.RawRow, error) {
	tabela, err := tabelaTenant(schema, "vw_despesas")
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
	SELECT
	    d.departamento,
	    d.tipo_despesa,
	    d.descricao,
	    d.valor,
	    d.data_lancamento,
	    d.nota_fiscal,
	    d.serie,
	    d.observacao
	FROM %s d
	WHERE d.filial_id = $1
	  AND d.data_lancamento BETWEEN $2 AND $3
	ORDER BY d.data_lancamento`, tabela)

	rows, err := r.pool.Query(ctx, query, filialID, inicio, fim)
	if err != nil {
		return nil, fmt.Errorf("despesas.ListarDespesas: %w", err)
	}
	defer rows.Close()

	var out []hierarchy.RawRow
	for rows.Next() {
		var departamento, tipo, descricao, valor, data, nota, serie, obs any
		if err := rows.Scan(&departamento, &tipo, &descricao, &valor, &data, &nota, &serie, &obs); err != nil {
			return nil, fmt.Errorf("despesas.ListarDespesas scan: %w", err)
		}
		out = append(out, hierarchy.RawRow{
			Niveis:     []any{departamento, tipo},
			Descricao:  descricao,
			FilialID:   filialID,
			Valor:      valor,
			Data:       data,
			NotaFiscal: nota,
			Serie:      serie,
			Observacao: obs,
		})
	}
	return out, rows.Err()
}

// ListarDepartamentos opções do filtro, ordem alfabética.
func (r *DespesaRepo) ListarDepartamentos(ctx context.Context, schema string) ([]string, error) {
	tabela, err := tabelaTenant(schema, "vw_despesas")
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
	SELECT DISTINCT d.departamento
	FROM %s d
	WHERE d.departamento IS NOT NULL AND d.departamento <> ''
	ORDER BY d.departamento`, tabela)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("despesas.ListarDepartamentos: %w", err)
	}
	defer rows.Close()

	var nomes []string
	for rows.Next() {
		var nome string
		if err := rows.Scan(&nome); err != nil {
			return nil, fmt.Errorf("despesas.ListarDepartamentos scan: %w", err)
		}
		nomes = append(nomes, nome)
	}
	return nomes, rows.Err()
}
