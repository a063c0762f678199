package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/hierarchy"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/repository"
)

var _ repository.VendaCurvaSource = (*VendaRepo)(nil)

// VendaRepo fonte das vendas agregadas por produto, base da curva ABC.
type VendaRepo struct {
	pool *pgxpool.Pool
}

// NewVendaRepository constrói o adaptador.
func NewVendaRepository(pool *pgxpool.Pool) *VendaRepo {
	return &VendaRepo{pool: pool}
}

// ListarVendasPorProduto vendas de UMA filial no período, uma linha por
// produto. A view já agrega por produto; lucro = receita − custo.
func (r *VendaRepo) ListarVendasPorProduto(
	ctx context.Context,
	schema string,
	filialID int,
	inicio, fim time.Time,
) ([]hierarchy.RawRow, error) {
	tabela, err := tabelaTenant(schema, "vw_vendas_produto")
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
	SELECT
	    v.departamento,
	    v.codigo_produto,
	    v.descricao_produto,
	    v.valor_venda,
	    v.lucro,
	    v.quantidade
	FROM %s v
	WHERE v.filial_id = $1
	  AND v.data_venda BETWEEN $2 AND $3`, tabela)

	rows, err := r.pool.Query(ctx, query, filialID, inicio, fim)
	if err != nil {
		return nil, fmt.Errorf("vendas.ListarVendasPorProduto: %w", err)
	}
	defer rows.Close()

	var out []hierarchy.RawRow
	for rows.Next() {
		var departamento, codigo, descricao, valor, lucro, quantidade any
		if err := rows.Scan(&departamento, &codigo, &descricao, &valor, &lucro, &quantidade); err != nil {
			return nil, fmt.Errorf("vendas.ListarVendasPorProduto scan: %w", err)
		}
		out = append(out, hierarchy.RawRow{
			Niveis:     []any{departamento},
			Codigo:     codigo,
			Descricao:  descricao,
			FilialID:   filialID,
			Valor:      valor,
			Lucro:      lucro,
			Quantidade: quantidade,
		})
	}
	return out, rows.Err()
}
