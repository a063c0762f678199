package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/entity"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/repository"
)

var _ repository.FilialRepository = (*FilialRepo)(nil)

// FilialRepo catálogo de filiais do tenant.
type FilialRepo struct {
	pool *pgxpool.Pool
}

// NewFilialRepository constrói o adaptador.
func NewFilialRepository(pool *pgxpool.Pool) *FilialRepo {
	return &FilialRepo{pool: pool}
}

// Listar todas as filiais do schema, ativas ou não. O filtro de permissão e
// de situação é do caso de uso, não do banco.
func (r *FilialRepo) Listar(ctx context.Context, schema string) ([]entity.Filial, error) {
	tabela, err := tabelaTenant(schema, "filiais")
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
	SELECT f.id, f.nome, f.cidade, f.ativa
	FROM %s f
	ORDER BY f.nome`, tabela)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("filiais.Listar: %w", err)
	}
	defer rows.Close()

	var out []entity.Filial
	for rows.Next() {
		var f entity.Filial
		if err := rows.Scan(&f.ID, &f.Nome, &f.Cidade, &f.Ativa); err != nil {
			return nil, fmt.Errorf("filiais.Listar scan: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
