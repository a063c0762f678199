package report

import (
	"context"
	"sort"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/dto"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/hierarchy"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/repository"
)

// FiliaisUseCase lista de filiais para os filtros dos relatórios.
type FiliaisUseCase struct {
	repo repository.FilialRepository
}

// NewFiliaisUseCase constrói o caso de uso.
func NewFiliaisUseCase(repo repository.FilialRepository) *FiliaisUseCase {
	return &FiliaisUseCase{repo: repo}
}

// Listar devolve as filiais ativas em ordem alfabética (lista de opções de
// filtro — aqui a ordem é alfabética mesmo, não ranking por valor).
func (uc *FiliaisUseCase) Listar(ctx context.Context, schema string, permitidas []int) ([]dto.FilialDTO, error) {
	filiais, err := uc.repo.Listar(ctx, schema)
	if err != nil {
		return nil, err
	}

	var permitido map[int]bool
	if permitidas != nil {
		permitido = make(map[int]bool, len(permitidas))
		for _, id := range permitidas {
			permitido[id] = true
		}
	}

	out := make([]dto.FilialDTO, 0, len(filiais))
	for _, f := range filiais {
		if !f.Ativa {
			continue
		}
		if permitido != nil && !permitido[f.ID] {
			continue
		}
		out = append(out, dto.FilialDTO{ID: f.ID, Nome: f.Nome, Cidade: f.Cidade})
	}
	sort.Slice(out, func(i, j int) bool {
		return hierarchy.Fold(out[i].Nome) < hierarchy.Fold(out[j].Nome)
	})
	return out, nil
}
