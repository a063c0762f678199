package report

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/dto"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/hierarchy"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/repository"
)

// PerdasUseCase relatório de perdas: árvore de três níveis de departamento
// (nível 3 → nível 2 → nível 1) com o produto perdido na última camada,
// motivo da perda no item.
type PerdasUseCase struct {
	fonte repository.PerdaSource
	sf    singleflight.Group
}

// NewPerdasUseCase constrói o caso de uso.
func NewPerdasUseCase(fonte repository.PerdaSource) *PerdasUseCase {
	return &PerdasUseCase{fonte: fonte}
}

// GerarRelatorio mesma orquestração do relatório de despesas, com hierarquia
// mais profunda e sem mescla de itens (cada perda é um registro próprio).
func (uc *PerdasUseCase) GerarRelatorio(
	ctx context.Context,
	schema string,
	filiaisPermitidas []int,
	req dto.RelatorioRequest,
) (*dto.RelatorioHierarquicoDTO, error) {
	inicio, fim, err := validarPeriodo(req.DataInicio, req.DataFim)
	if err != nil {
		return nil, err
	}
	filiais, err := validarFiliais(req.Filiais, filiaisPermitidas)
	if err != nil {
		return nil, err
	}
	req.DefaultPage()

	key := chaveRefresh("perdas", schema, inicio, fim, filiais,
		strconv.Itoa(req.Limit), strconv.Itoa(req.Offset))
	v, err, _ := uc.sf.Do(key, func() (any, error) {
		return uc.montar(ctx, schema, filiais, inicio, fim, req.PageRequest)
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.RelatorioHierarquicoDTO), nil
}

func (uc *PerdasUseCase) montar(
	ctx context.Context,
	schema string,
	filiais []int,
	inicio, fim time.Time,
	pagina dto.PageRequest,
) (*dto.RelatorioHierarquicoDTO, error) {
	raws, err := buscarTodasFiliais(ctx, filiais, func(ctx context.Context, filialID int) ([]hierarchy.RawRow, error) {
		return uc.fonte.ListarPerdas(ctx, schema, filialID, inicio, fim)
	})
	if err != nil {
		return nil, err
	}

	rows := hierarchy.NormalizeAll(raws)
	builder, err := hierarchy.NewBuilder(hierarchy.Config{Niveis: 3, MultiFilial: true})
	if err != nil {
		return nil, err
	}
	tree := builder.Build(rows)
	hierarchy.Rollup(tree)
	hierarchy.Sort(tree, hierarchy.PorValor)

	departamentos, meta := paginar(montarArvoreDTO(tree), pagina)
	return &dto.RelatorioHierarquicoDTO{
		Totalizador:   montarTotalizador(tree),
		Grafico:       montarGrafico(rows),
		Departamentos: departamentos,
		FilialIDs:     tree.FilialIDs(),
		Pagina:        meta,
	}, nil
}
