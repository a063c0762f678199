package report

import (
	"context"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/dto"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/hierarchy"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/repository"
)

// RupturasUseCase ruptura de estoque: foto do dia (sem período) dos produtos
// sem estoque com venda recente, consolidada por departamento. O valor do item
// é a venda diária média estimada perdida; o gráfico não se aplica.
type RupturasUseCase struct {
	fonte repository.RupturaSource
	sf    singleflight.Group
}

// NewRupturasUseCase constrói o caso de uso.
func NewRupturasUseCase(fonte repository.RupturaSource) *RupturasUseCase {
	return &RupturasUseCase{fonte: fonte}
}

// GerarRelatorio fan-out por filial, dobra de um nível (departamento) com o
// produto em ruptura na camada terminal.
func (uc *RupturasUseCase) GerarRelatorio(
	ctx context.Context,
	schema string,
	filiaisPermitidas []int,
	req dto.RelatorioRequest,
) (*dto.RelatorioHierarquicoDTO, error) {
	filiais, err := validarFiliais(req.Filiais, filiaisPermitidas)
	if err != nil {
		return nil, err
	}
	req.DefaultPage()

	key := chaveRefresh("rupturas", schema, timeZero, timeZero, filiais,
		strconv.Itoa(req.Limit), strconv.Itoa(req.Offset))
	v, err, _ := uc.sf.Do(key, func() (any, error) {
		return uc.montar(ctx, schema, filiais, req.PageRequest)
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.RelatorioHierarquicoDTO), nil
}

func (uc *RupturasUseCase) montar(
	ctx context.Context,
	schema string,
	filiais []int,
	pagina dto.PageRequest,
) (*dto.RelatorioHierarquicoDTO, error) {
	raws, err := buscarTodasFiliais(ctx, filiais, func(ctx context.Context, filialID int) ([]hierarchy.RawRow, error) {
		return uc.fonte.ListarRupturas(ctx, schema, filialID)
	})
	if err != nil {
		return nil, err
	}

	rows := hierarchy.NormalizeAll(raws)
	builder, err := hierarchy.NewBuilder(hierarchy.Config{Niveis: 1, MultiFilial: true})
	if err != nil {
		return nil, err
	}
	tree := builder.Build(rows)
	hierarchy.Rollup(tree)
	hierarchy.Sort(tree, hierarchy.PorValor)

	departamentos, meta := paginar(montarArvoreDTO(tree), pagina)
	return &dto.RelatorioHierarquicoDTO{
		Totalizador:   montarTotalizador(tree),
		Departamentos: departamentos,
		FilialIDs:     tree.FilialIDs(),
		Pagina:        meta,
	}, nil
}
