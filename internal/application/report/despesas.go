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

// DespesasUseCase relatório de despesas (DRE analítico): árvore de dois níveis
// (departamento → tipo de despesa) com os lançamentos na última camada.
//
// O mesmo lançamento de nota aparece uma vez por filial na fonte e é mesclado
// pela chave composta — ver hierarchy.ChaveItemNota.
type DespesasUseCase struct {
	fonte repository.DespesaSource
	sf    singleflight.Group
}

// NewDespesasUseCase constrói o caso de uso.
func NewDespesasUseCase(fonte repository.DespesaSource) *DespesasUseCase {
	return &DespesasUseCase{fonte: fonte}
}

// GerarRelatorio valida os parâmetros, busca as filiais em paralelo e monta o
// relatório completo. Requisições idênticas concorrentes (mesmo schema,
// período, filiais e página) coalescem em uma única montagem.
func (uc *DespesasUseCase) GerarRelatorio(
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

	key := chaveRefresh("despesas", schema, inicio, fim, filiais,
		strconv.Itoa(req.Limit), strconv.Itoa(req.Offset))
	v, err, _ := uc.sf.Do(key, func() (any, error) {
		return uc.montar(ctx, schema, filiais, inicio, fim, req.PageRequest)
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.RelatorioHierarquicoDTO), nil
}

func (uc *DespesasUseCase) montar(
	ctx context.Context,
	schema string,
	filiais []int,
	inicio, fim time.Time,
	pagina dto.PageRequest,
) (*dto.RelatorioHierarquicoDTO, error) {
	raws, err := buscarTodasFiliais(ctx, filiais, func(ctx context.Context, filialID int) ([]hierarchy.RawRow, error) {
		return uc.fonte.ListarDespesas(ctx, schema, filialID, inicio, fim)
	})
	if err != nil {
		return nil, err
	}

	rows := hierarchy.NormalizeAll(raws)
	builder, err := hierarchy.NewBuilder(hierarchy.Config{
		Niveis:      2,
		MultiFilial: true,
		ChaveItem:   hierarchy.ChaveItemNota,
	})
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

// ListarDepartamentos opções do filtro de departamento (ordem alfabética —
// lista de opções, não ranking).
func (uc *DespesasUseCase) ListarDepartamentos(ctx context.Context, schema string) ([]string, error) {
	return uc.fonte.ListarDepartamentos(ctx, schema)
}
