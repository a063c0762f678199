package report

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/dto"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/hierarchy"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/repository"
)

// Cortes da curva ABC por participação acumulada na receita:
// A até 80%, B até 95%, C o restante.
var (
	corteCurvaA = decimal.NewFromInt(80)
	corteCurvaB = decimal.NewFromInt(95)
)

// CurvaVendasUseCase vendas por curva ABC: consolida a receita por
// departamento e ranqueia os produtos por participação acumulada.
type CurvaVendasUseCase struct {
	fonte repository.VendaCurvaSource
	sf    singleflight.Group
}

// NewCurvaVendasUseCase constrói o caso de uso.
func NewCurvaVendasUseCase(fonte repository.VendaCurvaSource) *CurvaVendasUseCase {
	return &CurvaVendasUseCase{fonte: fonte}
}

// GerarRelatorio monta a árvore por departamento e a classificação ABC dos
// produtos. A curva se calcula sobre o conjunto INTEIRO de produtos do
// período; a paginação corta só a lista de saída.
func (uc *CurvaVendasUseCase) GerarRelatorio(
	ctx context.Context,
	schema string,
	filiaisPermitidas []int,
	req dto.RelatorioRequest,
) (*dto.CurvaVendasDTO, error) {
	inicio, fim, err := validarPeriodo(req.DataInicio, req.DataFim)
	if err != nil {
		return nil, err
	}
	filiais, err := validarFiliais(req.Filiais, filiaisPermitidas)
	if err != nil {
		return nil, err
	}
	req.DefaultPage()

	key := chaveRefresh("curva-vendas", schema, inicio, fim, filiais,
		strconv.Itoa(req.Limit), strconv.Itoa(req.Offset))
	v, err, _ := uc.sf.Do(key, func() (any, error) {
		return uc.montar(ctx, schema, filiais, inicio, fim, req.PageRequest)
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.CurvaVendasDTO), nil
}

func (uc *CurvaVendasUseCase) montar(
	ctx context.Context,
	schema string,
	filiais []int,
	inicio, fim time.Time,
	pagina dto.PageRequest,
) (*dto.CurvaVendasDTO, error) {
	raws, err := buscarTodasFiliais(ctx, filiais, func(ctx context.Context, filialID int) ([]hierarchy.RawRow, error) {
		return uc.fonte.ListarVendasPorProduto(ctx, schema, filialID, inicio, fim)
	})
	if err != nil {
		return nil, err
	}

	rows := hierarchy.NormalizeAll(raws)
	builder, err := hierarchy.NewBuilder(hierarchy.Config{
		Niveis:      1,
		MultiFilial: true,
		ChaveItem:   chaveProduto,
	})
	if err != nil {
		return nil, err
	}
	tree := builder.Build(rows)
	hierarchy.Rollup(tree)
	hierarchy.Sort(tree, hierarchy.PorValor)

	produtos := classificarCurva(tree)
	totalProdutos := len(produtos)
	produtos = paginarProdutos(produtos, pagina)

	return &dto.CurvaVendasDTO{
		Totalizador:   montarTotalizador(tree),
		Grafico:       montarGrafico(rows),
		Departamentos: montarArvoreDTO(tree),
		Produtos:      produtos,
		FilialIDs:     tree.FilialIDs(),
		Pagina:        dto.PageResponse{Limit: pagina.Limit, Offset: pagina.Offset, Total: totalProdutos},
	}, nil
}

// chaveProduto o mesmo produto vendido em filiais diferentes soma num item só.
func chaveProduto(r hierarchy.Row) string {
	return hierarchy.Fold(r.Codigo)
}

// classificarCurva ranqueia todos os itens da árvore por receita decrescente e
// marca a curva pela participação acumulada: A ≤ 80%, B ≤ 95%, C acima.
// O produto que cruza o corte ainda pertence à faixa (os cortes são inclusivos).
func classificarCurva(tree *hierarchy.Tree) []dto.ProdutoCurvaDTO {
	var itens []*hierarchy.Item
	for _, raiz := range tree.Raizes() {
		itens = append(itens, raiz.Itens...)
	}
	sort.SliceStable(itens, func(i, j int) bool {
		return itens[i].Valor.GreaterThan(itens[j].Valor)
	})

	receitaTotal := tree.Totais.Valor
	produtos := make([]dto.ProdutoCurvaDTO, 0, len(itens))
	acumulado := decimal.Zero
	for i, it := range itens {
		participacao := hierarchy.Percentual(it.Valor, receitaTotal)
		acumulado = acumulado.Add(participacao)

		curva := "C"
		switch {
		case acumulado.LessThanOrEqual(corteCurvaA) || i == 0:
			curva = "A"
		case acumulado.LessThanOrEqual(corteCurvaB):
			curva = "B"
		}

		produtos = append(produtos, dto.ProdutoCurvaDTO{
			Posicao:             i + 1,
			Codigo:              it.Codigo,
			Descricao:           it.Descricao,
			Quantidade:          it.Quantidade,
			Valor:               it.Valor.Round(2),
			Lucro:               it.Lucro.Round(2),
			Margem:              hierarchy.Percentual(it.Lucro, it.Valor).Round(2),
			PercentualReceita:   participacao.Round(2),
			PercentualAcumulado: acumulado.Round(2),
			Curva:               curva,
		})
	}
	return produtos
}

func paginarProdutos(produtos []dto.ProdutoCurvaDTO, p dto.PageRequest) []dto.ProdutoCurvaDTO {
	if p.Offset >= len(produtos) {
		return []dto.ProdutoCurvaDTO{}
	}
	fim := p.Offset + p.Limit
	if fim > len(produtos) {
		fim = len(produtos)
	}
	return produtos[p.Offset:fim]
}
