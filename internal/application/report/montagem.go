package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/dto"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/hierarchy"
)

// montarArvoreDTO converte a árvore consolidada (já com rollup e ordenação)
// no contrato de resposta. Arredondamento a 2 casas acontece SÓ aqui, na
// fronteira — o motor soma sem truncar.
func montarArvoreDTO(t *hierarchy.Tree) []dto.NoDTO {
	raizes := t.Raizes()
	out := make([]dto.NoDTO, 0, len(raizes))
	for _, r := range raizes {
		out = append(out, montarNoDTO(r))
	}
	return out
}

func montarNoDTO(n *hierarchy.Node) dto.NoDTO {
	d := dto.NoDTO{
		ID:              n.ID,
		Nome:            n.Nome,
		Valor:           n.Valor.Round(2),
		Lucro:           n.Lucro.Round(2),
		Quantidade:      n.Quantidade,
		PercentualTotal: n.PercentualTotal.Round(2),
		Margem:          n.Margem.Round(2),
		PorFilial:       arredondarPorFilial(n.PorFilial),
	}
	for _, f := range n.Filhos() {
		d.Filhos = append(d.Filhos, montarNoDTO(f))
	}
	for _, it := range n.Itens {
		item := dto.ItemDTO{
			Descricao:  it.Descricao,
			Codigo:     it.Codigo,
			Valor:      it.Valor.Round(2),
			Lucro:      it.Lucro.Round(2),
			Quantidade: it.Quantidade,
			PorFilial:  arredondarPorFilial(it.PorFilial),
			NotaFiscal: it.NotaFiscal,
			Serie:      it.Serie,
			Observacao: it.Observacao,
			Motivo:     it.Motivo,
		}
		if it.Data != nil {
			item.Data = it.Data.Format("2006-01-02")
		}
		d.Itens = append(d.Itens, item)
	}
	return d
}

func arredondarPorFilial(m map[int]decimal.Decimal) map[int]decimal.Decimal {
	if len(m) == 0 {
		return nil
	}
	out := make(map[int]decimal.Decimal, len(m))
	for id, v := range m {
		out[id] = v.Round(2)
	}
	return out
}

// montarTotalizador resume o relatório INTEIRO — os números aqui nunca mudam
// com a página exibida.
func montarTotalizador(t *hierarchy.Tree) dto.TotalizadorDTO {
	registros := t.ItensCount
	media := decimal.Zero
	if registros > 0 {
		media = t.Totais.Valor.Div(decimal.NewFromInt(int64(registros))).Round(2)
	}
	return dto.TotalizadorDTO{
		Total:       t.Totais.Valor.Round(2),
		Registros:   registros,
		NosPorNivel: t.ContagemPorNivel(),
		Media:       media,
	}
}

// montarGrafico agregação leve e independente da árvore: linhas agrupadas
// pela data truncada no dia, somadas, em ordem cronológica. Linhas sem data
// ficam de fora da série (mas nunca da árvore).
func montarGrafico(rows []hierarchy.Row) []dto.PontoGraficoDTO {
	somas := make(map[string]decimal.Decimal)
	for _, r := range rows {
		if r.Data == nil {
			continue
		}
		dia := r.Data.Format("2006-01-02")
		somas[dia] = somas[dia].Add(r.Valor)
	}
	if len(somas) == 0 {
		return nil
	}
	dias := make([]string, 0, len(somas))
	for d := range somas {
		dias = append(dias, d)
	}
	sort.Strings(dias)
	serie := make([]dto.PontoGraficoDTO, 0, len(dias))
	for _, d := range dias {
		serie = append(serie, dto.PontoGraficoDTO{Data: d, Valor: somas[d].Round(2)})
	}
	return serie
}

// paginar corta o array de SAÍDA; busca e dobra já cobriram o período todo.
func paginar(nos []dto.NoDTO, p dto.PageRequest) ([]dto.NoDTO, dto.PageResponse) {
	meta := dto.PageResponse{Limit: p.Limit, Offset: p.Offset, Total: len(nos)}
	if p.Offset >= len(nos) {
		return []dto.NoDTO{}, meta
	}
	fim := p.Offset + p.Limit
	if fim > len(nos) {
		fim = len(nos)
	}
	return nos[p.Offset:fim], meta
}
