package dto

import "github.com/shopspring/decimal"

// RelatorioRequest parâmetros comuns dos relatórios por período.
// data_inicio/data_fim em YYYY-MM-DD; filiais é CSV de IDs ("1,2,5").
// Seletores obrigatórios nunca ganham default silencioso: faltou, é 400.
type RelatorioRequest struct {
	DataInicio string `query:"data_inicio"`
	DataFim    string `query:"data_fim"`
	Filiais    string `query:"filiais"`
	PageRequest
}

// TotalizadorDTO resumo do relatório inteiro (independe da página exibida).
type TotalizadorDTO struct {
	Total       decimal.Decimal `json:"total"`
	Registros   int             `json:"registros"`
	NosPorNivel []int           `json:"nos_por_nivel"`
	Media       decimal.Decimal `json:"media"`
}

// PontoGraficoDTO um balde de data do gráfico de evolução (agregação leve,
// independente da árvore).
type PontoGraficoDTO struct {
	Data  string          `json:"data"`
	Valor decimal.Decimal `json:"valor"`
}

// ItemDTO registro terminal exibido na última camada da árvore.
type ItemDTO struct {
	Descricao  string                  `json:"descricao"`
	Codigo     string                  `json:"codigo,omitempty"`
	Valor      decimal.Decimal         `json:"valor"`
	Lucro      decimal.Decimal         `json:"lucro"`
	Quantidade decimal.Decimal         `json:"quantidade"`
	PorFilial  map[int]decimal.Decimal `json:"por_filial,omitempty"`
	Data       string                  `json:"data,omitempty"`
	NotaFiscal string                  `json:"nota_fiscal,omitempty"`
	Serie      string                  `json:"serie,omitempty"`
	Observacao string                  `json:"observacao,omitempty"`
	Motivo     string                  `json:"motivo,omitempty"`
}

// NoDTO um nível da árvore consolidada. ID é estável por nome e serve só
// para exibição/chave de colapso no front.
type NoDTO struct {
	ID              uint32                  `json:"id"`
	Nome            string                  `json:"nome"`
	Valor           decimal.Decimal         `json:"valor"`
	Lucro           decimal.Decimal         `json:"lucro"`
	Quantidade      decimal.Decimal         `json:"quantidade"`
	PercentualTotal decimal.Decimal         `json:"percentual_total"`
	Margem          decimal.Decimal         `json:"margem"`
	PorFilial       map[int]decimal.Decimal `json:"por_filial,omitempty"`
	Filhos          []NoDTO                 `json:"filhos,omitempty"`
	Itens           []ItemDTO               `json:"itens,omitempty"`
}

// RelatorioHierarquicoDTO resposta dos relatórios em árvore (despesas, perdas,
// rupturas): totalizador, série do gráfico, árvore ordenada e filiais presentes.
type RelatorioHierarquicoDTO struct {
	Totalizador   TotalizadorDTO    `json:"totalizador"`
	Grafico       []PontoGraficoDTO `json:"grafico"`
	Departamentos []NoDTO           `json:"departamentos"`
	FilialIDs     []int             `json:"filial_ids"`
	Pagina        PageResponse      `json:"pagina"`
}

// ProdutoCurvaDTO um produto ranqueado na curva ABC.
type ProdutoCurvaDTO struct {
	Posicao             int             `json:"posicao"`
	Codigo              string          `json:"codigo"`
	Descricao           string          `json:"descricao"`
	Quantidade          decimal.Decimal `json:"quantidade"`
	Valor               decimal.Decimal `json:"valor"`
	Lucro               decimal.Decimal `json:"lucro"`
	Margem              decimal.Decimal `json:"margem"`
	PercentualReceita   decimal.Decimal `json:"percentual_receita"`
	PercentualAcumulado decimal.Decimal `json:"percentual_acumulado"`
	Curva               string          `json:"curva"` // "A" | "B" | "C"
}

// CurvaVendasDTO resposta das vendas por curva ABC.
type CurvaVendasDTO struct {
	Totalizador   TotalizadorDTO    `json:"totalizador"`
	Grafico       []PontoGraficoDTO `json:"grafico"`
	Departamentos []NoDTO           `json:"departamentos"`
	Produtos      []ProdutoCurvaDTO `json:"produtos"`
	FilialIDs     []int             `json:"filial_ids"`
	Pagina        PageResponse      `json:"pagina"`
}

// FilialDTO opção de filtro de filial.
type FilialDTO struct {
	ID     int    `json:"id"`
	Nome   string `json:"nome"`
	Cidade string `json:"cidade,omitempty"`
}
