package dto

import "github.com/shopspring/decimal"

// ContextoRequest um contexto do DRE comparativo: par nomeado
// (conjunto de filiais, período). O usuário configura de 2 a 4.
type ContextoRequest struct {
	Rotulo     string `json:"rotulo"`
	Filiais    []int  `json:"filiais"`
	DataInicio string `json:"data_inicio"`
	DataFim    string `json:"data_fim"`
}

// DREComparativoRequest corpo do POST do comparativo.
type DREComparativoRequest struct {
	Contextos []ContextoRequest `json:"contextos"`
}

// ContextoDTO identificação do contexto na resposta.
type ContextoDTO struct {
	ID     string `json:"id"`
	Rotulo string `json:"rotulo"`
}

// LinhaComparativaDTO uma linha do DRE comparativo.
//
// PontosPercentuais: linha que representa margem/percentual tem o delta em
// pontos percentuais (p.p.), nunca como percentual de percentual.
type LinhaComparativaDTO struct {
	Descricao         string                     `json:"descricao"`
	Tipo              string                     `json:"tipo"` // "receita" | "deducao" | "despesa" | "margem"
	Nivel             int                        `json:"nivel"`
	Valores           map[string]decimal.Decimal `json:"valores"` // por ID de contexto
	DeltaAbs          decimal.Decimal            `json:"delta_abs"`
	DeltaPct          decimal.Decimal            `json:"delta_pct"`
	PontosPercentuais bool                       `json:"pontos_percentuais"`
	Favoravel         bool                       `json:"favoravel"`
	Deducao           bool                       `json:"deducao"`
}

// DREComparativoDTO resposta do comparativo.
type DREComparativoDTO struct {
	Linhas    []LinhaComparativaDTO `json:"linhas"`
	Contextos []ContextoDTO         `json:"contextos"`
}
