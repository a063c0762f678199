package dto

import "github.com/shopspring/decimal"

// MetaFilialDTO acompanhamento de meta consolidado por filial.
// Atingimento = 100 × realizado / meta, com guarda de divisão por zero.
type MetaFilialDTO struct {
	FilialID    int             `json:"filial_id"`
	Meta        decimal.Decimal `json:"meta"`
	Realizado   decimal.Decimal `json:"realizado"`
	Atingimento decimal.Decimal `json:"atingimento"`
	Favoravel   bool            `json:"favoravel"`
}

// MetaSerieDTO meta × realizado em um dia (todas as filiais somadas).
type MetaSerieDTO struct {
	Data      string          `json:"data"`
	Meta      decimal.Decimal `json:"meta"`
	Realizado decimal.Decimal `json:"realizado"`
}

// MetasDTO resposta do acompanhamento de metas.
type MetasDTO struct {
	Filiais        []MetaFilialDTO `json:"filiais"`
	Serie          []MetaSerieDTO  `json:"serie"`
	TotalMeta      decimal.Decimal `json:"total_meta"`
	TotalRealizado decimal.Decimal `json:"total_realizado"`
	Atingimento    decimal.Decimal `json:"atingimento"`
}
