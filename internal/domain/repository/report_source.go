package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/hierarchy"
)

// Fontes de dados dos relatórios. Cada fonte devolve linhas planas cruas para
// uma tupla (schema do tenant, filial, período); o motor de consolidação não
// sabe nem precisa saber se por trás há SQL, RPC ou API. As linhas chegam como
// hierarchy.RawRow porque as funções legadas por schema não garantem tipo
// (numérico pode vir string) — o RowNormalizer é a fronteira obrigatória.
//
// Todas as implementações são read-only.

// DespesaSource fonte do relatório de despesas (DRE analítico).
// Níveis da RawRow: [departamento, tipo de despesa]; o lançamento é o item.
type DespesaSource interface {
	ListarDespesas(ctx context.Context, schema string, filialID int, inicio, fim time.Time) ([]hierarchy.RawRow, error)

	// ListarDepartamentos lista de opções de filtro, ordem alfabética.
	ListarDepartamentos(ctx context.Context, schema string) ([]string, error)
}

// DRESource fonte do DRE comparativo.
// Níveis da RawRow: [grupo do DRE, conta]; ex. ["DESPESAS", "Energia elétrica"].
type DRESource interface {
	ListarLinhasDRE(ctx context.Context, schema string, filialID int, inicio, fim time.Time) ([]hierarchy.RawRow, error)
}

// PerdaSource fonte do relatório de perdas.
// Níveis da RawRow: [departamento nível 3, nível 2, nível 1]; o produto é o item.
type PerdaSource interface {
	ListarPerdas(ctx context.Context, schema string, filialID int, inicio, fim time.Time) ([]hierarchy.RawRow, error)
}

// VendaCurvaSource fonte das vendas por curva ABC.
// Níveis da RawRow: [departamento]; o produto é o item (valor = receita,
// lucro = receita − custo).
type VendaCurvaSource interface {
	ListarVendasPorProduto(ctx context.Context, schema string, filialID int, inicio, fim time.Time) ([]hierarchy.RawRow, error)
}

// RupturaSource fonte do relatório de ruptura de estoque (foto do dia, sem
// período). Níveis da RawRow: [departamento]; o produto em ruptura é o item.
type RupturaSource interface {
	ListarRupturas(ctx context.Context, schema string, filialID int) ([]hierarchy.RawRow, error)
}

// MetaDiariaRow meta e realizado de uma filial em um dia.
// Fonte tipada (as tabelas de metas são nossas, o tipo é garantido).
type MetaDiariaRow struct {
	FilialID  int
	Data      time.Time
	Meta      decimal.Decimal
	Realizado decimal.Decimal
}

// MetaSource fonte do acompanhamento de metas.
type MetaSource interface {
	ListarMetasDiarias(ctx context.Context, schema string, filialID int, inicio, fim time.Time) ([]MetaDiariaRow, error)
}
