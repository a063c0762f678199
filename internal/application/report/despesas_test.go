package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/dto"
	domain "github.com/Devinga-com-br/bi-saas-sub000/internal/domain"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/hierarchy"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fonteDespesasFake devolve linhas fixas por filial; filial em falha simula
// indisponibilidade da fonte.
type fonteDespesasFake struct {
	porFilial map[int][]hierarchy.RawRow
	falhas    map[int]error
}

func (f *fonteDespesasFake) ListarDespesas(_ context.Context, _ string, filialID int, _, _ time.Time) ([]hierarchy.RawRow, error) {
	if err := f.falhas[filialID]; err != nil {
		return nil, err
	}
	return f.porFilial[filialID], nil
}

func (f *fonteDespesasFake) ListarDepartamentos(context.Context, string) ([]string, error) {
	return []string{"Administrativo", "Comercial"}, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func rawDespesa(filial int, depto, tipo, descricao, valor, dia string) hierarchy.RawRow {
	return hierarchy.RawRow{
		Niveis:    []any{depto, tipo},
		Descricao: descricao,
		FilialID:  filial,
		Valor:     valor, // numérico como string, como vem da fonte legada
		Data:      dia,
	}
}

func reqPadrao() dto.RelatorioRequest {
	return dto.RelatorioRequest{
		DataInicio: "2026-03-01",
		DataFim:    "2026-03-31",
		Filiais:    "1,2",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Caminho feliz
// ──────────────────────────────────────────────────────────────────────────────

func TestDespesas_MontaRelatorioConsolidado(t *testing.T) {
	fonte := &fonteDespesasFake{porFilial: map[int][]hierarchy.RawRow{
		1: {
			rawDespesa(1, "Administrativo", "Energia", "Conta de luz loja 1", "300", "2026-03-05"),
			rawDespesa(1, "Comercial", "Marketing", "Panfleto", "100", "2026-03-10"),
		},
		2: {
			rawDespesa(2, "Administrativo", "Energia", "Conta de luz loja 2", "200", "2026-03-05"),
		},
	}}
	uc := NewDespesasUseCase(fonte)

	rel, err := uc.GerarRelatorio(context.Background(), "tenant_001", nil, reqPadrao())
	require.NoError(t, err)

	assert.True(t, rel.Totalizador.Total.Equal(dec("600")), "grand total soma as duas filiais")
	assert.Equal(t, 3, rel.Totalizador.Registros)
	assert.True(t, rel.Totalizador.Media.Equal(dec("200")))
	assert.Equal(t, []int{1, 2}, rel.FilialIDs)

	require.Len(t, rel.Departamentos, 2)
	assert.Equal(t, "Administrativo", rel.Departamentos[0].Nome, "maior valor primeiro")
	assert.True(t, rel.Departamentos[0].Valor.Equal(dec("500")))
	assert.True(t, rel.Departamentos[0].PorFilial[1].Equal(dec("300")))
	assert.True(t, rel.Departamentos[0].PorFilial[2].Equal(dec("200")))

	require.Len(t, rel.Grafico, 2, "série agrupada por dia")
	assert.Equal(t, "2026-03-05", rel.Grafico[0].Data)
	assert.True(t, rel.Grafico[0].Valor.Equal(dec("500")))
}

// Percentuais derivados nunca podem sair NaN: período sem movimento devolve
// árvore vazia com totais zero — e isso NÃO é erro.
func TestDespesas_PeriodoSemMovimentoNaoEhErro(t *testing.T) {
	uc := NewDespesasUseCase(&fonteDespesasFake{})

	rel, err := uc.GerarRelatorio(context.Background(), "tenant_001", nil, reqPadrao())
	require.NoError(t, err, "período vazio é árvore vazia, não erro")
	assert.True(t, rel.Totalizador.Total.IsZero())
	assert.True(t, rel.Totalizador.Media.IsZero(), "média com zero registros vale zero, nunca NaN")
	assert.Empty(t, rel.Departamentos)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validação de parâmetros
// ──────────────────────────────────────────────────────────────────────────────

func TestDespesas_ValidaPeriodo(t *testing.T) {
	uc := NewDespesasUseCase(&fonteDespesasFake{})

	req := reqPadrao()
	req.DataInicio = ""
	_, err := uc.GerarRelatorio(context.Background(), "tenant_001", nil, req)
	assert.ErrorIs(t, err, domain.ErrPeriodoInvalido, "data obrigatória, sem default silencioso")

	req = reqPadrao()
	req.DataInicio, req.DataFim = "2026-04-01", "2026-03-01"
	_, err = uc.GerarRelatorio(context.Background(), "tenant_001", nil, req)
	assert.ErrorIs(t, err, domain.ErrPeriodoInvalido, "início depois do fim")
}

func TestDespesas_ValidaFiliais(t *testing.T) {
	uc := NewDespesasUseCase(&fonteDespesasFake{})

	req := reqPadrao()
	req.Filiais = ""
	_, err := uc.GerarRelatorio(context.Background(), "tenant_001", nil, req)
	assert.ErrorIs(t, err, domain.ErrFilialObrigatoria)

	req = reqPadrao()
	req.Filiais = "1,9"
	_, err = uc.GerarRelatorio(context.Background(), "tenant_001", []int{1, 2}, req)
	assert.ErrorIs(t, err, domain.ErrFilialNaoPermitida, "filial fora do conjunto permitido ao usuário")
}

// ──────────────────────────────────────────────────────────────────────────────
// Falha de fonte: abortar tudo, nunca árvore parcial
// ──────────────────────────────────────────────────────────────────────────────

func TestDespesas_FalhaDeUmaFilialAbortaORelatorio(t *testing.T) {
	fonte := &fonteDespesasFake{
		porFilial: map[int][]hierarchy.RawRow{
			1: {rawDespesa(1, "Administrativo", "Energia", "Conta", "300", "2026-03-05")},
		},
		falhas: map[int]error{2: errors.New("timeout na consulta")},
	}
	uc := NewDespesasUseCase(fonte)

	rel, err := uc.GerarRelatorio(context.Background(), "tenant_001", nil, reqPadrao())
	require.Error(t, err, "uma filial falhou: o agregado inteiro falha")
	assert.Nil(t, rel, "nunca entregar árvore parcial sem a contribuição de uma filial")
	assert.ErrorIs(t, err, domain.ErrFonteRelatorio)
	assert.Contains(t, err.Error(), "filial 2", "o erro identifica a filial que falhou")
}

// ──────────────────────────────────────────────────────────────────────────────
// Paginação só corta a saída
// ──────────────────────────────────────────────────────────────────────────────

func TestDespesas_PaginacaoNaoAfetaTotais(t *testing.T) {
	fonte := &fonteDespesasFake{porFilial: map[int][]hierarchy.RawRow{
		1: {
			rawDespesa(1, "Dep A", "T", "a", "400", "2026-03-01"),
			rawDespesa(1, "Dep B", "T", "b", "300", "2026-03-01"),
			rawDespesa(1, "Dep C", "T", "c", "200", "2026-03-01"),
		},
	}}
	uc := NewDespesasUseCase(fonte)

	req := reqPadrao()
	req.Filiais = "1"
	req.Limit, req.Offset = 1, 1
	rel, err := uc.GerarRelatorio(context.Background(), "tenant_001", nil, req)
	require.NoError(t, err)

	require.Len(t, rel.Departamentos, 1, "a página exibe só um departamento")
	assert.Equal(t, "Dep B", rel.Departamentos[0].Nome)
	assert.True(t, rel.Totalizador.Total.Equal(dec("900")),
		"o totalizador cobre o conjunto inteiro, não a página")
	assert.Equal(t, 3, rel.Pagina.Total)
}
