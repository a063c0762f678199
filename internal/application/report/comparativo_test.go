package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/dto"
	domain "github.com/Devinga-com-br/bi-saas-sub000/internal/domain"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/hierarchy"
)

// fonteDREFake indexa por mês de início para simular períodos diferentes.
type fonteDREFake struct {
	porMes map[string][]hierarchy.RawRow
}

func (f *fonteDREFake) ListarLinhasDRE(_ context.Context, _ string, _ int, inicio, _ time.Time) ([]hierarchy.RawRow, error) {
	return f.porMes[inicio.Format("2006-01")], nil
}

func rawDRE(grupo, conta, valor string) hierarchy.RawRow {
	return hierarchy.RawRow{Niveis: []any{grupo, conta}, Descricao: conta, FilialID: 1, Valor: valor}
}

func reqComparativo() dto.DREComparativoRequest {
	return dto.DREComparativoRequest{Contextos: []dto.ContextoRequest{
		{Rotulo: "Março", Filiais: []int{1}, DataInicio: "2026-03-01", DataFim: "2026-03-31"},
		{Rotulo: "Fevereiro", Filiais: []int{1}, DataInicio: "2026-02-01", DataFim: "2026-02-28"},
	}}
}

func TestComparativo_ExigeDeDoisAQuatroContextos(t *testing.T) {
	uc := NewDREComparativoUseCase(&fonteDREFake{})

	_, err := uc.Comparar(context.Background(), "tenant_001", nil, dto.DREComparativoRequest{
		Contextos: []dto.ContextoRequest{{Filiais: []int{1}, DataInicio: "2026-03-01", DataFim: "2026-03-31"}},
	})
	assert.ErrorIs(t, err, domain.ErrParametroInvalido, "um contexto só não compara nada")
}

func TestComparativo_AlinhaContextosEClassificaVariancia(t *testing.T) {
	fonte := &fonteDREFake{porMes: map[string][]hierarchy.RawRow{
		"2026-03": {
			rawDRE("RECEITA BRUTA", "Vendas", "1000"),
			rawDRE("CMV", "Custo das mercadorias", "600"),
			rawDRE("DESPESAS", "Energia elétrica", "150"),
		},
		"2026-02": {
			rawDRE("RECEITA BRUTA", "Vendas", "800"),
			rawDRE("CMV", "Custo das mercadorias", "400"),
			rawDRE("DESPESAS", "Energia elétrica", "100"),
		},
	}}
	uc := NewDREComparativoUseCase(fonte)

	rel, err := uc.Comparar(context.Background(), "tenant_001", nil, reqComparativo())
	require.NoError(t, err)

	require.Len(t, rel.Contextos, 2)
	assert.Equal(t, "Março", rel.Contextos[0].Rotulo)
	ctx0, ctx1 := rel.Contextos[0].ID, rel.Contextos[1].ID

	acharLinha := func(descricao string) dto.LinhaComparativaDTO {
		for _, l := range rel.Linhas {
			if l.Descricao == descricao {
				return l
			}
		}
		t.Fatalf("linha %q não encontrada", descricao)
		return dto.LinhaComparativaDTO{}
	}

	receita := acharLinha("RECEITA BRUTA")
	assert.Equal(t, "receita", receita.Tipo)
	assert.True(t, receita.Valores[ctx0].Equal(dec("1000")))
	assert.True(t, receita.Valores[ctx1].Equal(dec("800")))
	assert.True(t, receita.DeltaAbs.Equal(dec("200")))
	assert.True(t, receita.DeltaPct.Equal(dec("25")))
	assert.True(t, receita.Favoravel, "receita subindo é favorável")

	cmv := acharLinha("CMV")
	assert.Equal(t, "despesa", cmv.Tipo, "CMV tem natureza de despesa pela tabela explícita")
	assert.True(t, cmv.DeltaAbs.Equal(dec("200")))
	assert.False(t, cmv.Favoravel, "custo subindo é desfavorável")

	energia := acharLinha("Energia elétrica")
	assert.Equal(t, 1, energia.Nivel, "conta fica um nível abaixo do grupo")
	assert.True(t, energia.DeltaPct.Equal(dec("50")))
	assert.False(t, energia.Favoravel)
}

// A linha sintética de margem bruta compara em PONTOS PERCENTUAIS, nunca
// percentual de percentual.
func TestComparativo_MargemBrutaEmPontosPercentuais(t *testing.T) {
	fonte := &fonteDREFake{porMes: map[string][]hierarchy.RawRow{
		"2026-03": {
			rawDRE("RECEITA BRUTA", "Vendas", "1000"),
			rawDRE("CMV", "Custo", "600"), // margem 40%
		},
		"2026-02": {
			rawDRE("RECEITA BRUTA", "Vendas", "800"),
			rawDRE("CMV", "Custo", "400"), // margem 50%
		},
	}}
	uc := NewDREComparativoUseCase(fonte)

	rel, err := uc.Comparar(context.Background(), "tenant_001", nil, reqComparativo())
	require.NoError(t, err)

	margem := rel.Linhas[len(rel.Linhas)-1]
	assert.Equal(t, "margem", margem.Tipo)
	assert.True(t, margem.PontosPercentuais, "delta de margem é em p.p.")
	assert.True(t, margem.Valores[rel.Contextos[0].ID].Equal(dec("40")))
	assert.True(t, margem.Valores[rel.Contextos[1].ID].Equal(dec("50")))
	assert.True(t, margem.DeltaAbs.Equal(dec("-10")), "40% − 50% = −10 p.p.")
	assert.True(t, margem.DeltaPct.Equal(dec("-10")), "em p.p. o delta percentual É o absoluto")
	assert.False(t, margem.Favoravel, "margem caindo é desfavorável")
}

// Conta que só existe em um contexto não some: o outro lado contribui zero.
func TestComparativo_ContaExclusivaDeUmContexto(t *testing.T) {
	fonte := &fonteDREFake{porMes: map[string][]hierarchy.RawRow{
		"2026-03": {
			rawDRE("RECEITA BRUTA", "Vendas", "1000"),
			rawDRE("DESPESAS", "Frete", "80"),
		},
		"2026-02": {
			rawDRE("RECEITA BRUTA", "Vendas", "900"),
		},
	}}
	uc := NewDREComparativoUseCase(fonte)

	rel, err := uc.Comparar(context.Background(), "tenant_001", nil, reqComparativo())
	require.NoError(t, err)

	var frete *dto.LinhaComparativaDTO
	for i := range rel.Linhas {
		if rel.Linhas[i].Descricao == "Frete" {
			frete = &rel.Linhas[i]
		}
	}
	require.NotNil(t, frete, "conta exclusiva do primeiro contexto aparece na união")
	assert.True(t, frete.Valores[rel.Contextos[1].ID].IsZero())
	assert.True(t, frete.DeltaPct.Equal(dec("100")), "convenção de baseline zero")
}
