package hierarchy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// DeltaPercentual — convenção de baseline zero preservada tal qual
// ──────────────────────────────────────────────────────────────────────────────

func TestDeltaPercentual_CasoNormal(t *testing.T) {
	assert.True(t, DeltaPercentual(dec("150"), dec("100")).Equal(dec("50")))
}

func TestDeltaPercentual_BaselineZero(t *testing.T) {
	assert.True(t, DeltaPercentual(dec("50"), dec("0")).Equal(dec("100")),
		"v1 == 0 e v0 > 0 → 100, por convenção")
	assert.True(t, DeltaPercentual(dec("0"), dec("0")).IsZero(),
		"v1 == 0 e v0 == 0 → 0, por convenção")
}

func TestDeltaPercentual_BaselineNegativoUsaValorAbsoluto(t *testing.T) {
	// despesa que caiu de -100 para -80: delta = (-80 - -100)/100 * 100 = 20
	assert.True(t, DeltaPercentual(dec("-80"), dec("-100")).Equal(dec("20")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Compare — alinhamento por endereço entre árvores independentes
// ──────────────────────────────────────────────────────────────────────────────

func montarComparativo(t *testing.T, contextos map[string][]Row) []ArvoreContexto {
	t.Helper()
	b, err := NewBuilder(Config{Niveis: 2})
	require.NoError(t, err)

	// ordem fixa: ctx "atual" primeiro, "anterior" depois
	ordem := []string{"atual", "anterior"}
	var arvores []ArvoreContexto
	for _, id := range ordem {
		rows, ok := contextos[id]
		if !ok {
			continue
		}
		arvores = append(arvores, ArvoreContexto{
			Contexto: Contexto{ID: id, Rotulo: id},
			Tree:     b.Build(rows),
		})
	}
	return arvores
}

func acharLinha(t *testing.T, linhas []LinhaComparativa, nome string) LinhaComparativa {
	t.Helper()
	for _, l := range linhas {
		if l.Nome == nome {
			return l
		}
	}
	t.Fatalf("linha %q não encontrada no comparativo", nome)
	return LinhaComparativa{}
}

func TestCompare_AlinhaNosPorEnderecoEComputaDeltas(t *testing.T) {
	arvores := montarComparativo(t, map[string][]Row{
		"atual": {
			linha([]string{"Despesas", "Energia"}, "150", "0"),
			linha([]string{"Despesas", "Água"}, "30", "0"),
		},
		"anterior": {
			linha([]string{"Despesas", "Energia"}, "100", "0"),
			linha([]string{"Despesas", "Água"}, "40", "0"),
		},
	})
	linhas := Compare(arvores)

	energia := acharLinha(t, linhas, "Energia")
	assert.True(t, energia.Valores["atual"].Equal(dec("150")))
	assert.True(t, energia.Valores["anterior"].Equal(dec("100")))
	assert.True(t, energia.DeltaAbs.Equal(dec("50")), "delta absoluto = atual − anterior")
	assert.True(t, energia.DeltaPct.Equal(dec("50")))
	assert.Equal(t, 1, energia.Nivel)
	assert.Equal(t, []string{"Despesas", "Energia"}, energia.Endereco)

	agua := acharLinha(t, linhas, "Água")
	assert.True(t, agua.DeltaAbs.Equal(dec("-10")))
}

// Nó presente em só um contexto: o outro contribui zero e a convenção de
// baseline zero se aplica ao delta percentual.
func TestCompare_NoAusenteEmUmContextoContribuiZero(t *testing.T) {
	arvores := montarComparativo(t, map[string][]Row{
		"atual": {
			linha([]string{"Despesas", "Energia"}, "100", "0"),
			linha([]string{"Despesas", "Frete"}, "80", "0"),
		},
		"anterior": {
			linha([]string{"Despesas", "Energia"}, "90", "0"),
		},
	})
	linhas := Compare(arvores)

	frete := acharLinha(t, linhas, "Frete")
	assert.True(t, frete.Valores["anterior"].IsZero(), "contexto sem o nó contribui zero")
	assert.True(t, frete.DeltaAbs.Equal(dec("80")))
	assert.True(t, frete.DeltaPct.Equal(dec("100")), "baseline zero com v0 > 0 → 100")
}

// A ordem das linhas segue o percurso em profundidade do primeiro contexto;
// endereços exclusivos dos demais entram depois, sem sumir.
func TestCompare_UniaoDeEnderecosPreservaOrdem(t *testing.T) {
	arvores := montarComparativo(t, map[string][]Row{
		"atual": {
			linha([]string{"Receita", "Loja"}, "500", "0"),
		},
		"anterior": {
			linha([]string{"Receita", "Loja"}, "450", "0"),
			linha([]string{"Receita", "Delivery"}, "60", "0"),
		},
	})
	linhas := Compare(arvores)

	require.Len(t, linhas, 3, "Receita, Loja e Delivery (união dos dois contextos)")
	assert.Equal(t, "Receita", linhas[0].Nome)
	assert.Equal(t, "Loja", linhas[1].Nome)
	assert.Equal(t, "Delivery", linhas[2].Nome, "endereço exclusivo do segundo contexto entra no fim do nível")
}

// ──────────────────────────────────────────────────────────────────────────────
// Classificação de natureza e direção de variância
// ──────────────────────────────────────────────────────────────────────────────

func TestClassificaNatureza_TagExplicitaVenceHeuristica(t *testing.T) {
	receita := NaturezaReceita
	assert.Equal(t, NaturezaReceita, ClassificaNatureza("Despesa financeira", &receita),
		"classificação explícita sempre vence a heurística")
}

func TestClassificaNatureza_FallbackPorPalavraChave(t *testing.T) {
	assert.Equal(t, NaturezaDespesa, ClassificaNatureza("DESPESAS OPERACIONAIS", nil))
	assert.Equal(t, NaturezaDespesa, ClassificaNatureza("CMV", nil))
	assert.Equal(t, NaturezaReceita, ClassificaNatureza("Receita bruta", nil))
}

func TestFavoravel_DirecaoPorNatureza(t *testing.T) {
	assert.True(t, Favoravel(dec("10"), NaturezaReceita), "receita subindo é favorável")
	assert.False(t, Favoravel(dec("10"), NaturezaDespesa), "despesa subindo é desfavorável")
	assert.True(t, Favoravel(dec("-10"), NaturezaDespesa), "despesa caindo é favorável")
	assert.False(t, Favoravel(decimal.NewFromInt(-10), NaturezaReceita))
}
