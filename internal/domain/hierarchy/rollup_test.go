package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Cenário de ponta a ponta da consolidação: dobra → rollup → ordenação.
// Três linhas, dois departamentos; margens e percentuais conferidos contra
// valores calculados à mão.
func TestRollup_CenarioCompleto(t *testing.T) {
	rows := []Row{
		linha([]string{"A", "A1", "A1a"}, "100", "20"),
		linha([]string{"A", "A1", "A1a"}, "50", "5"),
		linha([]string{"B", "B1", "B1a"}, "30", "3"),
	}
	tree := montar(t, Config{Niveis: 3}, rows)
	Rollup(tree)
	Sort(tree, PorValor)

	assert.True(t, tree.Totais.Valor.Equal(dec("180")), "grand total")

	raizes := tree.Raizes()
	require.Len(t, raizes, 2)
	assert.Equal(t, "A", raizes[0].Nome, "maior valor primeiro")
	assert.Equal(t, "B", raizes[1].Nome)

	a, b := raizes[0], raizes[1]
	assert.True(t, a.Valor.Equal(dec("150")))
	assert.True(t, a.Margem.Round(2).Equal(dec("16.67")), "margem de A = 25/150")
	assert.True(t, b.Valor.Equal(dec("30")))
	assert.True(t, b.Margem.Round(2).Equal(dec("10")), "margem de B = 3/30")

	assert.True(t, a.PercentualTotal.Round(2).Equal(dec("83.33")), "participação de A no total")
	assert.True(t, b.PercentualTotal.Round(2).Equal(dec("16.67")))
}

// Denominador zero nunca pode virar NaN/Inf: percentual e margem valem 0.
func TestRollup_DivisaoPorZeroResultaZero(t *testing.T) {
	rows := []Row{
		linha([]string{"Vazio"}, "0", "0"),
	}
	tree := montar(t, Config{Niveis: 1}, rows)
	Rollup(tree)

	n := tree.Raizes()[0]
	assert.True(t, n.PercentualTotal.IsZero(), "percentual com grand total zero deve ser 0")
	assert.True(t, n.Margem.IsZero(), "margem com valor zero deve ser 0")
}

// Nó com valor zero dentro de uma árvore com total positivo: percentual 0,
// margem 0, sem contaminar os vizinhos.
func TestRollup_NoZeradoEmArvoreComTotal(t *testing.T) {
	rows := []Row{
		linha([]string{"Cheio"}, "100", "40"),
		linha([]string{"Zerado"}, "0", "0"),
	}
	tree := montar(t, Config{Niveis: 1}, rows)
	Rollup(tree)

	cheio := acharRaiz(t, tree, "Cheio")
	zerado := acharRaiz(t, tree, "Zerado")
	assert.True(t, cheio.PercentualTotal.Equal(dec("100")))
	assert.True(t, cheio.Margem.Equal(dec("40")))
	assert.True(t, zerado.PercentualTotal.IsZero())
	assert.True(t, zerado.Margem.IsZero())
}

// O rollup não pode alterar as somas cruas do builder.
func TestRollup_NaoAlteraSomasCruas(t *testing.T) {
	rows := []Row{
		linha([]string{"A", "A1"}, "70", "7"),
		linha([]string{"A", "A2"}, "30", "3"),
	}
	tree := montar(t, Config{Niveis: 2}, rows)
	antes := tree.Totais.Valor

	Rollup(tree)

	assert.True(t, tree.Totais.Valor.Equal(antes))
	assert.True(t, acharRaiz(t, tree, "A").Valor.Equal(dec("100")))
}
