package hierarchy

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func linha(niveis []string, valor, lucro string) Row {
	return Row{Niveis: niveis, Valor: dec(valor), Lucro: dec(lucro), Quantidade: decimal.NewFromInt(1)}
}

func montar(t *testing.T, cfg Config, rows []Row) *Tree {
	t.Helper()
	b, err := NewBuilder(cfg)
	require.NoError(t, err, "config de builder deve ser válida")
	return b.Build(rows)
}

func acharRaiz(t *testing.T, tree *Tree, nome string) *Node {
	t.Helper()
	for _, r := range tree.Raizes() {
		if r.Nome == nome {
			return r
		}
	}
	t.Fatalf("raiz %q não encontrada", nome)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Conservação e perda de dados
// ──────────────────────────────────────────────────────────────────────────────

// O total de cada nível deve bater com a soma dos filhos e com o grand total,
// para toda métrica acumulada.
func TestBuild_ConservacaoDeTotaisEmTodosOsNiveis(t *testing.T) {
	rows := []Row{
		linha([]string{"Mercearia", "Doces", "Bala"}, "100", "20"),
		linha([]string{"Mercearia", "Doces", "Chocolate"}, "50", "5"),
		linha([]string{"Mercearia", "Grãos", "Arroz"}, "30", "3"),
		linha([]string{"Açougue", "Bovinos", "Picanha"}, "70", "14"),
	}
	tree := montar(t, Config{Niveis: 3}, rows)

	assert.True(t, tree.Totais.Valor.Equal(dec("250")), "grand total de valor")
	assert.True(t, tree.Totais.Lucro.Equal(dec("42")), "grand total de lucro")

	// topo == grand total
	var somaTopo decimal.Decimal
	for _, r := range tree.Raizes() {
		somaTopo = somaTopo.Add(r.Valor)
	}
	assert.True(t, somaTopo.Equal(tree.Totais.Valor), "soma do topo deve igualar o grand total")

	// cada nó == soma dos filhos (ou dos itens, na base)
	var confere func(n *Node)
	confere = func(n *Node) {
		filhos := n.Filhos()
		if len(filhos) == 0 {
			var soma decimal.Decimal
			for _, it := range n.Itens {
				soma = soma.Add(it.Valor)
			}
			assert.True(t, soma.Equal(n.Valor), "nó %s: soma dos itens deve igualar o total do nó", n.Nome)
			return
		}
		var soma decimal.Decimal
		for _, f := range filhos {
			soma = soma.Add(f.Valor)
			confere(f)
		}
		assert.True(t, soma.Equal(n.Valor), "nó %s: soma dos filhos deve igualar o total do nó", n.Nome)
	}
	for _, r := range tree.Raizes() {
		confere(r)
	}
}

// Nenhuma linha pode se perder: itens + mesclas == linhas de entrada.
func TestBuild_NenhumaLinhaPerdida(t *testing.T) {
	rows := []Row{
		linha([]string{"A", "A1"}, "10", "1"),
		linha([]string{"A", "A2"}, "20", "2"),
		linha([]string{"B", "B1"}, "30", "3"),
	}
	tree := montar(t, Config{Niveis: 2}, rows)

	assert.Equal(t, 3, tree.ItensCount, "todas as linhas devem virar itens")
	assert.Equal(t, 0, tree.MescladosCount, "sem chave de dedup não há mescla")
	assert.Equal(t, len(rows), tree.ItensCount+tree.MescladosCount)
}

// Linha com departamento nulo entra no balde sentinela, nunca é descartada,
// e o invariante de conservação continua valendo.
func TestBuild_LinhaSemNivelVaiParaSemClassificacao(t *testing.T) {
	rows := []Row{
		linha([]string{"Mercearia", "Doces"}, "100", "10"),
		linha([]string{"", "Doces"}, "40", "4"),
		linha([]string{"Mercearia", ""}, "60", "6"),
	}
	tree := montar(t, Config{Niveis: 2}, rows)

	semClasse := acharRaiz(t, tree, SemClassificacao)
	assert.True(t, semClasse.Valor.Equal(dec("40")), "linha sem nível 1 soma no balde sentinela")

	mercearia := acharRaiz(t, tree, "Mercearia")
	filhos := mercearia.Filhos()
	require.Len(t, filhos, 2, "Doces + balde sentinela no nível 2")

	assert.True(t, tree.Totais.Valor.Equal(dec("200")), "conservação vale mesmo com baldes sentinela")
	assert.Equal(t, 3, tree.ItensCount+tree.MescladosCount, "nenhuma linha se perde")
}

// ──────────────────────────────────────────────────────────────────────────────
// Dedup de itens terminais (relatório de despesas)
// ──────────────────────────────────────────────────────────────────────────────

// O mesmo lançamento de nota vindo de filiais diferentes mescla no item em vez
// de duplicar; o valor soma e o mapa por filial guarda a contribuição de cada uma.
func TestBuild_MesclaLancamentoRepetidoPorFilial(t *testing.T) {
	data := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	base := Row{
		Niveis:     []string{"Administrativo", "Energia"},
		Descricao:  "Conta de luz",
		NotaFiscal: "NF-123",
		Data:       &data,
		Valor:      dec("500"),
	}
	f1, f2 := base, base
	f1.FilialID = 1
	f2.FilialID = 2

	tree := montar(t, Config{Niveis: 2, MultiFilial: true, ChaveItem: ChaveItemNota}, []Row{f1, f2})

	adm := acharRaiz(t, tree, "Administrativo")
	energia := adm.Filhos()[0]
	require.Len(t, energia.Itens, 1, "lançamento repetido deve mesclar, não duplicar")

	it := energia.Itens[0]
	assert.True(t, it.Valor.Equal(dec("1000")), "valor mesclado soma as duas filiais")
	assert.True(t, it.PorFilial[1].Equal(dec("500")))
	assert.True(t, it.PorFilial[2].Equal(dec("500")))

	assert.Equal(t, 1, tree.ItensCount)
	assert.Equal(t, 1, tree.MescladosCount)
	assert.Equal(t, 2, tree.ItensCount+tree.MescladosCount, "contabilidade de mescla explícita")
	assert.Equal(t, []int{1, 2}, tree.FilialIDs())
}

// Chaves com e sem acento devem cair no mesmo nó: a junção é pelo nome dobrado.
func TestBuild_JuncaoIgnoraAcentosECaixa(t *testing.T) {
	rows := []Row{
		linha([]string{"Padaria", "Pães"}, "10", "1"),
		linha([]string{"PADARIA", "paes"}, "20", "2"),
	}
	tree := montar(t, Config{Niveis: 2}, rows)

	require.Len(t, tree.Raizes(), 1, "grafias diferentes do mesmo nome juntam no mesmo nó")
	padaria := tree.Raizes()[0]
	assert.Equal(t, "Padaria", padaria.Nome, "o nome exibido é o da primeira aparição")
	assert.True(t, padaria.Valor.Equal(dec("30")))
	require.Len(t, padaria.Filhos(), 1)
}

// A ordem de primeira aparição é preservada quando nenhuma ordenação é pedida.
func TestBuild_PreservaOrdemDePrimeiraAparicao(t *testing.T) {
	rows := []Row{
		linha([]string{"C"}, "10", "0"),
		linha([]string{"A"}, "10", "0"),
		linha([]string{"B"}, "10", "0"),
	}
	tree := montar(t, Config{Niveis: 1}, rows)

	nomes := []string{}
	for _, r := range tree.Raizes() {
		nomes = append(nomes, r.Nome)
	}
	assert.Equal(t, []string{"C", "A", "B"}, nomes)
}

func TestNewBuilder_RejeitaNivelInvalido(t *testing.T) {
	_, err := NewBuilder(Config{Niveis: 0})
	assert.Error(t, err, "builder sem níveis não faz sentido")
}
