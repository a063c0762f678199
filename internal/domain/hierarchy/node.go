// Package hierarchy implementa o motor genérico de consolidação hierárquica
// usado pelos relatórios de despesas, DRE comparativo, perdas e curva de vendas:
// dobra linhas planas vindas da fonte de dados em uma árvore de N níveis,
// acumula totais de baixo para cima, deriva percentuais e ordena cada nível.
package hierarchy

import (
	"hash/fnv"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SemClassificacao é o balde sentinela para linhas sem chave de nível.
// Linha com departamento nulo/vazio NUNCA é descartada: entra aqui.
const SemClassificacao = "SEM CLASSIFICAÇÃO"

// Metricas acumulador de métricas de um nó ou da árvore inteira.
// PorFilial só é preenchido em modo multi-filial (consolidação de várias lojas).
type Metricas struct {
	Valor      decimal.Decimal
	Lucro      decimal.Decimal
	Quantidade decimal.Decimal
	PorFilial  map[int]decimal.Decimal
}

// soma incrementa o acumulador com as métricas de uma linha normalizada.
// É o ÚNICO caminho de mutação: pai e filho são incrementados na mesma
// inserção, então o invariante "total do nó == soma dos filhos" vale por
// construção, nunca por recomputação tardia.
func (m *Metricas) soma(r Row, multiFilial bool) {
	m.Valor = m.Valor.Add(r.Valor)
	m.Lucro = m.Lucro.Add(r.Lucro)
	m.Quantidade = m.Quantidade.Add(r.Quantidade)
	if multiFilial {
		if m.PorFilial == nil {
			m.PorFilial = make(map[int]decimal.Decimal)
		}
		m.PorFilial[r.FilialID] = m.PorFilial[r.FilialID].Add(r.Valor)
	}
}

// Node um nível da árvore consolidada.
//
// A chave de junção entre árvores montadas de forma independente (filiais ou
// períodos diferentes) é o PRÓPRIO nome dobrado (sem acentos, caixa baixa);
// o ID numérico é derivado por FNV-1a e serve apenas para exibição, nunca
// como chave de junção.
type Node struct {
	Nome string
	ID   uint32
	Metricas

	// Campos derivados pelo Rollup; o builder não os toca.
	PercentualTotal decimal.Decimal
	Margem          decimal.Decimal

	filhos   map[string]*Node
	ordem    []string // ordem de primeira aparição, preservada em empates
	folhaIdx map[string]int
	Itens    []*Item
}

// Filhos devolve os nós filhos na ordem corrente (inserção ou, após o
// TreeSorter, ordem do ranking).
func (n *Node) Filhos() []*Node {
	if len(n.ordem) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(n.ordem))
	for _, k := range n.ordem {
		out = append(out, n.filhos[k])
	}
	return out
}

// filho localiza ou cria o filho com o nome dado.
func (n *Node) filho(nome string) *Node {
	key := Fold(nome)
	if n.filhos == nil {
		n.filhos = make(map[string]*Node)
	}
	if f, ok := n.filhos[key]; ok {
		return f
	}
	f := novoNode(nome)
	n.filhos[key] = f
	n.ordem = append(n.ordem, key)
	return f
}

func novoNode(nome string) *Node {
	return &Node{Nome: nome, ID: displayID(nome)}
}

// displayID hash estável do nome dobrado, somente para exibição.
func displayID(nome string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(Fold(nome)))
	return h.Sum32()
}

// Item registro terminal da árvore (lançamento de despesa, produto).
// Nunca tem filhos.
type Item struct {
	Descricao  string
	Codigo     string
	Valor      decimal.Decimal
	Lucro      decimal.Decimal
	Quantidade decimal.Decimal
	PorFilial  map[int]decimal.Decimal
	Data       *time.Time
	NotaFiscal string
	Serie      string
	Observacao string
	Motivo     string
}

// Tree árvore consolidada de um relatório. Totais é o grand total: soma de
// todas as linhas dobradas, em todos os níveis (propriedade de conservação).
type Tree struct {
	raizes   map[string]*Node
	ordem    []string
	Totais   Metricas

	// ItensCount + MescladosCount == linhas de entrada (nenhuma linha se perde).
	ItensCount     int
	MescladosCount int
}

// Raizes devolve os nós de topo na ordem corrente.
func (t *Tree) Raizes() []*Node {
	if len(t.ordem) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(t.ordem))
	for _, k := range t.ordem {
		out = append(out, t.raizes[k])
	}
	return out
}

// raiz localiza ou cria o nó de topo com o nome dado.
func (t *Tree) raiz(nome string) *Node {
	key := Fold(nome)
	if t.raizes == nil {
		t.raizes = make(map[string]*Node)
	}
	if n, ok := t.raizes[key]; ok {
		return n
	}
	n := novoNode(nome)
	t.raizes[key] = n
	t.ordem = append(t.ordem, key)
	return n
}

// FilialIDs devolve os IDs de filial presentes nos totais, em ordem crescente.
func (t *Tree) FilialIDs() []int {
	if len(t.Totais.PorFilial) == 0 {
		return nil
	}
	ids := make([]int, 0, len(t.Totais.PorFilial))
	for id := range t.Totais.PorFilial {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ContagemPorNivel conta os nós existentes em cada nível da árvore
// (posição 0 = topo). Alimenta o totalizador do relatório.
func (t *Tree) ContagemPorNivel() []int {
	var contagem []int
	var walk func(n *Node, nivel int)
	walk = func(n *Node, nivel int) {
		for len(contagem) <= nivel {
			contagem = append(contagem, 0)
		}
		contagem[nivel]++
		for _, f := range n.Filhos() {
			walk(f, nivel+1)
		}
	}
	for _, r := range t.Raizes() {
		walk(r, 0)
	}
	return contagem
}
