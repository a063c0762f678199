package hierarchy

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RankFn métrica de ordenação de um nó. A padrão é o valor acumulado.
type RankFn func(*Node) decimal.Decimal

// PorValor ranking padrão dos relatórios: valor total do nó.
func PorValor(n *Node) decimal.Decimal { return n.Valor }

// Sort ordena TODOS os níveis da árvore (recursivamente) pela métrica dada,
// em ordem decrescente, e os itens terminais por valor decrescente.
//
// A ordenação é estável: empates preservam a ordem de primeira aparição, o
// que mantém o relatório determinístico execução a execução para a mesma
// entrada. Aplicar uma vez por árvore, depois do Rollup e antes da montagem.
func Sort(t *Tree, rank RankFn) {
	if rank == nil {
		rank = PorValor
	}
	ordenaNivel(t.ordem, t.raizes, rank)
	for _, r := range t.Raizes() {
		ordenaNode(r, rank)
	}
}

func ordenaNode(n *Node, rank RankFn) {
	ordenaNivel(n.ordem, n.filhos, rank)
	for _, f := range n.Filhos() {
		ordenaNode(f, rank)
	}
	sort.SliceStable(n.Itens, func(i, j int) bool {
		return n.Itens[i].Valor.GreaterThan(n.Itens[j].Valor)
	})
	// folhaIdx aponta por posição; depois de ordenar ele fica obsoleto e a
	// árvore não recebe mais inserções, então é descartado.
	n.folhaIdx = nil
}

func ordenaNivel(ordem []string, nos map[string]*Node, rank RankFn) {
	sort.SliceStable(ordem, func(i, j int) bool {
		return rank(nos[ordem[i]]).GreaterThan(rank(nos[ordem[j]]))
	})
}
