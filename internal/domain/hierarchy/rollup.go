package hierarchy

import "github.com/shopspring/decimal"

var cem = decimal.NewFromInt(100)

// Rollup anota cada nó da árvore com os campos derivados:
//
//	PercentualTotal = 100 × valor do nó / grand total
//	Margem          = 100 × lucro do nó / valor do nó
//
// Percurso pós-ordem puro: não altera as somas cruas do builder, só acrescenta
// os derivados. Divisão por zero SEMPRE resulta em zero — contrato de exibição
// do dashboard: nunca renderizar "NaN%".
func Rollup(t *Tree) {
	grandTotal := t.Totais.Valor
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, f := range n.Filhos() {
			walk(f)
		}
		n.PercentualTotal = Percentual(n.Valor, grandTotal)
		n.Margem = Percentual(n.Lucro, n.Valor)
	}
	for _, r := range t.Raizes() {
		walk(r)
	}
}

// Percentual devolve 100×num/den, ou zero quando o denominador é zero.
func Percentual(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den).Mul(cem)
}
