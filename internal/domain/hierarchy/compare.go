package hierarchy

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Contexto um par nomeado (conjunto de filiais, período) do comparativo.
// Cada contexto produz UMA árvore montada de forma independente; os contextos
// são comparados par a par: contexto[0] contra contexto[1], por convenção.
type Contexto struct {
	ID     string
	Rotulo string
}

// ArvoreContexto árvore consolidada de um contexto de comparação.
type ArvoreContexto struct {
	Contexto Contexto
	Tree     *Tree
}

// LinhaComparativa um endereço de nó presente na união das árvores comparadas.
//
// Endereco é o caminho de nomes da raiz até o nó — é a chave de junção entre
// árvores buscadas com filiais/períodos diferentes (e portanto com populações
// de nós diferentes). Contexto ausente naquele endereço contribui zero.
type LinhaComparativa struct {
	Endereco []string
	Nome     string
	Nivel    int
	Valores  map[string]decimal.Decimal // por ID de contexto
	DeltaAbs decimal.Decimal            // contexto[0] − contexto[1]
	DeltaPct decimal.Decimal
}

// Compare alinha N árvores paralelas pelo endereço do nó e computa os deltas
// absoluto e percentual de cada endereço da união. A ordem das linhas segue
// um percurso em profundidade: endereços do primeiro contexto primeiro, na
// ordem daquela árvore; endereços que só existem nos demais contextos entram
// em seguida, na ordem em que aparecem.
func Compare(arvores []ArvoreContexto) []LinhaComparativa {
	if len(arvores) == 0 {
		return nil
	}

	type slot struct {
		nome    string
		valores map[string]decimal.Decimal
		filhos  map[string]*slot
		ordem   []string
	}
	raiz := &slot{filhos: make(map[string]*slot)}

	insere := func(ctxID string, caminho []*Node) {
		s := raiz
		for _, n := range caminho {
			key := Fold(n.Nome)
			f, ok := s.filhos[key]
			if !ok {
				f = &slot{nome: n.Nome, valores: make(map[string]decimal.Decimal), filhos: make(map[string]*slot)}
				s.filhos[key] = f
				s.ordem = append(s.ordem, key)
			}
			s = f
		}
		s.valores[ctxID] = caminho[len(caminho)-1].Valor
	}

	for _, a := range arvores {
		var walk func(n *Node, caminho []*Node)
		walk = func(n *Node, caminho []*Node) {
			caminho = append(caminho, n)
			insere(a.Contexto.ID, caminho)
			for _, f := range n.Filhos() {
				walk(f, caminho)
			}
		}
		for _, r := range a.Tree.Raizes() {
			walk(r, nil)
		}
	}

	id0, id1 := arvores[0].Contexto.ID, ""
	if len(arvores) > 1 {
		id1 = arvores[1].Contexto.ID
	}

	var linhas []LinhaComparativa
	var emite func(s *slot, endereco []string)
	emite = func(s *slot, endereco []string) {
		for _, key := range s.ordem {
			f := s.filhos[key]
			end := append(append([]string{}, endereco...), f.nome)
			valores := make(map[string]decimal.Decimal, len(arvores))
			for _, a := range arvores {
				valores[a.Contexto.ID] = f.valores[a.Contexto.ID] // zero se ausente
			}
			v0, v1 := valores[id0], valores[id1]
			linhas = append(linhas, LinhaComparativa{
				Endereco: end,
				Nome:     f.nome,
				Nivel:    len(end) - 1,
				Valores:  valores,
				DeltaAbs: v0.Sub(v1),
				DeltaPct: DeltaPercentual(v0, v1),
			})
			emite(f, end)
		}
	}
	emite(raiz, nil)
	return linhas
}

// DeltaPercentual variação percentual do comparativo: ((v0 − v1) / |v1|) × 100.
// Convenção documentada para baseline zero — NÃO é identidade matemática e os
// relatórios dependem dela tal qual: v1 == 0 → 100 se v0 > 0, senão 0.
func DeltaPercentual(v0, v1 decimal.Decimal) decimal.Decimal {
	if v1.IsZero() {
		if v0.GreaterThan(decimal.Zero) {
			return cem
		}
		return decimal.Zero
	}
	return v0.Sub(v1).Div(v1.Abs()).Mul(cem)
}

// Natureza classifica a linha para direção de variância: em linha de despesa
// um aumento é desfavorável; em linha de receita, favorável.
type Natureza int

const (
	NaturezaReceita Natureza = iota
	NaturezaDespesa
)

// palavras-chave do fallback quando a fonte não fornece classificação
// explícita. Heurística frágil (depende de grafia/idioma) — preferir sempre a
// classificação explícita por linha.
var palavrasDespesa = []string{"despesa", "cmv"}

// ClassificaNatureza devolve a natureza explícita quando fornecida; sem tag,
// cai na heurística por palavra-chave sobre a descrição dobrada.
func ClassificaNatureza(descricao string, explicita *Natureza) Natureza {
	if explicita != nil {
		return *explicita
	}
	d := Fold(descricao)
	for _, p := range palavrasDespesa {
		if strings.Contains(d, p) {
			return NaturezaDespesa
		}
	}
	return NaturezaReceita
}

// Favoravel decide a direção da variância: para linha de despesa, delta
// negativo (gastou menos) é favorável; para receita, delta positivo.
func Favoravel(deltaAbs decimal.Decimal, natureza Natureza) bool {
	if natureza == NaturezaDespesa {
		return deltaAbs.LessThanOrEqual(decimal.Zero)
	}
	return deltaAbs.GreaterThanOrEqual(decimal.Zero)
}
