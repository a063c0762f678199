package hierarchy

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Config parametriza o Builder para cada tipo de relatório.
type Config struct {
	// Niveis profundidade da árvore, sem contar os itens terminais.
	// Despesas usa 2 (departamento → tipo), perdas usa 3 (nível 3 → 2 → 1).
	Niveis int

	// MultiFilial liga o mapa valor-por-filial em cada nó e item.
	MultiFilial bool

	// ChaveItem chave composta para mesclar itens terminais duplicados.
	// No relatório de despesas o mesmo lançamento de nota aparece uma vez por
	// filial e não pode duplicar na última camada; a chave padrão é
	// ChaveItemNota. Nula = nunca mescla.
	ChaveItem func(Row) string
}

// ChaveItemNota chave composta de dedup do relatório de despesas:
// {nível3}-{nível4}-{data}-{descrição}-{nota fiscal}.
func ChaveItemNota(r Row) string {
	partes := make([]string, 0, len(r.Niveis)+3)
	for _, n := range r.Niveis {
		partes = append(partes, Fold(n))
	}
	data := ""
	if r.Data != nil {
		data = r.Data.Format("2006-01-02")
	}
	partes = append(partes, data, Fold(r.Descricao), Fold(r.NotaFiscal))
	return strings.Join(partes, "-")
}

// Builder dobra linhas normalizadas em uma Tree. É o único dono da criação de
// nós: nenhuma métrica da árvore é mutada fora do Build.
type Builder struct {
	cfg Config
}

// NewBuilder constrói o builder; Niveis precisa ser >= 1.
func NewBuilder(cfg Config) (*Builder, error) {
	if cfg.Niveis < 1 {
		return nil, fmt.Errorf("hierarchy: número de níveis inválido: %d", cfg.Niveis)
	}
	return &Builder{cfg: cfg}, nil
}

// Build faz uma única passada sobre rows. Para cada linha desce (criando se
// preciso) nó a nó usando a chave da linha em cada nível; em TODO nível
// visitado o acumulador é incrementado na hora — o invariante de conservação
// (total do pai == soma dos filhos) vale em qualquer momento da dobra.
//
// Linha sem chave em algum nível entra no balde SemClassificacao: nenhuma
// linha é descartada (ItensCount + MescladosCount == len(rows)).
func (b *Builder) Build(rows []Row) *Tree {
	t := &Tree{}
	for _, r := range rows {
		t.Totais.soma(r, b.cfg.MultiFilial)

		n := t.raiz(b.chaveNivel(r, 0))
		n.soma(r, b.cfg.MultiFilial)
		for nivel := 1; nivel < b.cfg.Niveis; nivel++ {
			n = n.filho(b.chaveNivel(r, nivel))
			n.soma(r, b.cfg.MultiFilial)
		}
		b.insereItem(t, n, r)
	}
	return t
}

// chaveNivel devolve o nome da linha no nível dado, ou o balde sentinela.
func (b *Builder) chaveNivel(r Row, nivel int) string {
	if nivel >= len(r.Niveis) || strings.TrimSpace(r.Niveis[nivel]) == "" {
		return SemClassificacao
	}
	return r.Niveis[nivel]
}

// insereItem acrescenta o registro terminal ao nó folha, mesclando pela chave
// composta quando configurada (mesmo lançamento vindo de outra filial soma em
// vez de duplicar).
func (b *Builder) insereItem(t *Tree, n *Node, r Row) {
	if b.cfg.ChaveItem != nil {
		key := b.cfg.ChaveItem(r)
		if n.folhaIdx == nil {
			n.folhaIdx = make(map[string]int)
		}
		if idx, ok := n.folhaIdx[key]; ok {
			mesclaItem(n.Itens[idx], r, b.cfg.MultiFilial)
			t.MescladosCount++
			return
		}
		n.folhaIdx[key] = len(n.Itens)
	}
	n.Itens = append(n.Itens, novoItem(r, b.cfg.MultiFilial))
	t.ItensCount++
}

func novoItem(r Row, multiFilial bool) *Item {
	it := &Item{
		Descricao:  r.Descricao,
		Codigo:     r.Codigo,
		Valor:      r.Valor,
		Lucro:      r.Lucro,
		Quantidade: r.Quantidade,
		Data:       r.Data,
		NotaFiscal: r.NotaFiscal,
		Serie:      r.Serie,
		Observacao: r.Observacao,
		Motivo:     r.Motivo,
	}
	if multiFilial {
		it.PorFilial = map[int]decimal.Decimal{r.FilialID: r.Valor}
	}
	return it
}

func mesclaItem(it *Item, r Row, multiFilial bool) {
	it.Valor = it.Valor.Add(r.Valor)
	it.Lucro = it.Lucro.Add(r.Lucro)
	it.Quantidade = it.Quantidade.Add(r.Quantidade)
	if multiFilial {
		if it.PorFilial == nil {
			it.PorFilial = make(map[int]decimal.Decimal)
		}
		it.PorFilial[r.FilialID] = it.PorFilial[r.FilialID].Add(r.Valor)
	}
}
