package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/dto"
	domain "github.com/Devinga-com-br/bi-saas-sub000/internal/domain"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/hierarchy"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/repository"
)

const (
	minContextos = 2
	maxContextos = 4
)

// Natureza explícita dos grupos conhecidos do DRE. Grupo fora desta tabela
// cai na heurística por palavra-chave de hierarchy.ClassificaNatureza —
// fallback documentado e frágil; a fonte deve fornecer o grupo correto.
var naturezaGrupo = map[string]hierarchy.Natureza{
	"receita bruta": hierarchy.NaturezaReceita,
	"deducoes":      hierarchy.NaturezaDespesa,
	"cmv":           hierarchy.NaturezaDespesa,
	"despesas":      hierarchy.NaturezaDespesa,
}

// DREComparativoUseCase compara de 2 a 4 contextos (conjunto de filiais +
// período) lado a lado. Cada contexto monta a própria árvore de forma
// independente; o alinhamento é por endereço de nó e os deltas saem do par
// contexto[0] × contexto[1], por convenção.
type DREComparativoUseCase struct {
	fonte repository.DRESource
}

// NewDREComparativoUseCase constrói o caso de uso.
func NewDREComparativoUseCase(fonte repository.DRESource) *DREComparativoUseCase {
	return &DREComparativoUseCase{fonte: fonte}
}

// Comparar valida os contextos, monta as árvores em paralelo e devolve as
// linhas comparativas com classificação de variância e a linha sintética de
// margem bruta (delta em pontos percentuais).
func (uc *DREComparativoUseCase) Comparar(
	ctx context.Context,
	schema string,
	filiaisPermitidas []int,
	req dto.DREComparativoRequest,
) (*dto.DREComparativoDTO, error) {
	if len(req.Contextos) < minContextos || len(req.Contextos) > maxContextos {
		return nil, fmt.Errorf("%w: o comparativo exige de %d a %d contextos",
			domain.ErrParametroInvalido, minContextos, maxContextos)
	}

	type plano struct {
		contexto hierarchy.Contexto
		filiais  []int
		inicio   time.Time
		fim      time.Time
	}
	planos := make([]plano, 0, len(req.Contextos))
	for i, c := range req.Contextos {
		inicio, fim, err := validarPeriodo(c.DataInicio, c.DataFim)
		if err != nil {
			return nil, fmt.Errorf("contexto %d: %w", i+1, err)
		}
		filiais, err := conferirFiliais(append([]int{}, c.Filiais...), filiaisPermitidas)
		if err != nil {
			return nil, fmt.Errorf("contexto %d: %w", i+1, err)
		}
		rotulo := strings.TrimSpace(c.Rotulo)
		if rotulo == "" {
			rotulo = fmt.Sprintf("%s a %s", c.DataInicio, c.DataFim)
		}
		planos = append(planos, plano{
			contexto: hierarchy.Contexto{ID: fmt.Sprintf("ctx%d", i+1), Rotulo: rotulo},
			filiais:  filiais,
			inicio:   inicio,
			fim:      fim,
		})
	}

	// Uma árvore por contexto, montadas em paralelo (cada uma já faz o
	// próprio fan-out por filial). O resultado volta indexado para preservar
	// a ordem configurada pelo usuário.
	type resultado struct {
		idx  int
		tree *hierarchy.Tree
		err  error
	}
	ch := make(chan resultado, len(planos))
	for i, p := range planos {
		go func(i int, p plano) {
			tree, err := uc.montarArvore(ctx, schema, p.filiais, p.inicio, p.fim)
			ch <- resultado{idx: i, tree: tree, err: err}
		}(i, p)
	}
	arvores := make([]hierarchy.ArvoreContexto, len(planos))
	for range planos {
		r := <-ch
		if r.err != nil {
			return nil, fmt.Errorf("contexto %d: %w", r.idx+1, r.err)
		}
		arvores[r.idx] = hierarchy.ArvoreContexto{Contexto: planos[r.idx].contexto, Tree: r.tree}
	}

	linhas := montarLinhasComparativas(arvores)
	linhas = append(linhas, linhaMargemBruta(arvores))

	contextos := make([]dto.ContextoDTO, 0, len(planos))
	for _, p := range planos {
		contextos = append(contextos, dto.ContextoDTO{ID: p.contexto.ID, Rotulo: p.contexto.Rotulo})
	}
	return &dto.DREComparativoDTO{Linhas: linhas, Contextos: contextos}, nil
}

// montarArvore busca e dobra a árvore DRE de um contexto. O DRE NÃO é
// ranqueado por valor: a ordem das linhas é a ordem contábil que a fonte
// devolve (receita antes de dedução, dedução antes de CMV).
func (uc *DREComparativoUseCase) montarArvore(
	ctx context.Context,
	schema string,
	filiais []int,
	inicio, fim time.Time,
) (*hierarchy.Tree, error) {
	raws, err := buscarTodasFiliais(ctx, filiais, func(ctx context.Context, filialID int) ([]hierarchy.RawRow, error) {
		return uc.fonte.ListarLinhasDRE(ctx, schema, filialID, inicio, fim)
	})
	if err != nil {
		return nil, err
	}
	builder, err := hierarchy.NewBuilder(hierarchy.Config{Niveis: 2})
	if err != nil {
		return nil, err
	}
	tree := builder.Build(hierarchy.NormalizeAll(raws))
	hierarchy.Rollup(tree)
	return tree, nil
}

// montarLinhasComparativas converte a saída do resolver no DTO, com natureza
// (receita/despesa) herdada do grupo de topo de cada endereço.
func montarLinhasComparativas(arvores []hierarchy.ArvoreContexto) []dto.LinhaComparativaDTO {
	linhas := hierarchy.Compare(arvores)
	out := make([]dto.LinhaComparativaDTO, 0, len(linhas)+1)
	for _, l := range linhas {
		natureza := naturezaEndereco(l.Endereco)
		valores := make(map[string]decimal.Decimal, len(l.Valores))
		for id, v := range l.Valores {
			valores[id] = v.Round(2)
		}
		out = append(out, dto.LinhaComparativaDTO{
			Descricao: l.Nome,
			Tipo:      tipoLinha(l.Endereco, natureza),
			Nivel:     l.Nivel,
			Valores:   valores,
			DeltaAbs:  l.DeltaAbs.Round(2),
			DeltaPct:  l.DeltaPct.Round(2),
			Favoravel: hierarchy.Favoravel(l.DeltaAbs, natureza),
			Deducao:   tipoLinha(l.Endereco, natureza) == "deducao",
		})
	}
	return out
}

// naturezaEndereco a natureza vem do grupo de topo do endereço: tabela
// explícita primeiro, heurística por palavra-chave como último recurso.
func naturezaEndereco(endereco []string) hierarchy.Natureza {
	grupo := endereco[0]
	if n, ok := naturezaGrupo[hierarchy.Fold(grupo)]; ok {
		return n
	}
	return hierarchy.ClassificaNatureza(grupo, nil)
}

func tipoLinha(endereco []string, natureza hierarchy.Natureza) string {
	if strings.Contains(hierarchy.Fold(endereco[0]), "dedu") {
		return "deducao"
	}
	if natureza == hierarchy.NaturezaDespesa {
		return "despesa"
	}
	return "receita"
}

// linhaMargemBruta linha sintética: margem bruta % de cada contexto
// (100 × (receita − CMV) / receita) e delta em PONTOS PERCENTUAIS — nunca
// percentual de percentual.
func linhaMargemBruta(arvores []hierarchy.ArvoreContexto) dto.LinhaComparativaDTO {
	valores := make(map[string]decimal.Decimal, len(arvores))
	margens := make([]decimal.Decimal, len(arvores))
	for i, a := range arvores {
		receita := valorRaiz(a.Tree, "receita bruta")
		cmv := valorRaiz(a.Tree, "cmv")
		margens[i] = hierarchy.Percentual(receita.Sub(cmv), receita)
		valores[a.Contexto.ID] = margens[i].Round(2)
	}
	var delta decimal.Decimal
	if len(margens) > 1 {
		delta = margens[0].Sub(margens[1])
	}
	return dto.LinhaComparativaDTO{
		Descricao:         "MARGEM BRUTA %",
		Tipo:              "margem",
		Nivel:             0,
		Valores:           valores,
		DeltaAbs:          delta.Round(2),
		DeltaPct:          delta.Round(2), // p.p.: o delta absoluto JÁ é a variação em pontos
		PontosPercentuais: true,
		Favoravel:         delta.GreaterThanOrEqual(decimal.Zero),
	}
}

func valorRaiz(t *hierarchy.Tree, nomeDobrado string) decimal.Decimal {
	for _, r := range t.Raizes() {
		if hierarchy.Fold(r.Nome) == nomeDobrado {
			return r.Valor
		}
	}
	return decimal.Zero
}
