package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	domain "github.com/Devinga-com-br/bi-saas-sub000/internal/domain"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/hierarchy"
)

// buscaFilial busca as linhas cruas de UMA filial.
type buscaFilial func(ctx context.Context, filialID int) ([]hierarchy.RawRow, error)

// buscarTodasFiliais dispara as buscas de todas as filiais em paralelo
// (fan-out) e espera todas terminarem (fan-in) antes da dobra começar.
//
// Qualquer falha aborta o relatório INTEIRO: árvore sem a contribuição de uma
// filial, entregue como se fosse completa, é pior que erro explícito. O erro
// identifica a filial que falhou. A ordem de concatenação não afeta os totais
// (somas comutativas); o desempate de ordenação usa ordem de inserção estável.
func buscarTodasFiliais(ctx context.Context, filiais []int, busca buscaFilial) ([]hierarchy.RawRow, error) {
	type resultado struct {
		filialID int
		rows     []hierarchy.RawRow
		err      error
	}

	ch := make(chan resultado, len(filiais))
	for _, id := range filiais {
		go func(id int) {
			rows, err := busca(ctx, id)
			ch <- resultado{filialID: id, rows: rows, err: err}
		}(id)
	}

	var todas []hierarchy.RawRow
	var falha error
	for range filiais {
		r := <-ch
		if r.err != nil {
			if falha == nil {
				falha = fmt.Errorf("%w: filial %d: %v", domain.ErrFonteRelatorio, r.filialID, r.err)
			}
			continue
		}
		todas = append(todas, r.rows...)
	}
	if falha != nil {
		return nil, falha
	}
	return todas, nil
}

// timeZero período vazio para relatórios de foto do dia (rupturas).
var timeZero time.Time

// chaveRefresh chave do coalescing de consultas concorrentes: duas requisições
// idênticas em voo viram UMA ida à fonte (at-most-once por tupla schema +
// período + filiais + página), via singleflight.
func chaveRefresh(relatorio, schema string, inicio, fim time.Time, filiais []int, extra ...string) string {
	partes := make([]string, 0, len(filiais)+len(extra)+4)
	partes = append(partes, relatorio, schema, inicio.Format("2006-01-02"), fim.Format("2006-01-02"))
	for _, f := range filiais {
		partes = append(partes, strconv.Itoa(f))
	}
	partes = append(partes, extra...)
	return strings.Join(partes, "|")
}
