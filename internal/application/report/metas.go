package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/dto"
	domain "github.com/Devinga-com-br/bi-saas-sub000/internal/domain"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/hierarchy"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/domain/repository"
)

// MetasUseCase acompanhamento de metas: meta × realizado por filial e por dia.
// Variância favorável quando o realizado alcança a meta (linha de receita).
type MetasUseCase struct {
	fonte repository.MetaSource
	sf    singleflight.Group
}

// NewMetasUseCase constrói o caso de uso.
func NewMetasUseCase(fonte repository.MetaSource) *MetasUseCase {
	return &MetasUseCase{fonte: fonte}
}

// GerarRelatorio busca as metas diárias de cada filial em paralelo e consolida
// por filial e por dia. Atingimento sempre com guarda de divisão por zero.
func (uc *MetasUseCase) GerarRelatorio(
	ctx context.Context,
	schema string,
	filiaisPermitidas []int,
	req dto.RelatorioRequest,
) (*dto.MetasDTO, error) {
	inicio, fim, err := validarPeriodo(req.DataInicio, req.DataFim)
	if err != nil {
		return nil, err
	}
	filiais, err := validarFiliais(req.Filiais, filiaisPermitidas)
	if err != nil {
		return nil, err
	}

	key := chaveRefresh("metas", schema, inicio, fim, filiais)
	v, err, _ := uc.sf.Do(key, func() (any, error) {
		return uc.montar(ctx, schema, filiais, inicio, fim)
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.MetasDTO), nil
}

func (uc *MetasUseCase) montar(
	ctx context.Context,
	schema string,
	filiais []int,
	inicio, fim time.Time,
) (*dto.MetasDTO, error) {
	type resultado struct {
		filialID int
		rows     []repository.MetaDiariaRow
		err      error
	}
	ch := make(chan resultado, len(filiais))
	for _, id := range filiais {
		go func(id int) {
			rows, err := uc.fonte.ListarMetasDiarias(ctx, schema, id, inicio, fim)
			ch <- resultado{filialID: id, rows: rows, err: err}
		}(id)
	}

	var todas []repository.MetaDiariaRow
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

	// ── Consolidação por filial ───────────────────────────────────────────────
	type acumulado struct{ meta, realizado decimal.Decimal }
	porFilial := make(map[int]*acumulado)
	porDia := make(map[string]*acumulado)
	var totalMeta, totalRealizado decimal.Decimal

	for _, r := range todas {
		f := porFilial[r.FilialID]
		if f == nil {
			f = &acumulado{}
			porFilial[r.FilialID] = f
		}
		f.meta = f.meta.Add(r.Meta)
		f.realizado = f.realizado.Add(r.Realizado)

		dia := r.Data.Format("2006-01-02")
		d := porDia[dia]
		if d == nil {
			d = &acumulado{}
			porDia[dia] = d
		}
		d.meta = d.meta.Add(r.Meta)
		d.realizado = d.realizado.Add(r.Realizado)

		totalMeta = totalMeta.Add(r.Meta)
		totalRealizado = totalRealizado.Add(r.Realizado)
	}

	filiaisDTO := make([]dto.MetaFilialDTO, 0, len(porFilial))
	for id, a := range porFilial {
		filiaisDTO = append(filiaisDTO, dto.MetaFilialDTO{
			FilialID:    id,
			Meta:        a.meta.Round(2),
			Realizado:   a.realizado.Round(2),
			Atingimento: hierarchy.Percentual(a.realizado, a.meta).Round(2),
			Favoravel:   a.realizado.GreaterThanOrEqual(a.meta),
		})
	}
	sort.Slice(filiaisDTO, func(i, j int) bool { return filiaisDTO[i].FilialID < filiaisDTO[j].FilialID })

	dias := make([]string, 0, len(porDia))
	for d := range porDia {
		dias = append(dias, d)
	}
	sort.Strings(dias)
	serie := make([]dto.MetaSerieDTO, 0, len(dias))
	for _, d := range dias {
		a := porDia[d]
		serie = append(serie, dto.MetaSerieDTO{
			Data:      d,
			Meta:      a.meta.Round(2),
			Realizado: a.realizado.Round(2),
		})
	}

	return &dto.MetasDTO{
		Filiais:        filiaisDTO,
		Serie:          serie,
		TotalMeta:      totalMeta.Round(2),
		TotalRealizado: totalRealizado.Round(2),
		Atingimento:    hierarchy.Percentual(totalRealizado, totalMeta).Round(2),
	}, nil
}
