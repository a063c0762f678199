// Package report contém os casos de uso dos relatórios gerenciais: orquestram
// validação de parâmetros, busca paralela por filial, o motor de consolidação
// hierárquica e a montagem do contrato de resposta.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	domain "github.com/Devinga-com-br/bi-saas-sub000/internal/domain"
)

// validarPeriodo converte as strings de data em time.Time. Seletores
// obrigatórios: sem default silencioso — faltou data, o relatório não roda.
// O fim do período é inclusivo até o último instante do dia.
func validarPeriodo(inicioStr, fimStr string) (inicio, fim time.Time, err error) {
	if inicioStr == "" || fimStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: data_inicio e data_fim são obrigatórias", domain.ErrPeriodoInvalido)
	}
	inicio, err = time.ParseInLocation("2006-01-02", inicioStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: data_inicio: %v", domain.ErrPeriodoInvalido, err)
	}
	fim, err = time.ParseInLocation("2006-01-02", fimStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: data_fim: %v", domain.ErrPeriodoInvalido, err)
	}
	fim = fim.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	if inicio.After(fim) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: data_inicio posterior a data_fim", domain.ErrPeriodoInvalido)
	}
	return inicio, fim, nil
}

// validarFiliais parseia o CSV de IDs e valida contra as filiais permitidas
// ao usuário (nil = sem restrição). Conjunto vazio é erro, nunca default.
func validarFiliais(csv string, permitidas []int) ([]int, error) {
	var ids []int
	for _, parte := range strings.Split(csv, ",") {
		parte = strings.TrimSpace(parte)
		if parte == "" {
			continue
		}
		id, err := strconv.Atoi(parte)
		if err != nil {
			return nil, fmt.Errorf("%w: filial %q", domain.ErrParametroInvalido, parte)
		}
		ids = append(ids, id)
	}
	return conferirFiliais(ids, permitidas)
}

// conferirFiliais valida um conjunto já parseado (usado também pelo
// comparativo, que recebe JSON).
func conferirFiliais(ids, permitidas []int) ([]int, error) {
	if len(ids) == 0 {
		return nil, domain.ErrFilialObrigatoria
	}
	if permitidas != nil {
		ok := make(map[int]bool, len(permitidas))
		for _, p := range permitidas {
			ok[p] = true
		}
		for _, id := range ids {
			if !ok[id] {
				return nil, fmt.Errorf("%w: filial %d", domain.ErrFilialNaoPermitida, id)
			}
		}
	}
	sort.Ints(ids)
	return ids, nil
}
