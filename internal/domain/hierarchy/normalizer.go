package hierarchy

import (
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RawRow linha crua como chega da fonte de dados. As fontes legadas (funções
// SQL por schema, RPC) não garantem tipo: campo numérico pode vir como string,
// float ou NUMERIC; data pode vir como time.Time, string ou nulo. Nada aqui é
// confiável antes de passar pelo Normalize.
type RawRow struct {
	Niveis     []any // chaves de hierarquia, do topo para a base
	Descricao  any
	Codigo     any
	FilialID   any
	Valor      any
	Lucro      any
	Quantidade any
	Data       any
	NotaFiscal any
	Serie      any
	Observacao any
	Motivo     any
}

// Row linha normalizada e tipada, pronta para o Builder. Imutável após o
// Normalize (o builder só lê).
type Row struct {
	Niveis     []string
	Descricao  string
	Codigo     string
	FilialID   int
	Valor      decimal.Decimal
	Lucro      decimal.Decimal
	Quantidade decimal.Decimal
	Data       *time.Time
	NotaFiscal string
	Serie      string
	Observacao string
	Motivo     string
}

// Normalize converte uma RawRow heterogênea em Row canônica. Função pura:
// valores numéricos não parseáveis (ou NaN/Inf) viram zero — dado ausente não
// pode envenenar as somas do relatório; campos nulos viram string vazia ou
// data nula explícita.
func Normalize(raw RawRow) Row {
	r := Row{
		Descricao:  paraString(raw.Descricao),
		Codigo:     paraString(raw.Codigo),
		FilialID:   paraInt(raw.FilialID),
		Valor:      paraDecimal(raw.Valor),
		Lucro:      paraDecimal(raw.Lucro),
		Quantidade: paraDecimal(raw.Quantidade),
		Data:       paraData(raw.Data),
		NotaFiscal: paraString(raw.NotaFiscal),
		Serie:      paraString(raw.Serie),
		Observacao: paraString(raw.Observacao),
		Motivo:     paraString(raw.Motivo),
	}
	if len(raw.Niveis) > 0 {
		r.Niveis = make([]string, len(raw.Niveis))
		for i, n := range raw.Niveis {
			r.Niveis[i] = paraString(n)
		}
	}
	return r
}

// NormalizeAll aplica Normalize a todas as linhas, preservando a ordem.
func NormalizeAll(raws []RawRow) []Row {
	rows := make([]Row, len(raws))
	for i, raw := range raws {
		rows[i] = Normalize(raw)
	}
	return rows
}

func paraDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero
		}
		return *x
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case float32:
		return paraDecimal(float64(x))
	case int:
		return decimal.NewFromInt(int64(x))
	case int32:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	default:
		return decimal.Zero
	}
}

func paraString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case *string:
		if x == nil {
			return ""
		}
		return strings.TrimSpace(*x)
	default:
		return ""
	}
}

func paraInt(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case int:
		return x
	case int16:
		return int(x)
	case int32:
		return int(x)
	case int64:
		return int(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0
		}
		return int(x)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return 0
		}
		return int(d.IntPart())
	default:
		return 0
	}
}

func paraData(v any) *time.Time {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time:
		if x.IsZero() {
			return nil
		}
		return &x
	case *time.Time:
		if x == nil || x.IsZero() {
			return nil
		}
		return x
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		for _, layout := range []string{"2006-01-02", time.RFC3339} {
			if t, err := time.Parse(layout, s); err == nil {
				return &t
			}
		}
		return nil
	default:
		return nil
	}
}

// dobrador remove marcas diacríticas (NFD → remove Mn → NFC); junto com a
// caixa baixa, torna a chave de junção estável entre consultas independentes
// que grafam o mesmo departamento com e sem acento.
var dobrador = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normaliza um nome para uso como chave de junção entre árvores:
// sem espaços nas pontas, sem acentos, caixa baixa.
func Fold(s string) string {
	s = strings.TrimSpace(s)
	if out, _, err := transform.String(dobrador, s); err == nil {
		s = out
	}
	return strings.ToLower(s)
}
