package postgres

import (
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
)

// O nome do schema do tenant entra interpolado no SQL (schema não é
// parametrizável com placeholder). A validação ANTES da interpolação é
// obrigatória; o pgx.Identifier ainda escapa o identificador por cima.
var schemaValido = regexp.MustCompile(`^[a-z][a-z0-9_]{0,62}$`)

// tabelaTenant devolve o identificador qualificado e escapado
// "schema"."tabela", ou erro se o schema não for um identificador aceitável.
func tabelaTenant(schema, tabela string) (string, error) {
	if !schemaValido.MatchString(schema) {
		return "", fmt.Errorf("schema de tenant inválido: %q", schema)
	}
	return pgx.Identifier{schema, tabela}.Sanitize(), nil
}
