package entity

// Filial uma loja do grupo dentro do schema do tenant. O ID é o código
// numérico usado como chave nos mapas valor-por-filial dos relatórios.
type Filial struct {
	ID     int
	Nome   string
	Cidade string
	Ativa  bool
}
