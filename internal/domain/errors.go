package domain

import "errors"

// Erros de domínio (sem dependências externas).
//
// ErrFonteRelatorio marca falha de busca na fonte de dados: a montagem do
// relatório inteira aborta — nunca se entrega árvore parcial como se fosse
// completa. Período sem movimento NÃO é erro: devolve árvore vazia.
var (
	ErrParametroInvalido  = errors.New("parâmetro inválido")
	ErrPeriodoInvalido    = errors.New("período inválido")
	ErrFilialObrigatoria  = errors.New("ao menos uma filial deve ser informada")
	ErrFilialNaoPermitida = errors.New("filial não permitida para o usuário")
	ErrFonteRelatorio     = errors.New("falha na fonte de dados do relatório")
	ErrNaoAutorizado      = errors.New("não autorizado")
	ErrProibido           = errors.New("acesso negado")
	ErrNaoEncontrado      = errors.New("recurso não encontrado")
)
