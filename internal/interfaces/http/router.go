package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/report"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	DespesasUC *report.DespesasUseCase
	DREUC      *report.DREComparativoUseCase
	PerdasUC   *report.PerdasUseCase
	CurvaUC    *report.CurvaVendasUseCase
	MetasUC    *report.MetasUseCase
	RupturasUC *report.RupturasUseCase
	FiliaisUC  *report.FiliaisUseCase
	JWTSecret  string
}

// Router registra as rotas da API. Tudo exige Bearer Token; cada família de
// relatório exige o módulo correspondente no token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Filiais (qualquer usuário autenticado)
	filialHandler := NewFilialHandler(deps.FiliaisUC)
	api.Get("/filiais", filialHandler.Listar)

	relatorios := api.Group("/relatorios")

	// Despesas (DRE analítico)
	despesas := relatorios.Group("/despesas", RequireModule("despesas"))
	despesasHandler := NewDespesasHandler(deps.DespesasUC)
	despesas.Get("/", despesasHandler.GerarRelatorio)
	despesas.Get("/departamentos", despesasHandler.ListarDepartamentos)

	// DRE comparativo
	dre := relatorios.Group("/dre-comparativo", RequireModule("dre"))
	dreHandler := NewDREHandler(deps.DREUC)
	dre.Post("/", dreHandler.Comparar)

	// Perdas
	perdas := relatorios.Group("/perdas", RequireModule("perdas"))
	perdasHandler := NewPerdasHandler(deps.PerdasUC)
	perdas.Get("/", perdasHandler.GerarRelatorio)

	// Curva ABC de vendas
	curva := relatorios.Group("/curva-vendas", RequireModule("vendas"))
	curvaHandler := NewCurvaHandler(deps.CurvaUC)
	curva.Get("/", curvaHandler.GerarRelatorio)

	// Metas
	metas := relatorios.Group("/metas", RequireModule("metas"))
	metasHandler := NewMetasHandler(deps.MetasUC)
	metas.Get("/", metasHandler.GerarRelatorio)

	// Ruptura de estoque
	rupturas := relatorios.Group("/rupturas", RequireModule("rupturas"))
	rupturasHandler := NewRupturasHandler(deps.RupturasUC)
	rupturas.Get("/", rupturasHandler.GerarRelatorio)
}
