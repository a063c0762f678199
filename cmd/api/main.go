package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Devinga-com-br/bi-saas-sub000/internal/application/report"
	"github.com/Devinga-com-br/bi-saas-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/Devinga-com-br/bi-saas-sub000/internal/interfaces/http"
	"github.com/Devinga-com-br/bi-saas-sub000/pkg/config"
	"github.com/Devinga-com-br/bi-saas-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	despesaRepo := postgres.NewDespesaRepository(pool)
	dreRepo := postgres.NewDRERepository(pool)
	perdaRepo := postgres.NewPerdaRepository(pool)
	vendaRepo := postgres.NewVendaRepository(pool)
	metaRepo := postgres.NewMetaRepository(pool)
	rupturaRepo := postgres.NewRupturaRepository(pool)
	filialRepo := postgres.NewFilialRepository(pool)

	despesasUC := report.NewDespesasUseCase(despesaRepo)
	dreUC := report.NewDREComparativoUseCase(dreRepo)
	perdasUC := report.NewPerdasUseCase(perdaRepo)
	curvaUC := report.NewCurvaVendasUseCase(vendaRepo)
	metasUC := report.NewMetasUseCase(metaRepo)
	rupturasUC := report.NewRupturasUseCase(rupturaRepo)
	filiaisUC := report.NewFiliaisUseCase(filialRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DespesasUC: despesasUC,
		DREUC:      dreUC,
		PerdasUC:   perdasUC,
		CurvaUC:    curvaUC,
		MetasUC:    metasUC,
		RupturasUC: rupturasUC,
		FiliaisUC:  filiaisUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	// Shutdown gracioso: espera SIGINT/SIGTERM e encerra o Fiber com prazo.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("encerrando aplicação")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	addr := cfg.HTTP.Addr()
	log.Info().Str("addr", addr).Msg("servidor HTTP escutando")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("servidor HTTP")
	}
}
