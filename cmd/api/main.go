package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lojazen/balcao/internal/application/auth"
	"github.com/lojazen/balcao/internal/application/backup"
	"github.com/lojazen/balcao/internal/application/sales"
	"github.com/lojazen/balcao/internal/application/usecase"
	"github.com/lojazen/balcao/internal/domain"
	"github.com/lojazen/balcao/internal/infrastructure/boltdb"
	infrapdf "github.com/lojazen/balcao/internal/infrastructure/pdf"
	httpRouter "github.com/lojazen/balcao/internal/interfaces/http"
	"github.com/lojazen/balcao/pkg/config"
	"github.com/lojazen/balcao/pkg/logger"
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
		Str("db", cfg.DB.Path).
		Msg("iniciando aplicação")

	store, err := boltdb.Open(cfg.DB.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir banco embarcado")
	}
	defer store.Close()

	// Verificação pós-migração: bucket ausente dispara a reinicialização
	// explícita em vez de seguir com um banco parcial.
	if err := store.VerifySchema(); err != nil {
		if !errors.Is(err, domain.ErrSchemaConsistency) {
			log.Fatal().Err(err).Msg("verificar esquema")
		}
		log.Warn().Err(err).Msg("esquema inconsistente, reaplicando migrações")
		if err := store.Reinit(); err != nil {
			log.Fatal().Err(err).Msg("reinicializar esquema")
		}
	}

	productRepo := boltdb.NewProductRepository(store)
	clientRepo := boltdb.NewClientRepository(store)
	vendorRepo := boltdb.NewVendorRepository(store)
	settingsRepo := boltdb.NewSettingsRepository(store)
	txRunner := boltdb.NewTxRunner(store)

	productUC := usecase.NewProductUseCase(productRepo, settingsRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	vendorUC := usecase.NewVendorUseCase(vendorRepo)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)

	// Fornecedor padrão do primeiro uso (idempotente).
	if _, err := vendorUC.EnsureDefault(); err != nil {
		log.Fatal().Err(err).Msg("semear fornecedor padrão")
	}

	checkoutUC := sales.NewCheckoutUseCase(txRunner, clientRepo)
	receiptGen := infrapdf.NewMarotoReceiptGenerator()
	reportUC := sales.NewReportUseCase(settingsRepo, receiptGen)
	backupUC := backup.NewUseCase(txRunner, productRepo, clientRepo, vendorRepo, settingsRepo)

	authUC, err := auth.NewUseCase(auth.Config{
		Username:   cfg.Auth.Username,
		Password:   cfg.Auth.Password,
		JWTSecret:  cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar autenticação")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Balcão API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		ClientUC:   clientUC,
		VendorUC:   vendorUC,
		SettingsUC: settingsUC,
		Checkout:   checkoutUC,
		Report:     reportUC,
		BackupUC:   backupUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
		StoreName:  cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
