package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lojazen/balcao/internal/application/auth"
	"github.com/lojazen/balcao/internal/application/backup"
	"github.com/lojazen/balcao/internal/application/sales"
	"github.com/lojazen/balcao/internal/application/usecase"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	ClientUC   *usecase.ClientUseCase
	VendorUC   *usecase.VendorUseCase
	SettingsUC *usecase.SettingsUseCase
	Checkout   *sales.CheckoutUseCase
	Report     *sales.ReportUseCase
	BackupUC   *backup.UseCase
	AuthUC     *auth.UseCase
	JWTSecret  string
	StoreName  string
}

// Router registra as rotas da API. Tudo exceto o login exige Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rotas protegidas
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/categories", productHandler.Categories)
	products.Get("/barcode/:code", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	vendors := protected.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Post("/", vendorHandler.Create)
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.GetByID)
	vendors.Put("/:id", vendorHandler.Update)
	vendors.Delete("/:id", vendorHandler.Delete)

	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.Checkout, deps.Report, deps.StoreName)
	salesGroup.Post("/", saleHandler.Checkout)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/summary", saleHandler.Summary)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	settings := protected.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/stock-alerts", settingsHandler.GetStockAlerts)
	settings.Put("/stock-alerts", settingsHandler.SetStockAlerts)
	settings.Get("/ignore-stock", settingsHandler.GetIgnoreStock)
	settings.Put("/ignore-stock", settingsHandler.SetIgnoreStock)
	settings.Get("/integrations", settingsHandler.GetIntegrations)
	settings.Put("/integrations", settingsHandler.SetIntegrations)

	backupGroup := protected.Group("/backup")
	backupHandler := NewBackupHandler(deps.BackupUC)
	backupGroup.Get("/", backupHandler.Export)
	backupGroup.Post("/restore", backupHandler.Restore)
}
