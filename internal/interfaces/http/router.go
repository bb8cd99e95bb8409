package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-tracker/internal/application/analytics"
	"github.com/jhoicas/inventario-tracker/internal/application/inventory"
	"github.com/jhoicas/inventario-tracker/internal/application/usecase"
	"github.com/jhoicas/inventario-tracker/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	ListMovements    *inventory.ListMovementsUseCase
	ReportUC         *analytics.ReportUseCase
	Log              *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ListMovements, log.Component("products"))
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/movements", productHandler.Movements)

	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.ListMovements, log.Component("movements"))
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, log.Component("reports"))
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/inventory.pdf", reportHandler.InventoryPDF)
}
