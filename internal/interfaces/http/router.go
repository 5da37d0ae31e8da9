package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/restoqly/restopos-api/internal/application/auth"
	"github.com/restoqly/restopos-api/internal/application/inventory"
	"github.com/restoqly/restopos-api/internal/application/sales"
	"github.com/restoqly/restopos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LotUC            *inventory.LotUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	QueryUC          *inventory.QueryUseCase
	TransferUC       *inventory.TransferUseCase
	AdjustmentUC     *inventory.AdjustmentUseCase
	WasteUC          *inventory.WasteUseCase
	CreateSale       *sales.CreateSaleUseCase
	CancelSale       *sales.CancelSaleUseCase
	ReceiptUC        *sales.ReceiptUseCase
	SessionUC        *sales.SessionUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	warehouseStaff := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	posStaff := RequireRole(entity.RoleAdmin, entity.RoleCajero)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Inventario: lotes y stock
	invGroup := protected.Group("/inventory")
	lotHandler := NewLotHandler(deps.LotUC)
	invGroup.Post("/lots", warehouseStaff, lotHandler.CreateLot)
	invGroup.Get("/lots", lotHandler.ListAvailableLots)
	invGroup.Post("/lots/mark-expired", warehouseStaff, lotHandler.MarkExpiredLots)
	invGroup.Get("/stock", lotHandler.GetStockSummary)

	// Inventario: movimientos
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.QueryUC)
	invGroup.Post("/movements", warehouseStaff, movementHandler.RegisterMovement)
	invGroup.Get("/movements", movementHandler.ListMovements)
	invGroup.Get("/lots/:id/movements", movementHandler.ListLotMovements)

	// Inventario: traslados
	transferHandler := NewTransferHandler(deps.TransferUC, deps.QueryUC)
	invGroup.Post("/transfers", warehouseStaff, transferHandler.CreateTransfer)
	invGroup.Get("/transfers", transferHandler.ListTransfers)
	invGroup.Get("/transfers/:id", transferHandler.GetTransfer)

	// Inventario: ajustes (aplicar es solo admin)
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	invGroup.Post("/adjustments", warehouseStaff, adjustmentHandler.CreateAdjustment)
	invGroup.Get("/adjustments", adjustmentHandler.ListAdjustments)
	invGroup.Get("/adjustments/:id", adjustmentHandler.GetAdjustment)
	invGroup.Post("/adjustments/:id/approve", adminOnly, adjustmentHandler.ApproveAdjustment)
	invGroup.Post("/adjustments/:id/apply", adminOnly, adjustmentHandler.ApplyAdjustment)
	invGroup.Post("/adjustments/:id/cancel", warehouseStaff, adjustmentHandler.CancelAdjustment)

	// Inventario: mermas
	wasteHandler := NewWasteHandler(deps.WasteUC)
	invGroup.Post("/waste", warehouseStaff, wasteHandler.RecordWaste)
	invGroup.Get("/waste", wasteHandler.ListWaste)

	// Punto de venta
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.CancelSale, deps.ReceiptUC)
	salesGroup.Post("/", posStaff, saleHandler.CreateSale)
	salesGroup.Get("/:id", saleHandler.GetSale)
	salesGroup.Post("/:id/cancel", posStaff, saleHandler.CancelSale)
	salesGroup.Get("/:id/receipt", saleHandler.GetReceipt)

	// Directorio de bodegas y cajas
	directoryHandler := NewDirectoryHandler(deps.QueryUC)
	protected.Get("/warehouses", directoryHandler.ListWarehouses)
	protected.Get("/cash-registers", directoryHandler.ListCashRegisters)

	// Sesiones de caja
	sessions := protected.Group("/sessions")
	sessionHandler := NewSessionHandler(deps.SessionUC)
	sessions.Post("/open", posStaff, sessionHandler.OpenSession)
	sessions.Post("/:id/close", posStaff, sessionHandler.CloseSession)
	sessions.Get("/:id", sessionHandler.GetSession)
	sessions.Get("/:id/sales", saleHandler.ListSessionSales)
}
