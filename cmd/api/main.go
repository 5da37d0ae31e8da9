package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/restoqly/restopos-api/internal/application/auth"
	"github.com/restoqly/restopos-api/internal/application/inventory"
	"github.com/restoqly/restopos-api/internal/application/sales"
	infracache "github.com/restoqly/restopos-api/internal/infrastructure/cache"
	infrapdf "github.com/restoqly/restopos-api/internal/infrastructure/pdf"
	"github.com/restoqly/restopos-api/internal/infrastructure/postgres"
	httpRouter "github.com/restoqly/restopos-api/internal/interfaces/http"
	"github.com/restoqly/restopos-api/pkg/config"
	"github.com/restoqly/restopos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché de resumen de stock: Redis si está configurado, noop si no.
	var stockCache inventory.StockSummaryCache = infracache.NewNoopStockCache()
	if cfg.Redis.Addr != "" {
		redisClient, err := infracache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		stockCache = infracache.NewRedisStockCache(redisClient)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de stock sobre Redis")
	}

	// Repos de lectura atados al pool; los de escritura viajan dentro del TxRunner.
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	registerRepo := postgres.NewCashRegisterRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	wasteRepo := postgres.NewWasteRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)

	txRunner := postgres.NewTxRunner(pool)

	// Inventario
	lotUC := inventory.NewLotUseCase(lotRepo, productRepo, warehouseRepo, stockCache)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, productRepo, warehouseRepo)
	queryUC := inventory.NewQueryUseCase(movementRepo, transferRepo, warehouseRepo, registerRepo)
	transferUC := inventory.NewTransferUseCase(txRunner, warehouseRepo)
	adjustmentUC := inventory.NewAdjustmentUseCase(txRunner, adjustmentRepo, lotRepo, warehouseRepo, userRepo)
	wasteUC := inventory.NewWasteUseCase(txRunner, wasteRepo, productRepo, warehouseRepo)

	// Punto de venta
	defaultTaxRate := decimal.NewFromFloat(cfg.POS.DefaultTaxRate)
	diffThreshold := decimal.NewFromFloat(cfg.POS.CashDiffThreshold)
	createSaleUC := sales.NewCreateSaleUseCase(
		txRunner.Sales(), sessionRepo, registerRepo, productRepo, userRepo, lotRepo, defaultTaxRate,
	)
	cancelSaleUC := sales.NewCancelSaleUseCase(txRunner.Sales(), saleRepo, movementRepo, userRepo)
	sessionUC := sales.NewSessionUseCase(sessionRepo, registerRepo, userRepo, log, diffThreshold)
	receiptGenerator := infrapdf.NewReceiptGenerator(cfg.App.Name, "")
	receiptUC := sales.NewReceiptUseCase(saleRepo, productRepo, receiptGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "RestoPOS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LotUC:            lotUC,
		RegisterMovement: registerMovementUC,
		QueryUC:          queryUC,
		TransferUC:       transferUC,
		AdjustmentUC:     adjustmentUC,
		WasteUC:          wasteUC,
		CreateSale:       createSaleUC,
		CancelSale:       cancelSaleUC,
		ReceiptUC:        receiptUC,
		SessionUC:        sessionUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
