package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-grocery-pos/internal/handler"
	"go-grocery-pos/internal/middleware"
	"go-grocery-pos/internal/model"
	"go-grocery-pos/internal/repository"
	"go-grocery-pos/internal/seed"
	"go-grocery-pos/internal/service"
	"go-grocery-pos/internal/ws"
	"go-grocery-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Unit{},
		&model.Product{},
		&model.ExchangeRate{},
		&model.PriceUpdateLog{},
		&model.ShortageItem{},
		&model.Transaction{},
		&model.TransactionItem{},
		&model.User{},
		&model.Privilege{},
		&model.Role{},
	)

	// 3. Seed roles/admin and the demo catalog on an empty store
	if err := seed.Run(db); err != nil {
		log.Printf("Warning: seeding failed: %v", err)
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	unitRepo := repository.NewUnitRepo(db)
	rateRepo := repository.NewRateRepo(db)
	shortageRepo := repository.NewShortageRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	catalogService := service.NewCatalogService(productRepo, unitRepo, rateRepo, shortageRepo, db, wsHub)
	unitService := service.NewUnitService(unitRepo, productRepo)
	rateService := service.NewRateService(rateRepo, productRepo, db, wsHub)
	shortageService := service.NewShortageService(shortageRepo, productRepo, rateRepo, db, wsHub)
	txService := service.NewTransactionService(txRepo, productRepo, rateRepo, db, wsHub)
	dashService := service.NewDashboardService(txRepo, productRepo)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)

	catalogHandler := handler.NewCatalogHandler(catalogService)
	unitHandler := handler.NewUnitHandler(unitService)
	rateHandler := handler.NewRateHandler(rateService)
	shortageHandler := handler.NewShortageHandler(shortageService)
	txHandler := handler.NewTransactionHandler(txService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Grocery POS v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stats", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetStockMovement)
	protected.Get("/dashboard/financial", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetFinancialSummary)

	// Product catalog
	protected.Get("/products", catalogHandler.GetProducts)
	protected.Get("/products/shortcut/:number", catalogHandler.GetByShortcut)
	protected.Get("/products/:id", catalogHandler.GetProduct)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), catalogHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("product:update"), catalogHandler.UpdateProduct)
	protected.Patch("/products/:id/quantity", middleware.RequirePrivilege("product:update"), catalogHandler.UpdateQuantity)
	protected.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), catalogHandler.DeleteProduct)

	// Measurement units
	protected.Get("/units", unitHandler.GetUnits)
	protected.Post("/units", middleware.RequirePrivilege("unit:create"), unitHandler.CreateUnit)
	protected.Delete("/units/:id", middleware.RequirePrivilege("unit:delete"), unitHandler.DeleteUnit)

	// Exchange rate + price log
	protected.Get("/exchange-rate", middleware.RequirePrivilege("rate:view"), rateHandler.GetCurrentRate)
	protected.Get("/exchange-rate/history", middleware.RequirePrivilege("rate:view"), rateHandler.GetRateHistory)
	protected.Put("/exchange-rate", middleware.RequirePrivilege("rate:update"), rateHandler.SetExchangeRate)
	protected.Get("/price-logs", middleware.RequirePrivilege("rate:view"), rateHandler.GetPriceLogs)

	// Shortage tracking
	protected.Get("/shortages", middleware.RequirePrivilege("shortage:view"), shortageHandler.GetShortages)
	protected.Get("/shortages/estimate", middleware.RequirePrivilege("shortage:view"), shortageHandler.GetResupplyEstimate)
	protected.Post("/shortages", middleware.RequirePrivilege("shortage:manage"), shortageHandler.AddManual)
	protected.Post("/shortages/:id/supplied", middleware.RequirePrivilege("shortage:manage"), shortageHandler.MarkSupplied)
	protected.Delete("/shortages/:id", middleware.RequirePrivilege("shortage:manage"), shortageHandler.Remove)

	// Sales and purchases
	protected.Post("/sales", middleware.RequirePrivilege("sale:create"), txHandler.CreateSale)
	protected.Post("/purchases", middleware.RequirePrivilege("purchase:create"), txHandler.CreatePurchase)
	protected.Get("/transactions", middleware.RequirePrivilege("transaction:view"), txHandler.GetTransactions)
	protected.Get("/transactions/:id", middleware.RequirePrivilege("transaction:view"), txHandler.GetTransaction)

	// User management
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Roles and privileges
	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
		}
		return c.JSON(privileges)
	})

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
