package main

import (
	"os"

	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/notify"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load("configs/.env"); err != nil {
		log.Info("No configs/.env file found or error loading it")
	}

	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	dbUser := envOr("DB_USER", "postgres")
	dbPassword := envOr("DB_PASSWORD", "postgres")
	dbName := envOr("DB_NAME", "postgres")
	dbSslMode := envOr("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.WithError(err).Fatal("Database connection failed")
	}
	log.Info("Connected to PostgreSQL successfully")

	// WebSocket hub for workflow notifications
	wsHub := websocket.NewHub(log)
	go wsHub.Run()
	notifier := notify.NewHubNotifier(wsHub, log)

	clock := service.NewSystemClock()

	// Repositories
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	itemRepo := repository.NewDirectoryItemRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	proformaRepo := repository.NewProformaRepository(db)
	poRepo := repository.NewPurchaseOrderRepository(db)
	productionRepo := repository.NewProductionRepository(db)
	stockRepo := repository.NewStockRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)

	// Services
	userService := service.NewUserService(userRepo)
	clientService := service.NewClientService(clientRepo)
	projectService := service.NewProjectService(projectRepo, clientRepo, sequenceRepo, txManager)
	directoryService := service.NewDirectoryService(itemRepo, projectRepo, txManager)
	pricingService := service.NewPricingService(itemRepo, productionRepo)
	quotationService := service.NewQuotationService(quotationRepo, projectRepo, itemRepo, sequenceRepo, txManager, clock)
	proformaService := service.NewProformaService(proformaRepo, projectRepo, poRepo, sequenceRepo, pricingService, txManager, notifier, clock)
	schedulerService := service.NewSchedulerService(productionRepo, proformaRepo, itemRepo, clock)
	paymentService := service.NewPaymentService(poRepo, schedulerService, txManager, notifier, clock)
	orderService := service.NewOrderService(poRepo)
	productionService := service.NewProductionService(productionRepo)
	qualityService := service.NewQualityService(productionRepo, stockRepo, poRepo, txManager, notifier)

	// Handlers
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(clientService)
	projectHandler := handler.NewProjectHandler(projectService)
	directoryHandler := handler.NewDirectoryHandler(directoryService, pricingService)
	quotationHandler := handler.NewQuotationHandler(quotationService)
	proformaHandler := handler.NewProformaHandler(proformaService)
	orderHandler := handler.NewOrderHandler(orderService, paymentService, schedulerService)
	productionHandler := handler.NewProductionHandler(productionService, qualityService)
	qualityHandler := handler.NewQualityHandler(qualityService)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	api := router.Group("/api")
	userHandler.RegisterRoutes(api)
	clientHandler.RegisterRoutes(api)
	projectHandler.RegisterRoutes(api)
	directoryHandler.RegisterRoutes(api)
	quotationHandler.RegisterRoutes(api)
	proformaHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)
	productionHandler.RegisterRoutes(api)
	qualityHandler.RegisterRoutes(api)

	port := envOr("PORT", "8080")
	log.WithField("port", port).Info("Server listening")
	if err := router.Run(":" + port); err != nil {
		log.WithError(err).Fatal("Server failed")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
