package main

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"

	"catalogmart/internal/caching"
	"catalogmart/internal/config"
	"catalogmart/internal/handlers"
	"catalogmart/internal/importer"
	"catalogmart/internal/jobs"
	"catalogmart/internal/jobs/background"
	"catalogmart/internal/middleware"
	"catalogmart/internal/repositories"
	"catalogmart/internal/services"
	"catalogmart/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log := logger.Get()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		log.Warn("JWT_SECRET not set, using generated secret")
	}

	// Repositories
	attributeRepo := repositories.NewAttributeRepo(pool)
	familyRepo := repositories.NewFamilyRepo(pool)
	categoryRepo := repositories.NewCategoryRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	productAttributeRepo := repositories.NewProductAttributeRepo(pool)

	// Cache and object storage
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	stagingSvc, err := services.NewStagingService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatal("failed to initialize staging service", zap.Error(err))
	}
	if err := stagingSvc.EnsureBucket(context.Background(), cfg.StagingBucket); err != nil {
		log.Warn("failed to ensure staging bucket", zap.Error(err))
	}

	// Services
	statusSvc := services.NewStatusService(productRepo, familyRepo, productAttributeRepo)
	inheritanceSvc := services.NewInheritanceService(productRepo, productAttributeRepo, statusSvc)
	productSvc := services.NewProductService(productRepo, productAttributeRepo, attributeRepo, categoryRepo, statusSvc, inheritanceSvc, cacheSvc)
	familySvc := services.NewFamilyService(familyRepo, attributeRepo, productRepo, productAttributeRepo)
	attributeSvc := services.NewAttributeService(attributeRepo)

	// Import pipeline
	clock := clockwork.NewRealClock()
	lookupCache := importer.NewLookupCache(clock, cfg.LookupCacheTTL)
	resolver := importer.NewFamilyResolver(familyRepo, lookupCache)
	validator := importer.NewRowValidator(attributeRepo, familyRepo, categoryRepo, lookupCache)
	broker := importer.NewProgressBroker(cacheSvc, clock, cfg.SessionRetention)
	catalogImporter := importer.NewImporter(productRepo, productAttributeRepo, resolver, validator, statusSvc, inheritanceSvc, broker, cfg.ImportBatchSize)

	marketplaceExporter := jobs.NewMarketplaceExporter(productRepo, productAttributeRepo, familyRepo, stagingSvc, cfg.StagingBucket)

	// Background housekeeping
	scheduler, err := background.NewJobScheduler(broker, lookupCache, marketplaceExporter, cfg.MarketplaceSyncEvery)
	if err != nil {
		log.Fatal("failed to create job scheduler", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Handlers
	productHandlers := handlers.NewProductHandlers(productSvc, familySvc)
	familyHandlers := handlers.NewFamilyHandlers(familySvc)
	attributeHandlers := handlers.NewAttributeHandlers(attributeSvc)
	importHandlers := handlers.NewImportHandlers(catalogImporter, broker, stagingSvc, cfg.StagingBucket)
	marketplaceHandlers := handlers.NewMarketplaceHandlers(marketplaceExporter)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	// API routes
	v1 := e.Group("/v1")

	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(middleware.JWTConfig(jwtSecret)))

	// Product routes
	protected.GET("/products", productHandlers.ListProducts)
	protected.POST("/products", productHandlers.CreateProduct)
	protected.GET("/products/search", productHandlers.SearchProducts)
	protected.GET("/products/:id", productHandlers.GetProductByID)
	protected.PUT("/products/:id", productHandlers.UpdateProduct)
	protected.DELETE("/products/:id", productHandlers.DeleteProduct)
	protected.DELETE("/products/:id/permanent", productHandlers.PurgeProduct)
	protected.GET("/products/:id/variants", productHandlers.ListVariants)
	protected.PUT("/products/:id/parent", productHandlers.SetParent)
	protected.DELETE("/products/:id/parent", productHandlers.ClearParent)
	protected.GET("/products/:id/attributes", productHandlers.ListAttributeValues)
	protected.PUT("/products/:id/attributes", productHandlers.SetAttributeValue)
	protected.GET("/products/:id/completeness", productHandlers.GetCompleteness)

	// Family routes
	protected.GET("/families", familyHandlers.ListFamilies)
	protected.POST("/families", familyHandlers.CreateFamily)
	protected.GET("/families/:id", familyHandlers.GetFamilyByID)
	protected.POST("/families/:id/attributes", familyHandlers.AddFamilyAttribute)

	// Attribute routes
	protected.GET("/attributes", attributeHandlers.ListAttributes)
	protected.POST("/attributes", attributeHandlers.CreateAttribute)
	protected.GET("/attributes/:id", attributeHandlers.GetAttributeByID)

	// Import routes
	protected.POST("/imports", importHandlers.RunImport)
	protected.POST("/imports/async", importHandlers.RunImportAsync)
	protected.GET("/imports/:sessionId/progress", importHandlers.GetImportProgress)

	// Marketplace feed
	protected.GET("/marketplace/export", marketplaceHandlers.ExportCatalog)
	protected.GET("/marketplace/updates", marketplaceHandlers.PullUpdates)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
