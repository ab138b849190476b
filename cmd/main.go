package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"kubramarket/internal/caching"
	"kubramarket/internal/handlers"
	"kubramarket/internal/jobs"
	"kubramarket/internal/jobs/background"
	"kubramarket/internal/middleware"
	"kubramarket/internal/repositories"
	"kubramarket/internal/services"
	"kubramarket/pkg/database"
)

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("SESSION_SECRET environment variable is required")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	if err := minioSvc.EnsureBucketExists(context.Background(), "product-images"); err != nil {
		log.Printf("WARN: failed to ensure image bucket: %v", err)
	}

	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Repositories
	merchantRepo := repositories.NewMerchantRepo(pool)
	shopRepo := repositories.NewShopRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	rentalRepo := repositories.NewRentalRepo(pool)
	maintenanceRepo := repositories.NewMaintenanceRepo(pool)
	notificationRepo := repositories.NewNotificationRepo(pool)

	// Services
	authSvc := services.NewAuthService(merchantRepo, cacheSvc, sessionSecret)
	shopSvc := services.NewShopService(shopRepo)
	productSvc := services.NewProductService(productRepo, shopRepo, cacheSvc, minioSvc)
	notificationSvc := services.NewNotificationService(notificationRepo)
	orderSvc := services.NewOrderService(orderRepo, notificationSvc)
	rentalSvc := services.NewRentalService(rentalRepo, shopRepo, notificationSvc)
	maintenanceSvc := services.NewMaintenanceService(maintenanceRepo, shopRepo, notificationSvc)
	salesSvc := services.NewSalesService(orderRepo)
	dashboardSvc := services.NewDashboardService(orderRepo, productRepo, rentalRepo)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	shopHandlers := handlers.NewShopHandlers(shopSvc)
	productHandlers := handlers.NewProductHandlers(productSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	rentalHandlers := handlers.NewRentalHandlers(rentalSvc)
	maintenanceHandlers := handlers.NewMaintenanceHandlers(maintenanceSvc)
	notificationHandlers := handlers.NewNotificationHandlers(notificationSvc)
	salesHandlers := handlers.NewSalesHandlers(salesSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(dashboardSvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	e := echo.New()
	e.HideBanner = true
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowCredentials: true,
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
	}))

	e.GET("/health", healthHandlers.Live)
	e.GET("/health/ready", healthHandlers.Ready)

	api := e.Group("/api")
	api.POST("/auth/register", authHandlers.Register)
	api.POST("/auth/login", authHandlers.Login)

	session := api.Group("", middleware.SessionMiddleware(authSvc))
	session.POST("/auth/logout", authHandlers.Logout)
	session.GET("/auth/current-merchant", authHandlers.CurrentMerchant)

	session.GET("/shop", shopHandlers.Get)
	session.POST("/shop", shopHandlers.Create)
	session.PATCH("/shop", shopHandlers.Update)

	session.GET("/products", productHandlers.List)
	session.POST("/products", productHandlers.Create)
	session.GET("/products/low-stock", productHandlers.LowStock)
	session.GET("/products/:id", productHandlers.Get)
	session.PATCH("/products/:id", productHandlers.Update)
	session.DELETE("/products/:id", productHandlers.Delete)
	session.POST("/products/:id/image", productHandlers.UploadImage)

	session.GET("/orders", orderHandlers.List)
	session.POST("/orders", orderHandlers.Place)
	session.GET("/orders/:id", orderHandlers.Get)
	session.PATCH("/orders/:id", orderHandlers.UpdateStatus)

	session.GET("/rental", rentalHandlers.Current)
	session.POST("/rental/pay", rentalHandlers.Pay)

	session.GET("/maintenance-requests", maintenanceHandlers.List)
	session.POST("/maintenance-requests", maintenanceHandlers.Create)
	session.PATCH("/maintenance-requests/:id", maintenanceHandlers.UpdateStatus)

	session.GET("/notifications", notificationHandlers.List)
	session.PATCH("/notifications/:id", notificationHandlers.MarkRead)
	session.POST("/notifications/mark-all-read", notificationHandlers.MarkAllRead)

	session.GET("/sales/summary", salesHandlers.Summary)
	session.GET("/sales/orders", salesHandlers.Orders)

	session.GET("/dashboard", dashboardHandlers.Stats)

	if os.Getenv("ENABLE_JOBS") == "true" {
		alertSvc := jobs.NewAlertService(productRepo, rentalRepo, notificationSvc, cacheSvc)
		scheduler := background.NewJobScheduler(alertSvc)
		scheduler.Start()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				log.Printf("Failed to stop scheduler: %v", err)
			}
		}()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(e.Start(":" + port))
}
