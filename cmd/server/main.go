package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/SoufianeJm/mooja/internal/config"
	"github.com/SoufianeJm/mooja/internal/database"
	"github.com/SoufianeJm/mooja/internal/handlers"
	"github.com/SoufianeJm/mooja/internal/middleware"
	"github.com/SoufianeJm/mooja/internal/repository"
	"github.com/SoufianeJm/mooja/internal/services"
	"github.com/SoufianeJm/mooja/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// One storage client for the whole process
	store, err := storage.NewS3Storage(cfg)
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}

	// Initialize repositories
	db := database.GetDB()
	orgRepo := repository.NewOrganizationRepository(db)
	inviteRepo := repository.NewInviteCodeRepository(db)
	protestRepo := repository.NewProtestRepository(db)

	// Initialize services
	tokenService := services.NewTokenService(cfg)
	orgService := services.NewOrganizationService(orgRepo, inviteRepo)
	authService := services.NewAuthService(orgService, orgRepo, tokenService)
	protestService := services.NewProtestService(protestRepo)
	uploadService := services.NewUploadService(store)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, orgService)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	protestHandler := handlers.NewProtestHandler(protestService)
	uploadHandler := handlers.NewUploadHandler(uploadService)

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.RequestContext())

	requireAuth := middleware.RequireOrgAuth(tokenService, orgService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Mooja API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Organization routes
		orgs := api.Group("/orgs")
		{
			orgs.POST("/register", orgHandler.Register)
			orgs.POST("/verify-code", orgHandler.VerifyCode)
			orgs.POST("/verify-with-code", requireAuth, orgHandler.VerifyWithCode)
			orgs.POST("/verify", orgHandler.RequestVerification)
			orgs.GET("", orgHandler.ListByCountry)
			orgs.GET("/status", orgHandler.UsernameStatus)
			orgs.GET("/applications/:id/status", orgHandler.ApplicationStatus)
			orgs.GET("/by-username", orgHandler.GetByUsername)
		}

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/org/register", authHandler.Register)
			auth.POST("/org/register/by-application/:applicationId", authHandler.RegisterByApplicationID)
			auth.POST("/org/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/org/profile", requireAuth, authHandler.Profile)
			auth.POST("/org/activate", requireAuth, authHandler.Activate)
		}

		// Protest routes
		protests := api.Group("/protests")
		{
			protests.POST("", requireAuth, protestHandler.Create)
			protests.GET("", protestHandler.List)
			protests.GET("/:id", protestHandler.Get)
			protests.DELETE("/:id", requireAuth, protestHandler.Delete)
		}

		// Upload routes
		api.POST("/upload/image", requireAuth, uploadHandler.UploadImage)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
