package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/ripplr-app/backend/internal/engine"
	"github.com/ripplr-app/backend/internal/handlers"
	"github.com/ripplr-app/backend/internal/middleware"
	"github.com/ripplr-app/backend/internal/models"
	"github.com/ripplr-app/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.Account{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	mongoDB := mgClient.Database("ripplr")
	userRepo := repositories.NewMongoUserRepository(mongoDB)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	accountRepo := repositories.NewPostgresAccountRepository(pgdb)

	// --- Initialize Engine ---
	// The engine is the only code path allowed to mutate the
	// denormalized relationship arrays.
	relationships := engine.NewRelationships(userRepo, postRepo)
	recommender := engine.NewRecommender(userRepo)
	content := engine.NewContent(userRepo, postRepo)
	cascade := engine.NewCascade(userRepo, postRepo, accountRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(accountRepo, userRepo)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())

	userHandler := handlers.NewUserHandler(userRepo, relationships, recommender, cascade)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	followHandler := handlers.NewFollowHandler(relationships)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	postHandler := handlers.NewPostHandler(postRepo, userRepo, content, cascade)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	likeHandler := handlers.NewLikeHandler(relationships)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	log.Println("All routes configured.")
}
