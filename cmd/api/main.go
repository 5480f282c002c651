package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	_ "clinic-backend/api/swagger" // swagger docs
	"clinic-backend/internal/database"
	"clinic-backend/internal/handler"
	"clinic-backend/internal/repository"
	"clinic-backend/internal/service"
	"clinic-backend/internal/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const refreshTokenTTL = 7 * 24 * time.Hour

// @title           Clinic Management API
// @version         1.0
// @description     Clinic management backend: users, roles and medical specialties behind JWT auth.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dsn := buildDSN()
	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	issuer := token.NewIssuer(jwtSecret(), accessTokenTTL(), refreshTokenTTL)

	// Repository -> Service -> Handler
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	specialtyRepo := repository.NewSpecialtyRepository(db)
	txManager := repository.NewTransactionManager(db)

	authService := service.NewAuthService(userRepo, refreshTokenRepo, issuer)
	roleService := service.NewRoleService(roleRepo)
	userService := service.NewUserService(userRepo, roleRepo, authService, txManager)
	specialtyService := service.NewSpecialtyService(specialtyRepo)

	// Bootstrap: seed the closed role set, then the default admin account.
	// Failures are logged and the process continues; a rerun after fixing
	// the cause completes the seeding.
	ctx := context.Background()
	if err := roleService.SeedDefaultRoles(ctx); err != nil {
		log.Println("WARNING: Failed to seed default roles:", err)
	}
	if err := userService.EnsureDefaultAdmin(ctx); err != nil {
		log.Println("WARNING: Failed to create default admin account:", err)
	}

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, issuer)
	profileHandler := handler.NewProfileHandler(userService, issuer)
	roleHandler := handler.NewRoleHandler(roleService, issuer)
	specialtyHandler := handler.NewSpecialtyHandler(specialtyService, issuer)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins()
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	api := router.Group("/api")
	authHandler.RegisterRoutes(api)
	userHandler.RegisterRoutes(api)
	profileHandler.RegisterRoutes(api)
	roleHandler.RegisterRoutes(api)
	specialtyHandler.RegisterRoutes(api)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func buildDSN() string {
	get := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	return "postgres://" + get("DB_USER", "postgres") + ":" + get("DB_PASSWORD", "postgres") +
		"@" + get("DB_HOST", "localhost") + ":" + get("DB_PORT", "5432") +
		"/" + get("DB_NAME", "clinic") + "?sslmode=" + get("DB_SSLMODE", "disable")
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			log.Fatal("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only. DO NOT use in production.
	}
	return []byte(secret)
}

func accessTokenTTL() time.Duration {
	if v := os.Getenv("ACCESS_TOKEN_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
		log.Println("WARNING: Invalid ACCESS_TOKEN_TTL_MINUTES, using default of 60")
	}
	return time.Hour
}

func allowedOrigins() []string {
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		return []string{v}
	}
	return []string{"http://localhost:5173", "http://127.0.0.1:5173"}
}
