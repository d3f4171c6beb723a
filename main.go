package main

import (
	"log"
	"os"

	"liga-api/config"
	_ "liga-api/docs" // Swagger docs
	"liga-api/packages/auth"
	"liga-api/packages/league"
	"liga-api/packages/league/cache"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Liga API
// @version         1.0
// @description     Two-club league API: match results, prize money, real-money debt settlement and statistics

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.ConnectDatabase()

	notifier := cache.NewNotifier()
	if err := notifier.Register(config.DB); err != nil {
		log.Fatal("Failed to register change notifier:", err)
	}

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	authModule := auth.NewModule(config.DB)
	authModule.SetupRoutes(r)

	leagueModule := league.NewModule(config.DB, notifier)
	leagueModule.SetupRoutes(r)
	leagueModule.StartCache()

	if err := leagueModule.StartScheduler(); err != nil {
		log.Fatal("Failed to start scheduler:", err)
	}
	defer leagueModule.StopScheduler()

	// Swagger endpoint
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", healthHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	r.Run(":" + port)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Message  string `json:"message" example:"Server is running"`
	Database string `json:"database" example:"connected"`
}

// @Summary Health Check
// @Description Check if the server is running and database is connected
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func healthHandler(c *gin.Context) {
	c.JSON(200, HealthResponse{
		Message:  "Server is running",
		Database: "connected",
	})
}
