package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tripweaver/config"
	"tripweaver/database"
	"tripweaver/handlers"
	"tripweaver/services"
)

func main() {
	// Load .env file (ignored in production where env vars are set directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found - using environment variables")
	}

	cfg := config.Load()

	database.InitDB()

	serp := services.NewSerpClient(cfg.SerpAPIKey)
	itineraries := services.NewItineraryClient(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)

	if cfg.SerpAPIKey == "" {
		log.Println("SERPAPI_API_KEY not set - flight/hotel search will use synthetic data")
	}
	if cfg.AIAPIKey == "" {
		log.Println("AI_GATEWAY_API_KEY not set - trip creation will fail until configured")
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.SetTrustedProxies([]string{"0.0.0.0/0"})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURLs,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	search := &handlers.SearchHandlers{Serp: serp}
	trips := &handlers.TripHandlers{Itineraries: itineraries}

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthHandler)

		api.POST("/search/flights", search.Flights)
		api.POST("/search/hotels", search.Hotels)

		api.GET("/links/flights", handlers.FlightLink)
		api.GET("/links/hotels", handlers.HotelLink)
		api.GET("/links/trip", handlers.TripLinksHandler)

		api.POST("/trips", trips.Create)
		api.GET("/trips", trips.List)
		api.GET("/trips/:id", trips.Get)
		api.DELETE("/trips/:id", trips.Delete)
		api.GET("/trips/:id/pdf", trips.PDF)
	}

	log.Printf("TripWeaver backend starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
