package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/joho/godotenv"

	"github.com/glucolife/glucolife-backend/internal/config"
	"github.com/glucolife/glucolife-backend/internal/database"
	"github.com/glucolife/glucolife-backend/internal/handlers"
	"github.com/glucolife/glucolife-backend/internal/middleware"
	"github.com/glucolife/glucolife-backend/internal/routes"
	"github.com/glucolife/glucolife-backend/internal/services"
	"github.com/glucolife/glucolife-backend/internal/store"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// Connect to Redis (primary store for all app state)
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Connect to PostgreSQL (activity analytics)
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Log connection attempt (without showing password)
	log.Printf("Connecting to MongoDB...")
	if cfg.MongoURI != "" {
		// Mask password in log for security
		maskedURI := cfg.MongoURI
		if strings.Contains(maskedURI, "@") {
			parts := strings.Split(maskedURI, "@")
			if len(parts) > 0 && strings.Contains(parts[0], ":") {
				userPass := strings.Split(parts[0], ":")
				if len(userPass) >= 3 {
					maskedURI = strings.Replace(maskedURI, userPass[2], "***", 1)
				}
			}
		}
		log.Printf("MongoDB URI: %s", maskedURI)
	}

	// Connect to MongoDB (feedback storage)
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	// Initialize Cloudinary service
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		if err := handlers.InitCloudinaryService(cfg); err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("Meal photo uploads will not be available")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Meal photo uploads will not be available")
	}

	if cfg.InsightAPIKey == "" {
		log.Println("⚠️  WARNING: INSIGHT_API_KEY not set. Meal comparison will use the fallback text.")
	}

	// Change-notification bus, bridged over Redis pub/sub
	bus := services.NewBus()
	bus.StartBridge(context.Background(), database.RedisClient)

	// Wire handlers to the Redis-backed store
	handlers.Init(cfg, store.NewRedisStore(database.RedisClient), bus)

	// Setup router
	r := chi.NewRouter()

	// Custom CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r)

	// Log registered routes for debugging
	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/auth/signup")
	log.Println("  POST /api/auth/signin")
	log.Println("  GET  /api/auth/me")
	log.Println("  POST /api/auth/signout")
	log.Println("  GET  /api/meals")
	log.Println("  POST /api/meals")
	log.Println("  DELETE /api/meals/{id}")
	log.Println("  POST /api/meals/{id}/rating")
	log.Println("  POST /api/meals/log")
	log.Println("  GET  /api/meals/compare")
	log.Println("  GET  /api/community/posts")
	log.Println("  POST /api/community/posts")
	log.Println("  POST /api/community/react")
	log.Println("  GET  /api/articles")
	log.Println("  POST /api/feedback")
	log.Println("  GET  /ws/events")

	log.Printf("🚀 GlucoLife backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
