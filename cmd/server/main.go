package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"debatesim/config"
	"debatesim/internal/debate"
	"debatesim/routes"
	"debatesim/services"
	"debatesim/utils"
	"debatesim/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; it only carries the API key in development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Printf("Config file not loaded (%v), using defaults", err)
		cfg = config.Default()
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.ApiKey = key
	}

	// A missing key is not fatal: every turn then yields a System
	// diagnostic in the transcript instead.
	var generator debate.TextGenerator
	if gemini, err := services.NewGeminiGenerator(context.Background(), cfg.Gemini.ApiKey, cfg.Gemini.Model); err != nil {
		log.Printf("Gemini generation disabled: %v", err)
	} else {
		generator = gemini
	}

	gateway := debate.NewGateway(generator)
	manager := debate.NewManager(gateway, pacingConfig(cfg), cfg.Debate.MaxMessages)
	websocket.Setup(manager)

	router := setupRouter(cfg, manager)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func pacingConfig(cfg *config.Config) debate.PacingConfig {
	pacing := debate.DefaultPacingConfig()
	pacing.UserReplyDelay = time.Duration(cfg.Debate.UserReplyDelayMs) * time.Millisecond
	pacing.FallbackDelay = time.Duration(cfg.Debate.FallbackDelayMs) * time.Millisecond
	pacing.DefaultSpeedIndex = cfg.Debate.DefaultSpeedIndex
	if len(cfg.Debate.Speeds) > 0 {
		speeds := make([]debate.Speed, len(cfg.Debate.Speeds))
		for i, s := range cfg.Debate.Speeds {
			speeds[i] = debate.Speed{Label: s.Label, Delay: time.Duration(s.DelayMs) * time.Millisecond}
		}
		pacing.Speeds = speeds
	}
	return pacing
}

func setupRouter(cfg *config.Config, manager *debate.Manager) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	routes.Setup(router, manager, utils.SeedTopics())
	router.GET("/ws/:id", websocket.DebateStreamHandler)

	return router
}
