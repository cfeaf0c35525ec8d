package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"converso-backend/internal/cache"
	"converso-backend/internal/config"
	"converso-backend/internal/database"
	"converso-backend/internal/handlers"
	"converso-backend/internal/repository"
	"converso-backend/internal/router"
	"converso-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Converso Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Step 4: Initialize Redis (optional message-list cache) ────
	var messageCache *cache.MessageCache
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		messageCache = cache.NewMessageCache(redisClient)
		log.Println("✓ Redis connected (message cache enabled)")
	} else {
		log.Println("  Redis not configured, message cache disabled")
	}

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	messageRepo := repository.NewMessageRepo(pool)

	// ──── Initialize Services ────
	accountService := services.NewAccountService(userRepo, cfg.BcryptCost)
	ollamaService := services.NewOllamaService(
		cfg.OllamaURL,
		cfg.OllamaModel,
		time.Duration(cfg.OllamaTimeoutSeconds)*time.Second,
	)
	log.Printf("✓ Generation client initialized (model %s, timeout %ds)", cfg.OllamaModel, cfg.OllamaTimeoutSeconds)

	// ──── Initialize Handlers ────
	usersHandler := handlers.NewUsersHandler(accountService, userRepo, messageRepo)
	messagesHandler := handlers.NewMessagesHandler(messageRepo, messageCache)
	chatHandler := handlers.NewChatHandler(messageRepo, ollamaService)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(usersHandler, messagesHandler, chatHandler)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// No write timeout: chat responses can take as long as the
		// generation timeout allows.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Converso Backend ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
