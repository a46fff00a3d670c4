// In file: cmd/assistant/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rahul-ks/vedic-assistant/internal/llm"
	"github.com/rahul-ks/vedic-assistant/internal/tools"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// main is the entry point for the application.
// Its primary role is the "Composition Root": it loads configuration,
// initializes all services, injects dependencies, and starts the server.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	buildInfo := GetBuildInfo()
	log.Printf("🚀 Starting Vedic Assistant | Version: %s | Commit: %s", buildInfo.Version, buildInfo.GitCommit)

	// 1. LOAD CONFIGURATION
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}
	log.Println("✅ Configuration loaded.")

	// 2. INITIALIZE SERVICES
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Fatalf("❌ FATAL: Could not connect to Redis: %v", err)
		}
		log.Println("✅ Redis connected, tool-choice cache enabled.")
	} else {
		log.Println("ℹ️ REDIS_ADDR not set, tool-choice cache disabled.")
	}

	completionClients, err := initializeCompletionClients(cfg)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}

	dispatcher := tools.NewDispatcher(
		tools.NewTavilySearch(cfg.TavilyAPIKey),
		tools.NewVedicRetrieval(cfg.RAGEndpoint, cfg.RAGAPIKey),
	)
	orchestrator := llm.NewOrchestrator(dispatcher, llm.NewToolChoiceCache(rdb), cfg.Models.LightweightModelPrefixes)

	chatHandler := NewChatHandler(completionClients, orchestrator, cfg)
	log.Println("✅ All services initialized.")

	// 3. SETUP AND RUN THE WEB SERVER
	gin.SetMode(os.Getenv("GIN_MODE"))
	engine := gin.Default()
	v1 := engine.Group("/api/v1")
	{
		v1.POST("/chat", chatHandler.HandleChat)
	}

	srv := &http.Server{Addr: fmt.Sprintf(":%s", os.Getenv("PORT")), Handler: engine}
	runServerWithGracefulShutdown(srv)
}

// initializeCompletionClients creates instances of the completion clients
// based on config. Models that do not match a hosted provider prefix are
// assumed to be local and served through Ollama.
func initializeCompletionClients(cfg *AppConfig) (map[string]llm.CompletionClient, error) {
	clients := make(map[string]llm.CompletionClient)
	var err error
	for _, modelID := range cfg.EnabledModels {
		var client llm.CompletionClient
		switch {
		case strings.HasPrefix(modelID, "gpt"):
			client, err = llm.NewOpenAIClient(cfg.APIKeys[modelID])
		case strings.HasPrefix(modelID, "gemini"):
			client, err = llm.NewGeminiClient(cfg.APIKeys[modelID], modelID)
		default:
			client = llm.NewOllamaClient(cfg.OllamaBaseURL)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create client for %s: %w", modelID, err)
		}
		clients[modelID] = client
	}
	log.Printf("✅ %d completion clients initialized.", len(clients))
	return clients, nil
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server) {
	go func() {
		log.Printf("👂 Assistant is listening on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Listen error: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server shutdown failed:", err)
	}

	log.Println("👋 Server exited gracefully.")
}
