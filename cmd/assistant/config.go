// In file: cmd/assistant/config.go
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ModelConfig is the model metadata loaded from config.yaml.
type ModelConfig struct {
	// DefaultModel is used when a chat request names no model.
	DefaultModel string `yaml:"default_model"`
	// LightweightModelPrefixes identifies lightweight/local model variants,
	// which get a smaller default search result budget.
	LightweightModelPrefixes []string `yaml:"lightweight_model_prefixes"`
}

// AppConfig holds all configuration for the assistant, loaded from the
// environment and config.yaml.
type AppConfig struct {
	EnabledModels []string
	APIKeys       map[string]string
	OllamaBaseURL string
	TavilyAPIKey  string
	RAGEndpoint   string
	RAGAPIKey     string
	RedisAddr     string
	Models        *ModelConfig
}

// LoadConfig loads configuration from a .env file, environment variables, and
// config.yaml.
//
// Tool credentials (Tavily key, retrieval endpoint and key) are deliberately
// not validated here: per the gateway's error model, configuration absence
// manifests as an adapter failure at call time, not eagerly.
func LoadConfig() (*AppConfig, error) {
	// Only attempt to load a .env file in local development. In Docker
	// (where GIN_MODE="release"), configuration is provided directly as
	// environment variables.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("WARNING: No .env file found for local development.")
		}
	}

	cfg := &AppConfig{
		APIKeys:       make(map[string]string),
		OllamaBaseURL: os.Getenv("OLLAMA_BASE_URL"),
		TavilyAPIKey:  os.Getenv("TAVILY_API_KEY"),
		RAGEndpoint:   os.Getenv("VEDIC_RAG_ENDPOINT"),
		RAGAPIKey:     os.Getenv("VEDIC_RAG_API_KEY"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
	}

	enabledModelsStr := os.Getenv("ENABLED_MODELS")
	if enabledModelsStr == "" {
		return nil, fmt.Errorf("ENABLED_MODELS environment variable is not set")
	}
	cfg.EnabledModels = strings.Split(enabledModelsStr, ",")

	for _, modelID := range cfg.EnabledModels {
		var apiKey string
		switch {
		case strings.HasPrefix(modelID, "gpt"):
			apiKey = os.Getenv("OPENAI_API_KEY")
		case strings.HasPrefix(modelID, "gemini"):
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey != "" {
			cfg.APIKeys[modelID] = apiKey
		}
	}

	modelConfigFile, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}
	if err := yaml.Unmarshal(modelConfigFile, &cfg.Models); err != nil {
		return nil, fmt.Errorf("failed to parse config.yaml: %w", err)
	}
	if cfg.Models.DefaultModel == "" {
		cfg.Models.DefaultModel = cfg.EnabledModels[0]
	}

	return cfg, nil
}
