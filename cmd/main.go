package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"zeny-ai-backend/internal/agents"
	"zeny-ai-backend/internal/api"
	"zeny-ai-backend/internal/api/routes"
	"zeny-ai-backend/internal/config"
	"zeny-ai-backend/internal/llm"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("invalid configuration: ", err)
	}

	// Connect to database
	db, err := config.ConnectDB(cfg)
	if err != nil {
		logrus.Fatal("failed to connect to database: ", err)
	}
	defer func() {
		if err := config.CloseDB(db); err != nil {
			logrus.Errorf("error closing database: %v", err)
		}
	}()

	// Run migrations
	if err := config.MigrateAllModels(db); err != nil {
		logrus.Fatal("failed to migrate database: ", err)
	}

	// One agent per type label for the process lifetime.
	agentCache := agents.NewCache(llm.Config{
		Provider: llm.Provider(cfg.LLMProvider),
		Model:    cfg.LLMModel,
		BaseURL:  cfg.LLMBaseURL,
		APIKey:   cfg.LLMAPIKey,
	})

	// Create and configure Fiber app
	app := api.NewServer()

	// Register routes
	routes.Register(app, routes.Deps{DB: db, Agents: agentCache})

	// Start server
	if err := api.StartServer(app, cfg.Port); err != nil {
		logrus.Fatal("failed to start server: ", err)
	}
}
