package main

import (
	"flag"
	"fmt"
	"os"

	"linguachat/ai"
	"linguachat/auth"
	"linguachat/db"
	"linguachat/ui"
	"linguachat/utils"
)

var (
	version = "0.1.0"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("LinguaChat v%s\n", version)
		os.Exit(0)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.GetLogPath())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting LinguaChat v%s", version)

	// Load or create default configuration
	var config *utils.Config
	var actualConfigPath string
	if *configPath != "" {
		actualConfigPath = *configPath
		config, err = utils.LoadConfig(actualConfigPath)
		if err != nil {
			logger.Error("Failed to load config: %v", err)
			os.Exit(1)
		}
	} else {
		// Ensure default config exists
		actualConfigPath, err = utils.EnsureDefaultConfig()
		if err != nil {
			logger.Error("Failed to create default config: %v", err)
			os.Exit(1)
		}
		logger.Info("Using config file: %s", actualConfigPath)

		config, err = utils.LoadConfig(actualConfigPath)
		if err != nil {
			logger.Error("Failed to load config: %v", err)
			os.Exit(1)
		}
	}

	// Every persistence and AI call acts as this principal.
	principal := auth.Principal{
		UserID: config.User.UserID,
		Email:  config.User.Email,
	}
	if !principal.Valid() {
		logger.Error("No user configured; set user.user_id and user.email in %s", actualConfigPath)
		os.Exit(1)
	}

	// Initialize database
	database, err := db.New(config.Data.DBPath)
	if err != nil {
		logger.Error("Failed to initialize database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	logger.Info("Database initialized: %s", config.Data.DBPath)

	client := ai.NewClient(ai.Config{
		APIKey:      config.OpenAI.APIKey,
		BaseURL:     config.OpenAI.BaseURL,
		ChatModel:   config.OpenAI.ChatModel,
		TTSModel:    config.OpenAI.TTSModel,
		TTSVoice:    config.OpenAI.TTSVoice,
		STTModel:    config.OpenAI.STTModel,
		MaxTokens:   config.OpenAI.MaxTokens,
		Temperature: config.OpenAI.Temperature,
	})
	if err := client.ValidateConfig(); err != nil {
		// The app still opens for browsing history; sends will fail
		// until the key is configured.
		logger.Warn("AI configuration incomplete (%v); set openai.api_key in %s", err, actualConfigPath)
	}

	// Create and run application
	app, err := ui.NewApp(config, actualConfigPath, database, client, logger, principal)
	if err != nil {
		logger.Error("Failed to start application: %v", err)
		os.Exit(1)
	}
	defer app.Cleanup()

	logger.Info("Application started")
	app.Run()
	logger.Info("Application stopped")
}
