package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"linguachat/server"
	"linguachat/utils"
)

func main() {
	// Attempt to load a .env file - not an error if it doesn't exist,
	// production runs with real environment variables
	_ = godotenv.Load()

	logger, err := utils.NewLogger(utils.GetLogPath())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := server.New(secret, logger)
	addr := ":" + port

	logger.Info("Auth verifier listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Router(corsOrigins())); err != nil {
		logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}
}

// corsOrigins returns allowed CORS origins from environment or defaults
func corsOrigins() []string {
	originsEnv := os.Getenv("CORS_ORIGINS")
	if originsEnv == "" {
		// Default to localhost for development
		return []string{"http://localhost:5173", "http://localhost:3000"}
	}

	origins := strings.Split(originsEnv, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	return origins
}
