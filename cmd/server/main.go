package main

import (
	"context"
	"net/http"
	"os"

	"github.com/Detroit4455/socbuddy-sub001/internal/api"
	"github.com/Detroit4455/socbuddy-sub001/internal/config"
	"github.com/Detroit4455/socbuddy-sub001/internal/database"
	"github.com/Detroit4455/socbuddy-sub001/internal/logger"
	"github.com/Detroit4455/socbuddy-sub001/internal/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	logger.Info("Connecting to PostgreSQL at %s:%s", cfg.DBHost, cfg.DBPort)
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Create tables on first run
	if err := database.InitSchema(context.Background(), db); err != nil {
		logger.Error("Schema initialization failed: %v", err)
		os.Exit(1)
	}

	// Initialize routes
	router := api.SetupRouter()

	// Wrap router with CORS middleware
	handler := middleware.CORSMiddleware(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
