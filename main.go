package main

import (
	"go.uber.org/zap"

	"github.com/billyribeiro-ux/cognition-os/internal/config"
	"github.com/billyribeiro-ux/cognition-os/internal/database"
	logger "github.com/billyribeiro-ux/cognition-os/internal/logging"
	"github.com/billyribeiro-ux/cognition-os/internal/router"
	"github.com/billyribeiro-ux/cognition-os/internal/services"
	"github.com/billyribeiro-ux/cognition-os/internal/srs"
	"github.com/billyribeiro-ux/cognition-os/internal/timeutil"
)

func main() {
	// Bootstrap logger carries us until the configuration is loaded.
	boot := logger.Bootstrap()

	if err := config.Init(".", boot); err != nil {
		boot.Fatal("Failed to load configuration", zap.Error(err))
	}

	log, err := logger.Init(".")
	if err != nil {
		boot.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer log.Sync()

	// Initialize Database
	database.Init(log)

	// Load starter decks at startup
	seeds, err := srs.LoadSeedDecks(config.Conf.Srs.DecksFile)
	if err != nil {
		log.Fatal("Failed to load starter decks", zap.Error(err))
	}

	// Setup router, passing the logger to it
	r := router.Setup(log, seeds)

	// Background daily streak check
	scheduler := services.NewScheduler(log, timeutil.SystemClock{})
	scheduler.Start()

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
