package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"marketplace/cmd"
	"marketplace/internal/data/repository"
	"marketplace/internal/regions"
	"marketplace/internal/wire"
	"marketplace/pkg/database"
	"marketplace/pkg/storage"
	"marketplace/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("domain", config.App.Domain),
		zap.Bool("debug", config.App.Debug),
	)

	if config.Database.Migrate {
		if err := database.Migrate(config.Database); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)
	store := storage.NewLocal(config.Commonplace.MediaRoot)

	var geoip regions.GeoIP
	if config.GeoIP.URL != "" {
		geoip = regions.NewGeoIP(config.GeoIP.URL, config.GeoIP.Timeout, logger)
	} else {
		logger.Warn("GEOIP_URL not set, regions fall back to " + config.GeoIP.DefaultRegion)
	}
	resolver := regions.NewResolver(geoip, config.GeoIP.DefaultRegion, logger)

	app := wire.Wiring(repos, store, resolver, config, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go cmd.CleanSessions(ctx, repos.Session, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
