// cmd/api/main.go
package main

import (
	"context"
	"log"

	"prestige-motors-api-server/config"
	"prestige-motors-api-server/internal/api/routes"
	"prestige-motors-api-server/internal/database"
	"prestige-motors-api-server/internal/logger"
	"prestige-motors-api-server/internal/s3"
	"prestige-motors-api-server/internal/socket"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load .env (optional) and configuration
	godotenv.Load()
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	// 2. Logger
	appLog := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer appLog.Sync()

	// 3. Open the structured store; on failure the server runs degraded on
	// the snapshot store alone.
	ctx := context.Background()
	var primary database.StructuredStore
	var inquiries database.InquiryStore
	mongoStore, err := database.Open(ctx, cfg.Mongo, appLog)
	if err != nil {
		appLog.Warnw("Structured store unavailable, serving from snapshot store", "error", err)
	} else {
		primary = mongoStore
		inquiries = mongoStore
	}

	// 4. Fallback snapshot store
	snapshotPath := cfg.Store.SnapshotPath
	if snapshotPath == "" {
		snapshotPath = "data/catalog.json"
	}
	fallback := database.NewFileStore(snapshotPath, appLog)

	// 5. WebSocket hub: carries catalog notices to storefront clients and
	// acts as the repository's notifier.
	wsHub := socket.NewHub(appLog)

	// 6. The synchronized catalog repository
	repo := database.NewRepository(primary, fallback, wsHub, appLog, cfg.ListTimeout())

	// 7. S3 uploader for vehicle images (optional)
	var uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			appLog.Warnw("S3 uploader disabled", "error", err)
			uploader = nil
		}
	}

	// 8. Router and server
	router := routes.SetupRouter(cfg, repo, inquiries, uploader, wsHub, appLog)

	appLog.Infof("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		appLog.Fatalf("Failed to run server: %v", err)
	}
}
