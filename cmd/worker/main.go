package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fmcmkdict/LMA-App/internal/app"
)

// The worker drains the transactional outbox to Kafka. It runs as a
// separate process so API deploys do not interrupt delivery.
func main() {
	_ = godotenv.Load()

	logger, err := buildLogger()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	application, err := app.BuildApp(logger)
	if err != nil {
		logger.Fatal("application bootstrap failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application.Relay.Run(ctx)
}

func buildLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
