package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fmcmkdict/LMA-App/internal/app"
	"github.com/fmcmkdict/LMA-App/internal/bootstrap"
	"github.com/fmcmkdict/LMA-App/internal/shared/apperror"
)

func main() {
	_ = godotenv.Load()

	logger, err := buildLogger()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	application, err := app.BuildApp(logger)
	if err != nil {
		logger.Fatal("application bootstrap failed", zap.Error(err))
	}

	auditor := bootstrap.NewZapAuditLogger(logger)
	if err := bootstrap.StartHTTPServer(application.Router, bootstrap.DefaultServerConfig(), logger, auditor); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}

func buildLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
