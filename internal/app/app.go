package app

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fmcmkdict/LMA-App/internal/shared/connection"
)

// App holds everything a binary needs after wiring: the router for the
// API process and the outbox relay for the worker process.
type App struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Router *gin.Engine
	Relay  RelayRunner
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// BuildApp connects the backing stores, runs migrations and registers
// every module on a fresh router.
func BuildApp(logger *zap.Logger) (*App, error) {
	db, err := connection.ConnectGORMWithRetry(
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "postgres"),
		envOr("DB_PASSWORD", "postgres"),
		envOr("DB_NAME", "lma"),
		envOr("DB_PORT", "5432"),
		envOr("DB_SSLMODE", "disable"),
		5,
	)
	if err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(envOr("REDIS_ADDR", "localhost:6379"), 5)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())

	relay, err := registerModules(router, db, rdb, logger)
	if err != nil {
		return nil, err
	}

	return &App{DB: db, Redis: rdb, Router: router, Relay: relay}, nil
}
