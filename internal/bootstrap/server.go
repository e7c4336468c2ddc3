package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func DefaultServerConfig() ServerConfig {
	addr := ":8080"
	if p := os.Getenv("HTTP_PORT"); p != "" {
		addr = ":" + p
	}
	return ServerConfig{
		Addr:            addr,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 15 * time.Second,
	}
}

// StartHTTPServer serves until SIGINT/SIGTERM, then drains in-flight
// requests within the shutdown timeout.
func StartHTTPServer(router *gin.Engine, cfg ServerConfig, logger *zap.Logger, auditor AuditLogger) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		auditor.Log(AuditLog{
			Action:  "server.start",
			Message: "http server listening",
			Meta:    map[string]string{"addr": cfg.Addr},
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("http server failed", zap.Error(err))
		return err
	case sig := <-quit:
		auditor.Log(AuditLog{
			Action:  "server.shutdown",
			Message: "shutdown signal received",
			Meta:    map[string]string{"signal": sig.String()},
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}

	auditor.Log(AuditLog{Action: "server.stopped", Message: "http server stopped cleanly"})
	return nil
}
