package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"sidehustle-backend/pkg/container"
)

const shutdownTimeout = 10 * time.Second

// Serve build container, chạy HTTP server tới khi ctx bị cancel (SIGINT/SIGTERM)
// rồi shutdown, chờ tối đa shutdownTimeout cho request đang xử lý.
func Serve(ctx context.Context) error {
	c, err := container.NewContainer()
	if err != nil {
		return fmt.Errorf("init container: %w", err)
	}
	defer c.Cleanup()

	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	addr := ":" + c.Config.App.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           SetupRouter(c),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	listenErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", addr).
			Str("environment", c.Config.App.Environment).
			Str("store", c.Config.App.Store).
			Msg("🚀 sideHUSTLE API listening")
		listenErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	log.Info().Msg("🛑 Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info().Msg("✅ Server stopped")
	return nil
}
