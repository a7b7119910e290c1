package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env chỉ dùng khi chạy local, production đọc thẳng system env
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("⚠️  .env not loaded, falling back to process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Serve(ctx); err != nil {
		log.Error().Err(err).Msg("❌ sideHUSTLE API stopped with error")
		stop()
		os.Exit(1)
	}
}
