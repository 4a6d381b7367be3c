package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/wb_streams/config"
	"github.com/Gunvolt24/wb_streams/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Контекст, завершаемый по SIGINT/SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	application, cleanup, err := app.Bootstrap(ctx, &cfg)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	if err := application.Run(ctx); err != nil {
		application.Logger.Errorf(ctx, "service exited with error: %v", err)
	}
}
