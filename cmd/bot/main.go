package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/placebot/internal/cli"
	"github.com/dmitrijs2005/placebot/internal/config"
	"github.com/dmitrijs2005/placebot/internal/logging"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stderr, slog.LevelInfo)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "placebot exited with error", "error", err)
		os.Exit(1)
	}

}
