package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hoteldesk/internal/api"
	"hoteldesk/internal/app"
	"hoteldesk/internal/config"
	"hoteldesk/internal/logging"

	"github.com/pkg/browser"
	"go.uber.org/zap"
)

func main() {
	fmt.Println("Starting hoteldesk console...")

	configDir, err := config.Dir()
	if err != nil {
		log.Fatalf("Error getting user config directory: %v", err)
	}

	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger, err := logging.New(config.IsDev())
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("configuration loaded",
		zap.String("backend", cfg.BackendURL),
		zap.String("database", cfg.DatabasePath),
		zap.String("dispatch_timeout", cfg.Timeout().String()),
	)

	container, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal("could not build application", zap.Error(err))
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.Warn("closing client database", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listenAddr := cfg.Addr()
	if cfg.OpenBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			url := "http://" + listenAddr + "/"
			if err := browser.OpenURL(url); err != nil {
				logger.Warn("could not open browser", zap.String("url", url), zap.Error(err))
			}
		}()
	}

	if err := api.NewAPIServer(container).Start(ctx, listenAddr); err != nil {
		logger.Error("console stopped", zap.Error(err))
		os.Exit(1)
	}
}
