package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "codeberg.org/papergen/server/docs"
	"codeberg.org/papergen/server/internal/config"
	"codeberg.org/papergen/server/internal/logger"
)

// @title Papergen Gateway API
// @version 1.0
// @description Gateway in front of the paper generation service
// @description
// @description Features:
// @description - Relay documentation to the generation service and return the paper
// @description - Return generated documents as an ieee_paper.docx attachment
// @description - Acknowledge repositories for analysis

// @contact.name API Support
// @contact.url https://codeberg.org/papergen/server

// @license.name GPL-3.0
// @license.url https://www.gnu.org/licenses/gpl-3.0.html

// @host localhost:3000

func main() {
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	logger.Configure(cfg.Environment, nil)
	logger.Info("starting papergen gateway", "environment", cfg.Environment)

	srv, err := NewServer(cfg)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           srv.router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		// generation can run for minutes, the relay waits for it
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening",
			"port", cfg.Port,
			"generation_service", cfg.GenerationServiceURL,
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}
