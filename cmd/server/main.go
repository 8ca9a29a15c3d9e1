package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"librero/internal/config"
	"librero/internal/database"
	"librero/internal/handlers"
	"librero/internal/logging"
	"librero/internal/services"
)

func main() {
	var cli struct {
		Config string `help:"Path to a YAML config file." type:"path" env:"CONFIG_PATH"`
	}
	kong.Parse(&cli, kong.Name("librero-server"), kong.Description("Book recommendation HTTP API."))

	cfg, err := config.Load(cli.Config)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(cfg.LoggingOptions())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	if err := run(cfg, quit); err != nil {
		logging.Error().Err(err).Msg("Server failed")
		os.Exit(1)
	}
}

// run serves until quit fires or the listener fails. Resources opened here
// are released before it returns in both cases.
func run(cfg *config.Config, quit <-chan os.Signal) error {
	startTime := time.Now()

	// Set up the catalog store
	var repo services.CatalogRepository
	if cfg.Database.Path != "" {
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		repo = db
	}
	catalog := services.NewCatalogService(repo, services.CatalogOptions{
		Timeout:          cfg.Database.Timeout,
		FailureThreshold: cfg.Breaker.FailureThreshold,
		OpenTimeout:      cfg.Breaker.OpenTimeout,
	})

	handler := handlers.NewHandler(catalog, services.NewEngine(nil), handlers.Options{
		CatalogLimit: cfg.Catalog.DefaultLimit,
		ListLimit:    cfg.Catalog.ListLimit,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handlers.NewRouter(handler, cfg.Security),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logging.Info().
			Str("addr", srv.Addr).
			Str("catalog_source", catalog.Source()).
			Dur("setup", time.Since(startTime)).
			Msg("Server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case sig := <-quit:
		logging.Info().Str("signal", sig.String()).Msg("Shutting down server")
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("serve %s: %w", srv.Addr, err)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logging.Info().Dur("uptime", time.Since(startTime)).Msg("Server stopped")
	return nil
}
