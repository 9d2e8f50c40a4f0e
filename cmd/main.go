package main

import (
    "context"
    "os"
    "os/signal"
    "syscall"

    "github.com/bilgisen/haberci/internal/api"
    "github.com/bilgisen/haberci/internal/app"
    "github.com/bilgisen/haberci/internal/config"
    "github.com/bilgisen/haberci/internal/ingest"
    "github.com/bilgisen/haberci/internal/logger"
)

func main() {
    // Load and validate configuration
    cfg, err := config.Load()
    if err != nil {
        panic(err)
    }

    if err := logger.Init(logger.Config{
        Level:  cfg.LogLevel,
        Output: cfg.LogOutput(),
        Pretty: cfg.LogPretty,
    }); err != nil {
        panic(err)
    }

    log := logger.Get()
    log.Info().Str("env", cfg.Env).Msg("Starting application...")

    // Background runs stop when the process is asked to exit
    runCtx, stopRuns := context.WithCancel(context.Background())
    defer stopRuns()

    deps, err := app.New(runCtx, cfg)
    if err != nil {
        log.Fatal().Err(err).Msg("Failed to initialize pipeline")
    }
    defer func() {
        log.Info().Msg("Closing store and cache...")
        if err := deps.Close(); err != nil {
            log.Error().Err(err).Msg("Error closing store and cache")
        }
    }()

    if cfg.AdminAPIKey == "" {
        log.Warn().Msg("ADMIN_API_KEY is empty, admin endpoints will reject every request")
    }

    runner := ingest.NewRunner(runCtx, deps.Processor, cfg.RunTimeout)

    server := api.NewApp(cfg.HTTPTimeout)

    api.SetupRoutes(server, api.NewHandlers(runner, deps.Categories, cfg.ItemsPerCategory), cfg.AdminAPIKey)

    go func() {
        log.Info().Str("port", cfg.Port).Msg("Starting server")
        if err := server.Listen(":" + cfg.Port); err != nil {
            log.Fatal().Err(err).Msg("Server error")
        }
    }()

    // Wait for interrupt signal to gracefully shut down the server
    quit := make(chan os.Signal, 1)
    signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
    <-quit

    log.Info().Msg("Shutting down server...")

    ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
    defer cancel()

    if err := server.ShutdownWithContext(ctx); err != nil {
        log.Error().Err(err).Msg("Server forced to shutdown")
    }

    stopRuns()
    done := make(chan struct{})
    go func() {
        runner.Wait()
        close(done)
    }()
    select {
    case <-done:
    case <-ctx.Done():
        log.Warn().Msg("Ingestion run did not stop before the shutdown deadline")
    }

    log.Info().Msg("Server exited properly")
}
