// Command ingest performs a single ingestion run over every category and
// exits. It is meant to be started by an external scheduler; the exit
// status is non-zero only when the pipeline cannot be set up.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bilgisen/haberci/internal/app"
	"github.com/bilgisen/haberci/internal/config"
	"github.com/bilgisen/haberci/internal/ingest"
	"github.com/bilgisen/haberci/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	limit := flag.Int("limit", cfg.ItemsPerCategory, "items to consider per category")
	clearCache := flag.Bool("clear-cache", false, "drop cached titles before the run")
	printReport := flag.Bool("report", false, "print the run report as JSON to stdout")
	flag.Parse()

	if *limit < 1 {
		fmt.Fprintln(os.Stderr, "limit must be at least 1")
		return 2
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: cfg.LogOutput(),
		Pretty: cfg.LogPretty,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
	defer cancel()

	deps, err := app.New(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize pipeline")
		return 1
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing store and cache")
		}
	}()

	if *clearCache && deps.Cache != nil {
		if err := deps.Cache.ClearProcessed(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to clear title cache")
			return 1
		}
		log.Info().Msg("Title cache cleared")
	}

	report, err := deps.Processor.Run(ctx, *limit)
	if *printReport && report != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(report); encErr != nil {
			log.Error().Err(encErr).Msg("Failed to print report")
		}
	}
	// Item and category failures are in the report and the log; they do
	// not fail the job
	if err != nil {
		log.Warn().Err(err).Msg("Run ended early")
	} else if n := report.Totals[ingest.OutcomeFailed]; n > 0 {
		log.Warn().Int("failed", n).Msg("Some articles could not be stored")
	}
	return 0
}
