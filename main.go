package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"zone-scraper/config"
	"zone-scraper/scraper/idealista"
	"zone-scraper/services"
	"zone-scraper/storage"
	"zone-scraper/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.NewLogger().Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	logger := utils.NewLoggerWithOptions(utils.LoggerOptions{
		Level: cfg.LogLevel,
		Color: cfg.LogColor,
	}).With("run", uuid.NewString())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Run failed: %v", err)
		stop()
		os.Exit(1)
	}
}

// run performs one scrape of every configured zone, writes the raw records
// and the analysis summary under cfg.OutputDir, and prints the report.
// Zone failures and cancellation still produce output; only the writes can fail.
func run(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	logger.Info("=== Zone Scraping System starting ===")
	logger.Info("Config — city: %s | zones: %d | fetch: %s | delay: %v-%v",
		cfg.City, len(cfg.Zones), cfg.FetchMode, cfg.MinDelay, cfg.MaxDelay)

	zoneScraper, err := idealista.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create scraper: %w", err)
	}

	records, err := zoneScraper.Scrape(ctx)
	if err != nil {
		logger.Warn("Scrape interrupted: %v — writing %d records collected so far", err, len(records))
	}
	if err := zoneScraper.Close(); err != nil {
		logger.Warn("Failed to release fetcher: %v", err)
	}

	writer, err := storage.NewJSONWriter(cfg.OutputDir, cfg.City, time.Now())
	if err != nil {
		return fmt.Errorf("prepare output: %w", err)
	}

	if err := writer.WriteRaw(records); err != nil {
		return fmt.Errorf("write raw records: %w", err)
	}
	logger.Info("Raw records saved to %s", writer.RawPath())

	aggregator := services.NewAggregator(logger)
	summary := aggregator.Generate(records)
	aggregator.Print(summary)

	if err := writer.WriteSummary(summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	fmt.Printf("  Done. Raw → %s | Analysis → %s\n\n", writer.RawPath(), writer.SummaryPath())
	return nil
}
