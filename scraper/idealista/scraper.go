package idealista

import (
	"context"
	"errors"
	"fmt"

	"zone-scraper/config"
	"zone-scraper/models"
	"zone-scraper/utils"
)

// Scraper walks the configured zones one at a time.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	fetcher Fetcher
	parser  *ListingParser
	agents  *utils.UserAgentPool
	pacer   *utils.Pacer
}

// NewFetcher builds the fetch backend selected by cfg.FetchMode.
func NewFetcher(cfg *config.Config) (Fetcher, error) {
	switch cfg.FetchMode {
	case config.FetchModeHTTP, "":
		return NewHTTPFetcher(cfg.RequestTimeout), nil
	case config.FetchModeBrowser:
		return NewBrowserFetcher(cfg.ChromeBin, cfg.RequestTimeout), nil
	default:
		return nil, fmt.Errorf("idealista: unknown fetch mode %q", cfg.FetchMode)
	}
}

// New creates a ready-to-use Scraper with the configured fetch backend.
func New(cfg *config.Config, logger *utils.Logger) (*Scraper, error) {
	f, err := NewFetcher(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithFetcher(cfg, logger, f), nil
}

// NewWithFetcher creates a Scraper around an existing Fetcher.
func NewWithFetcher(cfg *config.Config, logger *utils.Logger, f Fetcher) *Scraper {
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		fetcher: f,
		parser:  NewListingParser(cfg.Selectors.Listing, NewClassExtractor(cfg.Selectors), logger),
		agents:  utils.NewUserAgentPool(cfg.UserAgents),
		pacer:   utils.NewPacer(cfg.MinDelay, cfg.MaxDelay),
	}
}

// Scrape fetches and parses every zone in order. A zone that fails to fetch
// or parse is logged and contributes no records; it never aborts the run.
// The only error returned is a cancelled context, together with the records
// gathered so far.
func (s *Scraper) Scrape(ctx context.Context) ([]*models.PropertyRecord, error) {
	s.logger.Info("[idealista] Starting scrape — city: %s | zones: %d | delay: %v-%v",
		s.cfg.City, len(s.cfg.Zones), s.pacer.Min, s.pacer.Max)

	var records []*models.PropertyRecord
	failed := 0

	for i, zone := range s.cfg.Zones {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		zoneRecords, err := s.scrapeZone(ctx, zone)
		if err != nil {
			failed++
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				s.logger.Warn("[idealista] Zone %s skipped: HTTP %d", zone.Name, statusErr.Code)
			} else {
				s.logger.Error("[idealista] Error scraping zone %s: %v", zone.Name, err)
			}
			continue
		}

		records = append(records, zoneRecords...)
		s.logger.Info("[idealista] Zone %s done — %d listings (%d total)",
			zone.Name, len(zoneRecords), len(records))

		if i < len(s.cfg.Zones)-1 {
			d, err := s.pacer.Wait(ctx)
			if err != nil {
				return records, err
			}
			s.logger.Debug("[idealista] Paused %v before next zone", d)
		}
	}

	s.logger.Info("[idealista] Scrape complete — %d listings, %d/%d zones failed",
		len(records), failed, len(s.cfg.Zones))
	return records, nil
}

func (s *Scraper) scrapeZone(ctx context.Context, zone config.Zone) ([]*models.PropertyRecord, error) {
	url := s.cfg.ZoneURL(zone)
	s.logger.Debug("[idealista] GET %s", url)

	body, err := s.fetcher.Fetch(ctx, url, s.headers())
	if err != nil {
		return nil, err
	}
	return s.parser.ParseHTML(body, zone.Name)
}

func (s *Scraper) headers() Headers {
	return Headers{
		UserAgent:      s.agents.Pick(),
		Accept:         acceptHTML,
		AcceptLanguage: s.cfg.AcceptLanguage,
	}
}

// Close releases the fetch backend.
func (s *Scraper) Close() error {
	return s.fetcher.Close()
}
