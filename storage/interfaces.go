package storage

import "zone-scraper/models"

// RecordWriter persists the raw scraped records of a run.
type RecordWriter interface {
	WriteRaw(records []*models.PropertyRecord) error
}

// SummaryWriter persists the aggregate summary of a run.
type SummaryWriter interface {
	WriteSummary(summary *models.AggregateSummary) error
}
