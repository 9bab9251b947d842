package models

import "time"

// PartialRecord is what an extraction strategy pulls out of one listing block.
// Nil fields were absent from the markup or failed to parse.
type PartialRecord struct {
	Price    *float64
	Size     *float64
	Location *string
}

// PropertyRecord is one scraped listing, tagged with its zone and scrape time.
// It is written verbatim to the raw output file.
type PropertyRecord struct {
	Price       *float64  `json:"price"`
	Size        *float64  `json:"size"`
	Location    *string   `json:"location"`
	Zone        string    `json:"zone"`
	DateScraped time.Time `json:"date_scraped"`
	// Incomplete marks records whose price-per-area cannot be computed.
	Incomplete bool `json:"incomplete,omitempty"`
}

// NewPropertyRecord stamps a partial record with its zone and scrape time.
func NewPropertyRecord(p PartialRecord, zone string, scrapedAt time.Time) *PropertyRecord {
	return &PropertyRecord{
		Price:       p.Price,
		Size:        p.Size,
		Location:    p.Location,
		Zone:        zone,
		DateScraped: scrapedAt,
		Incomplete:  p.Price == nil || p.Size == nil || *p.Size == 0,
	}
}

// PriceRange holds global price statistics. Nil values mean no record carried
// a price.
type PriceRange struct {
	Min  *float64 `json:"min"`
	Max  *float64 `json:"max"`
	Mean *float64 `json:"promedio"`
}

// AggregateSummary is the per-run analysis written next to the raw records.
type AggregateSummary struct {
	MeanPricePerAreaByZone map[string]*float64 `json:"promedio_por_zona"`
	TotalCount             int                 `json:"total_propiedades"`
	PriceRange             PriceRange          `json:"rango_precios"`
}
