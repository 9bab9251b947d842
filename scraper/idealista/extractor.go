package idealista

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"zone-scraper/config"
	"zone-scraper/models"
	"zone-scraper/utils"
)

// Extractor pulls the listing fields out of one listing block. Implementations
// may be swapped when the portal markup changes.
type Extractor interface {
	Extract(block *goquery.Selection) (models.PartialRecord, error)
}

// ClassExtractor finds fields by CSS class, the way the portal's result cards
// are laid out.
type ClassExtractor struct {
	sel config.Selectors
}

func NewClassExtractor(sel config.Selectors) *ClassExtractor {
	return &ClassExtractor{sel: sel}
}

func (e *ClassExtractor) Extract(block *goquery.Selection) (models.PartialRecord, error) {
	var rec models.PartialRecord

	if price := block.Find(e.sel.Price).First(); price.Length() > 0 {
		rec.Price = parseDigits(price.Text())
	}

	if detail := e.areaNode(block); detail.Length() > 0 {
		rec.Size = parseArea(detail.Text(), e.sel.AreaMarker)
	}

	if link := block.Find(e.sel.Link).First(); link.Length() > 0 {
		loc := strings.TrimSpace(link.Text())
		rec.Location = &loc
	}

	return rec, nil
}

// areaNode returns the first detail node carrying a size ("85 m²"). Cards list
// rooms and floor in the same class, so the first node is only a fallback.
func (e *ClassExtractor) areaNode(block *goquery.Selection) *goquery.Selection {
	details := block.Find(e.sel.Detail)
	for i := range details.Nodes {
		d := details.Eq(i)
		if hasAreaBeforeMarker(d.Text(), e.sel.AreaMarker) {
			return d
		}
	}
	return details.First()
}

// ListingParser turns a results page into property records.
type ListingParser struct {
	listingSelector string
	extractor       Extractor
	logger          *utils.Logger
	now             func() time.Time
}

// NewListingParser creates a parser that finds blocks with listingSelector and
// hands each to ext.
func NewListingParser(listingSelector string, ext Extractor, logger *utils.Logger) *ListingParser {
	return &ListingParser{
		listingSelector: listingSelector,
		extractor:       ext,
		logger:          logger,
		now:             time.Now,
	}
}

// ParseHTML parses a raw results page.
func (p *ListingParser) ParseHTML(body []byte, zone string) ([]*models.PropertyRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html for zone %s: %w", zone, err)
	}
	return p.Parse(doc, zone), nil
}

// Parse extracts every listing block in doc. A block that fails extraction is
// logged and skipped; the remaining blocks are still processed.
func (p *ListingParser) Parse(doc *goquery.Document, zone string) []*models.PropertyRecord {
	blocks := doc.Find(p.listingSelector)
	records := make([]*models.PropertyRecord, 0, blocks.Length())
	skipped := 0

	blocks.Each(func(i int, block *goquery.Selection) {
		partial, err := p.extractBlock(block)
		if err != nil {
			skipped++
			p.logger.Warn("[idealista] Error parsing property %d in zone %s: %v", i, zone, err)
			return
		}
		records = append(records, models.NewPropertyRecord(partial, zone, p.now()))
	})

	p.logger.Debug("[idealista] Zone %s: %d blocks, %d parsed, %d skipped",
		zone, blocks.Length(), len(records), skipped)
	return records
}

func (p *ListingParser) extractBlock(block *goquery.Selection) (rec models.PartialRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extractor panic: %v", r)
		}
	}()
	return p.extractor.Extract(block)
}
