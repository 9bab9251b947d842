package services

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"zone-scraper/models"
	"zone-scraper/utils"
)

// Aggregator computes the per-run summary over all scraped records.
type Aggregator struct {
	logger *utils.Logger
	out    io.Writer
}

func NewAggregator(logger *utils.Logger) *Aggregator {
	return &Aggregator{logger: logger, out: os.Stdout}
}

// PricePerArea returns price / size, or false when either field is missing or
// the size is zero.
func PricePerArea(r *models.PropertyRecord) (float64, bool) {
	if r == nil || r.Price == nil || r.Size == nil || *r.Size == 0 {
		return 0, false
	}
	return *r.Price / *r.Size, true
}

// Generate builds the summary. Records without a usable price or size are
// counted but left out of the statistics that need them. An empty input
// yields a zero count and a null price range.
func (a *Aggregator) Generate(records []*models.PropertyRecord) *models.AggregateSummary {
	summary := &models.AggregateSummary{
		MeanPricePerAreaByZone: make(map[string]*float64),
		TotalCount:             len(records),
	}

	if len(records) == 0 {
		return summary
	}

	type zoneAcc struct {
		sum   float64
		count int
	}
	zones := make(map[string]*zoneAcc)

	var (
		priceSum   float64
		priceCount int
		minPrice   = math.Inf(1)
		maxPrice   = math.Inf(-1)
		undefined  int
	)

	for _, r := range records {
		acc, ok := zones[r.Zone]
		if !ok {
			acc = &zoneAcc{}
			zones[r.Zone] = acc
		}
		if ppa, ok := PricePerArea(r); ok {
			acc.sum += ppa
			acc.count++
		} else {
			undefined++
		}

		if r.Price != nil {
			p := *r.Price
			priceSum += p
			priceCount++
			if p < minPrice {
				minPrice = p
			}
			if p > maxPrice {
				maxPrice = p
			}
		}
	}

	for zone, acc := range zones {
		if acc.count == 0 {
			summary.MeanPricePerAreaByZone[zone] = nil
			continue
		}
		mean := acc.sum / float64(acc.count)
		summary.MeanPricePerAreaByZone[zone] = &mean
	}

	if priceCount > 0 {
		mean := priceSum / float64(priceCount)
		summary.PriceRange = models.PriceRange{Min: &minPrice, Max: &maxPrice, Mean: &mean}
	}

	a.logger.Info("[aggregator] %d records, %d priced, %d without price per m²",
		len(records), priceCount, undefined)
	return summary
}

// Print writes a human-readable report of the summary.
func (a *Aggregator) Print(s *models.AggregateSummary) {
	w := a.out
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  📊 ZONE PRICE SUMMARY\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Total properties : \033[1m%d\033[0m\n\n", s.TotalCount)

	fmt.Fprintf(w, "\033[1;33m  Price Statistics\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if s.PriceRange.Mean != nil {
		fmt.Fprintf(w, "  Average price : \033[1;32m%s €\033[0m\n", formatAmount(*s.PriceRange.Mean))
		fmt.Fprintf(w, "  Minimum price : \033[1;32m%s €\033[0m\n", formatAmount(*s.PriceRange.Min))
		fmt.Fprintf(w, "  Maximum price : \033[1;32m%s €\033[0m\n", formatAmount(*s.PriceRange.Max))
	} else {
		fmt.Fprintf(w, "  No price data available\n")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Average Price per m² by Zone\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(s.MeanPricePerAreaByZone) == 0 {
		fmt.Fprintf(w, "  No zone data\n")
	} else {
		zones := make([]string, 0, len(s.MeanPricePerAreaByZone))
		for z := range s.MeanPricePerAreaByZone {
			zones = append(zones, z)
		}
		sort.Strings(zones)
		for _, z := range zones {
			if v := s.MeanPricePerAreaByZone[z]; v != nil {
				fmt.Fprintf(w, "  %-30s %s €/m²\n", truncate(z, 28), formatAmount(*v))
			} else {
				fmt.Fprintf(w, "  %-30s n/a\n", truncate(z, 28))
			}
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func formatAmount(f float64) string {
	return fmt.Sprintf("%.2f", round2(f))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
