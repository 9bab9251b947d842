package idealista

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
)

const acceptHTML = "text/html,application/xhtml+xml"

// Headers are the per-request header values chosen by the scraper.
type Headers struct {
	UserAgent      string
	Accept         string
	AcceptLanguage string
}

// Fetcher retrieves one listing page.
type Fetcher interface {
	Fetch(ctx context.Context, url string, h Headers) ([]byte, error)
	Close() error
}

// StatusError is returned when the portal answers with anything but 200 OK.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

// HTTPFetcher fetches pages with a plain colly collector. Each Fetch is a
// single synchronous request; nothing is retried.
type HTTPFetcher struct {
	collector *colly.Collector
}

// NewHTTPFetcher creates a collector with the given request timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	c := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
	)
	if timeout > 0 {
		c.SetRequestTimeout(timeout)
	}
	return &HTTPFetcher{collector: c}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string, h Headers) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := f.collector.Clone()
	// Cancelling ctx aborts the in-flight request.
	c.Context = ctx

	var (
		body   []byte
		status int
	)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", h.UserAgent)
		r.Headers.Set("Accept", h.Accept)
		r.Headers.Set("Accept-Language", h.AcceptLanguage)
	})

	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})

	c.OnError(func(r *colly.Response, _ error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	err := c.Visit(url)

	if status != 0 && status != http.StatusOK {
		return nil, &StatusError{URL: url, Code: status}
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("fetch %s: %w", url, ctxErr)
		}
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return body, nil
}

// Close is a no-op; the collector's transport is released with the process.
func (f *HTTPFetcher) Close() error {
	return nil
}
