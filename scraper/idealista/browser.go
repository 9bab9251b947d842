package idealista

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// BrowserFetcher loads pages in a shared headless Chrome instance. It is used
// when the portal refuses plain HTTP clients.
type BrowserFetcher struct {
	timeout time.Duration

	browserCtx    context.Context
	cancelAlloc   context.CancelFunc
	cancelBrowser context.CancelFunc

	startOnce sync.Once
	startErr  error
}

// NewBrowserFetcher prepares (but does not yet launch) a headless browser.
// chromeBin comes from config; when empty, well-known install paths are probed.
func NewBrowserFetcher(chromeBin string, timeout time.Duration) *BrowserFetcher {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1920, 1080),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	return &BrowserFetcher{
		timeout:       timeout,
		browserCtx:    browserCtx,
		cancelAlloc:   cancelAlloc,
		cancelBrowser: cancelBrowser,
	}
}

func (b *BrowserFetcher) Fetch(ctx context.Context, url string, h Headers) ([]byte, error) {
	b.startOnce.Do(func() {
		b.startErr = chromedp.Run(b.browserCtx)
	})
	if b.startErr != nil {
		return nil, fmt.Errorf("browser: start: %w", b.startErr)
	}

	tabCtx, cancelTab := chromedp.NewContext(b.browserCtx)
	defer cancelTab()

	if b.timeout > 0 {
		var cancelTimeout context.CancelFunc
		tabCtx, cancelTimeout = context.WithTimeout(tabCtx, b.timeout)
		defer cancelTimeout()
	}

	// Tie the tab to the caller's context as well.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	resp, err := chromedp.RunResponse(tabCtx,
		emulation.SetUserAgentOverride(h.UserAgent).WithAcceptLanguage(h.AcceptLanguage),
		network.SetExtraHTTPHeaders(network.Headers{"Accept": h.Accept}),
		chromedp.Navigate(url),
	)
	if err != nil {
		return nil, fmt.Errorf("browser: navigate %s: %w", url, err)
	}
	if resp != nil && resp.Status != http.StatusOK {
		return nil, &StatusError{URL: url, Code: int(resp.Status)}
	}

	var html string
	if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("browser: read document %s: %w", url, err)
	}
	return []byte(html), nil
}

// Close shuts the browser down.
func (b *BrowserFetcher) Close() error {
	b.cancelBrowser()
	b.cancelAlloc()
	return nil
}

// chromeCandidates are probed in order when no binary is configured. Bare
// names are resolved through PATH.
var chromeCandidates = []string{
	"google-chrome-stable",
	"google-chrome",
	"chromium",
	"chromium-browser",
	"/snap/bin/chromium",
	"/opt/google/chrome/google-chrome",
}

// findChromeBinary locates an installed Chrome or Chromium. It returns "" when
// none is found, leaving chromedp to its own lookup.
func findChromeBinary() string {
	for _, c := range chromeCandidates {
		if filepath.IsAbs(c) {
			if _, err := os.Stat(c); err == nil {
				return c
			}
			continue
		}
		if path, err := exec.LookPath(c); err == nil {
			return path
		}
	}
	return ""
}
