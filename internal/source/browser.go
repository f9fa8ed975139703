package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// Browser owns a headless Chrome allocator shared by the scrape
// sources. Each page fetch runs in its own tab context.
type Browser struct {
	allocCtx  context.Context
	cancel    context.CancelFunc
	navT      time.Duration
	waitT     time.Duration
	userAgent string
}

// BrowserOptions configures the headless session.
type BrowserOptions struct {
	Headless    bool
	NavTimeout  time.Duration
	WaitTimeout time.Duration
	UserAgent   string
}

// NewBrowser starts a Chrome exec allocator. Close must be called to
// reap the browser process.
func NewBrowser(opts BrowserOptions) *Browser {
	execOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(opts.UserAgent),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), execOpts...)

	return &Browser{
		allocCtx:  allocCtx,
		cancel:    cancel,
		navT:      opts.NavTimeout,
		waitT:     opts.WaitTimeout,
		userAgent: opts.UserAgent,
	}
}

// Close shuts down the allocator and any remaining tabs.
func (b *Browser) Close() {
	b.cancel()
}

// FetchRenderedHTML navigates to pageURL, waits until any of the ready
// selectors appears, and returns the rendered document. A wait timeout
// is not an error: the page simply has no listings, so the caller gets
// an empty string and proceeds with zero results.
func (b *Browser) FetchRenderedHTML(ctx context.Context, pageURL string, readySelectors []string) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(b.allocCtx)
	defer cancelTab()

	navCtx, cancelNav := context.WithTimeout(tabCtx, b.navT)
	defer cancelNav()

	if err := chromedp.Run(navCtx, chromedp.Navigate(pageURL)); err != nil {
		return "", fmt.Errorf("navigate %s: %w", pageURL, err)
	}

	waitCtx, cancelWait := context.WithTimeout(tabCtx, b.waitT)
	defer cancelWait()

	var ready bool
	err := chromedp.Run(waitCtx, chromedp.Poll(anySelectorExpr(readySelectors), &ready,
		chromedp.WithPollingInterval(250*time.Millisecond)))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, chromedp.ErrPollingTimeout) {
			return "", nil
		}
		return "", fmt.Errorf("wait for listings on %s: %w", pageURL, err)
	}

	var html string
	htmlCtx, cancelHTML := context.WithTimeout(tabCtx, b.waitT)
	defer cancelHTML()
	if err := chromedp.Run(htmlCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("capture html from %s: %w", pageURL, err)
	}
	return html, nil
}

// anySelectorExpr builds a JS expression true when at least one of the
// selectors matches an element.
func anySelectorExpr(selectors []string) string {
	clauses := make([]string, 0, len(selectors))
	for _, sel := range selectors {
		clauses = append(clauses, fmt.Sprintf("document.querySelector(%q) !== null", sel))
	}
	if len(clauses) == 0 {
		return "true"
	}
	return strings.Join(clauses, " || ")
}
